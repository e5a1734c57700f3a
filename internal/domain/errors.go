package domain

import "errors"

// Repository-level sentinel errors. Usecases translate them to apperror kinds.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrJobNotFound          = errors.New("job not found")
	ErrDuplicateApplication = errors.New("application already exists")
	// ErrSerialization marks a transaction aborted by a serialization failure or deadlock; safe to retry.
	ErrSerialization = errors.New("transaction serialization failure")
)
