package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError so callers can tell "fix your input" apart from
// "try again later" without parsing messages.
type Kind string

const (
	KindValidation           Kind = "validation_error"
	KindPayloadRejected      Kind = "payload_rejected"
	KindCandidateNotFound    Kind = "candidate_not_found"
	KindDuplicateApplication Kind = "duplicate_application"
	KindNotFound             Kind = "not_found"
	KindRateLimited          Kind = "rate_limited"
	KindStorage              Kind = "storage_error"
	KindInternal             Kind = "internal_error"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

// Validation is returned when a request fails field validation before reaching the store.
func Validation(message string, err error) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, err)
}

// PayloadRejected is returned for resume uploads that are not PDFs, too large, or flagged by the scanner.
func PayloadRejected(message string, err error) *AppError {
	return New(http.StatusBadRequest, KindPayloadRejected, message, err)
}

func CandidateNotFound() *AppError {
	return New(http.StatusBadRequest, KindCandidateNotFound, "Candidate does not exist. Please create a candidate profile first.", nil)
}

func DuplicateApplication() *AppError {
	return New(http.StatusBadRequest, KindDuplicateApplication, "You have already applied for this job.", nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindRateLimited, message, nil)
}

// Storage wraps a persistence failure. The driver error is kept for logs only.
func Storage(err error) *AppError {
	return New(http.StatusInternalServerError, KindStorage, "We could not process your request right now. Please try again later.", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf returns the Kind of the first AppError in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
