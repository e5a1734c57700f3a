package domain

import (
	"context"
	"time"

	"go-careers-backend/pkg/upload"
)

// Candidate is the registry row without resume bytes.
type Candidate struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	HasResume        bool      `json:"has_resume"`
	ApplicationCount int       `json:"application_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CandidateInput carries the text fields of POST /candidates.
type CandidateInput struct {
	Name  string `form:"name" validate:"required,max=255,valid_name"`
	Email string `form:"email" validate:"required,max=255,email,allowed_email_domain"`
	Phone string `form:"phone" validate:"omitempty,max=32,valid_phone"`
}

// CandidateUpsert is what the registry writes. At most one of Resume and
// ResumeKey is set; when both are empty the stored resume is kept.
type CandidateUpsert struct {
	Name      string
	Email     string
	Phone     string
	Resume    []byte
	ResumeKey string
}

// UpsertResult reports the candidate id and whether the row was new.
// ReplacedResumeKey is the object key the upsert displaced, if any.
type UpsertResult struct {
	ID                int64  `json:"id"`
	Created           bool   `json:"created"`
	ReplacedResumeKey string `json:"-"`
}

// StoredResume is a candidate's resume, either inline bytes or an object key.
type StoredResume struct {
	Data []byte
	Key  string
}

type CandidateRepository interface {
	Upsert(ctx context.Context, c *CandidateUpsert) (*UpsertResult, error)
	List(ctx context.Context) ([]Candidate, error)
	GetResume(ctx context.Context, candidateID int64) (*StoredResume, error)
}

type CandidateUsecase interface {
	UpsertCandidate(ctx context.Context, in CandidateInput, resume *upload.Resume) (*UpsertResult, error)
	ListCandidates(ctx context.Context) ([]Candidate, error)
	GetResume(ctx context.Context, candidateID int64) ([]byte, error)
}

// ResumeBlobStore keeps resume bytes outside the candidates table.
type ResumeBlobStore interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
