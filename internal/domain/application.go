package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application is one candidate applying to one job.
type Application struct {
	ID              int64     `json:"id"`
	JobID           int64     `json:"job_id"`
	CandidateID     int64     `json:"candidate_id"`
	ApplicationDate time.Time `json:"application_date"`
	Status          string    `json:"status"` // pending → reviewed → accepted / rejected
}

// ApplyInput is the body of POST /apply.
type ApplyInput struct {
	JobID int64  `json:"job_id" validate:"required,gt=0"`
	Email string `json:"email" validate:"required,max=255,email"`
}

// CandidateApplication is one row of a candidate's application history.
type CandidateApplication struct {
	ApplicationID   int64     `json:"application_id"`
	JobID           int64     `json:"job_id"`
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	Sector          string    `json:"sector"`
	ApplicationDate time.Time `json:"application_date"`
	Status          string    `json:"status"`
}

// JobApplicant is one row of a job's applicant list.
type JobApplicant struct {
	ApplicationID   int64     `json:"application_id"`
	CandidateID     int64     `json:"candidate_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	HasResume       bool      `json:"has_resume"`
	ApplicationDate time.Time `json:"application_date"`
	Status          string    `json:"status"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Submit runs the candidate lookup, counter bump and insert as one serializable transaction.
	Submit(ctx context.Context, jobID int64, email string, appliedAt time.Time) (*Application, error)
	// Applied reports whether the candidate with email already applied to the job.
	Applied(ctx context.Context, jobID int64, email string) (bool, error)
	ListByCandidateEmail(ctx context.Context, email string) ([]CandidateApplication, error)
	ListByJob(ctx context.Context, jobID int64) ([]JobApplicant, error)
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	SubmitApplication(ctx context.Context, in ApplyInput) (*Application, error)
	ListByCandidateEmail(ctx context.Context, email string) ([]CandidateApplication, error)
	ListApplicantsByJob(ctx context.Context, jobID int64) ([]JobApplicant, error)
}
