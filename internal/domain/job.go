package domain

import (
	"context"
)

// DateLayout is the wire and storage format of a job's posting date.
const DateLayout = "2006-01-02"

type Job struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Sector      string `json:"sector"`
	Date        string `json:"date"` // posting date, YYYY-MM-DD
	Description string `json:"description"`
	Experience  string `json:"experience"`
	Details     string `json:"details"`
}

// JobInput is the body of POST /jobs and PUT /jobs/:id.
type JobInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Location    string `json:"location" validate:"max=255"`
	Sector      string `json:"sector" validate:"max=255"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" validate:"max=10000"`
	Experience  string `json:"experience" validate:"max=255"`
	Details     string `json:"details" validate:"max=10000"`
}

// JobFilter narrows a job listing. Empty fields are unrestricted.
type JobFilter struct {
	Location string `form:"location"`
	Sector   string `form:"sector"`
}

// JobFilters lists the distinct values a visitor can filter on.
type JobFilters struct {
	Locations []string `json:"locations"`
	Sectors   []string `json:"sectors"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	DistinctLocations(ctx context.Context) ([]string, error)
	DistinctSectors(ctx context.Context) ([]string, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in JobInput) (*Job, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	UpdateJob(ctx context.Context, id int64, in JobInput) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]Job, error)
	ListLocations(ctx context.Context) ([]string, error)
	ListSectors(ctx context.Context) ([]string, error)
	ListFilters(ctx context.Context) (*JobFilters, error)
}
