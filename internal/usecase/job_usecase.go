package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
		now:      time.Now,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	job, err := u.buildJob(in)
	if err != nil {
		return nil, err
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Storage(err)
	}
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	if id <= 0 {
		return nil, apperror.BadRequest("Invalid job ID")
	}
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Storage(err)
	}
	return job, nil
}

// UpdateJob replaces every field of an existing job.
func (u *jobUsecase) UpdateJob(ctx context.Context, id int64, in domain.JobInput) (*domain.Job, error) {
	if id <= 0 {
		return nil, apperror.BadRequest("Invalid job ID")
	}
	job, err := u.buildJob(in)
	if err != nil {
		return nil, err
	}
	job.ID = id

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Storage(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	filter.Location = strings.TrimSpace(filter.Location)
	filter.Sector = strings.TrimSpace(filter.Sector)

	jobs, err := u.jobRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return jobs, nil
}

func (u *jobUsecase) ListLocations(ctx context.Context) ([]string, error) {
	locations, err := u.jobRepo.DistinctLocations(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return locations, nil
}

func (u *jobUsecase) ListSectors(ctx context.Context) ([]string, error) {
	sectors, err := u.jobRepo.DistinctSectors(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return sectors, nil
}

func (u *jobUsecase) ListFilters(ctx context.Context) (*domain.JobFilters, error) {
	locations, err := u.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	sectors, err := u.ListSectors(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.JobFilters{Locations: locations, Sectors: sectors}, nil
}

// buildJob validates the input and fills the posting date with today (UTC) when omitted.
func (u *jobUsecase) buildJob(in domain.JobInput) (*domain.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.Sector = strings.TrimSpace(in.Sector)
	in.Date = strings.TrimSpace(in.Date)

	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validation.Message(err), err)
	}

	date := in.Date
	if date == "" {
		date = u.now().UTC().Format(domain.DateLayout)
	}

	return &domain.Job{
		Title:       in.Title,
		Location:    in.Location,
		Sector:      in.Sector,
		Date:        date,
		Description: in.Description,
		Experience:  in.Experience,
		Details:     in.Details,
	}, nil
}
