package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/audit"
	"go-careers-backend/pkg/logger"
	"go-careers-backend/pkg/observability"
	"go-careers-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// maxSubmitAttempts bounds retries of a submission aborted by a serialization failure.
// A submission still aborting after the last attempt is checked against committed
// applications before it is reported as a storage error.
const maxSubmitAttempts = 3

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	validate        *validator.Validate
	audit           *audit.Logger
	metrics         *observability.Recorder
	now             func() time.Time
	retryBackoff    time.Duration
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	validate *validator.Validate,
	auditLogger *audit.Logger,
	metrics *observability.Recorder,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		validate:        validate,
		audit:           auditLogger,
		metrics:         metrics,
		now:             time.Now,
		retryBackoff:    20 * time.Millisecond,
	}
}

// SubmitApplication records that the candidate with the given email applied to the job.
// The candidate must already exist; a second application to the same job is rejected.
func (uc *applicationUsecase) SubmitApplication(ctx context.Context, in domain.ApplyInput) (*domain.Application, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validation.Message(err), err)
	}

	var (
		app      *domain.Application
		err      error
		attempts int
	)
	for attempts = 1; attempts <= maxSubmitAttempts; attempts++ {
		appliedAt := uc.now().UTC().Truncate(time.Second)
		app, err = uc.applicationRepo.Submit(ctx, in.JobID, in.Email, appliedAt)
		if !errors.Is(err, domain.ErrSerialization) || attempts == maxSubmitAttempts {
			break
		}

		logger.FromContext(ctx).Warn("Retrying application after serialization failure",
			"job_id", in.JobID,
			"attempt", attempts,
		)
		if waitErr := sleepCtx(ctx, time.Duration(attempts)*uc.retryBackoff); waitErr != nil {
			err = waitErr
			break
		}
	}
	uc.metrics.SubmitAttempts(ctx, attempts)

	// Retries exhausted: a competing submission for the same pair usually
	// committed, and the caller should see that as a duplicate.
	if errors.Is(err, domain.ErrSerialization) {
		if applied, lookupErr := uc.applicationRepo.Applied(ctx, in.JobID, in.Email); lookupErr == nil && applied {
			err = domain.ErrDuplicateApplication
		}
	}

	event := audit.Event{
		Email:     in.Email,
		RequestID: logger.RequestIDFromContext(ctx),
		Details:   map[string]interface{}{"job_id": in.JobID},
	}

	switch {
	case err == nil:
		uc.metrics.ApplicationOutcome(ctx, "accepted")
		event.Event = audit.EventApplicationSubmitted
		event.Details["application_id"] = app.ID
		uc.audit.Log(ctx, event)
		return app, nil

	case errors.Is(err, domain.ErrCandidateNotFound):
		uc.metrics.ApplicationOutcome(ctx, "candidate_not_found")
		event.Event = audit.EventCandidateMissing
		uc.audit.Log(ctx, event)
		return nil, apperror.CandidateNotFound()

	case errors.Is(err, domain.ErrDuplicateApplication):
		uc.metrics.ApplicationOutcome(ctx, "duplicate")
		event.Event = audit.EventApplicationDuplicate
		uc.audit.Log(ctx, event)
		return nil, apperror.DuplicateApplication()

	case errors.Is(err, domain.ErrJobNotFound):
		uc.metrics.ApplicationOutcome(ctx, "job_not_found")
		return nil, apperror.NotFound("Job not found")

	default:
		uc.metrics.ApplicationOutcome(ctx, "error")
		logger.FromContext(ctx).Error("Application submit failed",
			"job_id", in.JobID,
			"attempts", attempts,
			"error", err,
		)
		event.Event = audit.EventStorageFailure
		event.Details["op"] = "application_submit"
		uc.audit.Log(ctx, event)
		return nil, apperror.Storage(err)
	}
}

// ListByCandidateEmail returns the application history of one candidate
func (uc *applicationUsecase) ListByCandidateEmail(ctx context.Context, email string) ([]domain.CandidateApplication, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := uc.validate.Var(email, "required,email"); err != nil {
		return nil, apperror.BadRequest("A valid email address is required")
	}

	apps, err := uc.applicationRepo.ListByCandidateEmail(ctx, email)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return apps, nil
}

// ListApplicantsByJob returns everyone who applied to the job
func (uc *applicationUsecase) ListApplicantsByJob(ctx context.Context, jobID int64) ([]domain.JobApplicant, error) {
	if jobID <= 0 {
		return nil, apperror.BadRequest("Invalid job ID")
	}

	applicants, err := uc.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return applicants, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
