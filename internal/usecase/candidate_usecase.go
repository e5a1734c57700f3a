package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/antivirus"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/audit"
	"go-careers-backend/pkg/logger"
	"go-careers-backend/pkg/observability"
	"go-careers-backend/pkg/storage"
	"go-careers-backend/pkg/upload"
	"go-careers-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const blobCleanupTimeout = 10 * time.Second

type candidateUsecase struct {
	repo      domain.CandidateRepository
	blobs     domain.ResumeBlobStore // nil keeps resumes inline
	scanner   antivirus.Scanner
	validate  *validator.Validate
	maxResume int64
	audit     *audit.Logger
	metrics   *observability.Recorder
}

func NewCandidateUsecase(
	repo domain.CandidateRepository,
	blobs domain.ResumeBlobStore,
	scanner antivirus.Scanner,
	validate *validator.Validate,
	maxResumeBytes int64,
	auditLogger *audit.Logger,
	metrics *observability.Recorder,
) domain.CandidateUsecase {
	if scanner == nil {
		scanner = antivirus.NewNoOpScanner()
	}
	if maxResumeBytes <= 0 {
		maxResumeBytes = upload.DefaultMaxResumeBytes
	}
	return &candidateUsecase{
		repo:      repo,
		blobs:     blobs,
		scanner:   scanner,
		validate:  validate,
		maxResume: maxResumeBytes,
		audit:     auditLogger,
		metrics:   metrics,
	}
}

// UpsertCandidate creates the candidate or overwrites name, phone and (when
// supplied) resume of the existing row with the same email.
func (u *candidateUsecase) UpsertCandidate(ctx context.Context, in domain.CandidateInput, resume *upload.Resume) (*domain.UpsertResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.Validation(validation.Message(err), err)
	}

	upsert := &domain.CandidateUpsert{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}

	if resume != nil {
		if err := u.checkResume(ctx, in.Email, resume); err != nil {
			return nil, err
		}

		if u.blobs != nil {
			key, err := u.blobs.Put(ctx, resume.Data)
			if err != nil {
				u.storageFailure(ctx, in.Email, "resume_put", err)
				return nil, apperror.Storage(err)
			}
			upsert.ResumeKey = key
		} else {
			upsert.Resume = resume.Data
		}
	}

	res, err := u.repo.Upsert(ctx, upsert)
	if err != nil {
		u.storageFailure(ctx, in.Email, "candidate_upsert", err)
		if upsert.ResumeKey != "" {
			u.deleteBlob(ctx, upsert.ResumeKey)
		}
		return nil, apperror.Storage(err)
	}
	if res.ReplacedResumeKey != "" {
		u.deleteBlob(ctx, res.ReplacedResumeKey)
	}

	u.metrics.CandidateUpserted(ctx, res.Created)
	event := audit.EventCandidateUpdated
	if res.Created {
		event = audit.EventCandidateCreated
	}
	u.audit.Log(ctx, audit.Event{
		Event:     event,
		Email:     in.Email,
		RequestID: logger.RequestIDFromContext(ctx),
		Details: map[string]interface{}{
			"candidate_id":  res.ID,
			"resume_stored": resume != nil,
		},
	})

	return res, nil
}

// checkResume runs the format checks and then the malware scan.
func (u *candidateUsecase) checkResume(ctx context.Context, email string, resume *upload.Resume) error {
	if err := upload.ValidateResume(resume, u.maxResume); err != nil {
		u.rejectResume(ctx, email, rejectReason(err), resume)
		return apperror.PayloadRejected(resumeMessage(err, u.maxResume), err)
	}

	result := u.scanner.Scan(ctx, resume.Filename, bytes.NewReader(resume.Data))
	if !result.Clean() {
		reason := "infected"
		if result.Error != nil {
			reason = "scan_failed"
			logger.FromContext(ctx).Error("Resume scan failed",
				"scanner", result.ScannerName,
				"error", result.Error,
			)
		}
		u.rejectResume(ctx, email, reason, resume)
		return apperror.PayloadRejected("Resume could not be accepted. Please upload a different PDF.", result.Error)
	}
	return nil
}

func (u *candidateUsecase) rejectResume(ctx context.Context, email, reason string, resume *upload.Resume) {
	u.metrics.ResumeRejected(ctx, reason)
	u.audit.Log(ctx, audit.Event{
		Event:     audit.EventPayloadRejected,
		Email:     email,
		RequestID: logger.RequestIDFromContext(ctx),
		Details: map[string]interface{}{
			"reason":       reason,
			"size":         resume.Size(),
			"content_type": resume.ContentType,
		},
	})
}

func (u *candidateUsecase) storageFailure(ctx context.Context, email, op string, err error) {
	logger.FromContext(ctx).Error("Candidate storage failed", "op", op, "error", err)
	u.audit.Log(ctx, audit.Event{
		Event:     audit.EventStorageFailure,
		Email:     email,
		RequestID: logger.RequestIDFromContext(ctx),
		Details:   map[string]interface{}{"op": op},
	})
}

// deleteBlob removes an object no row refers to any more. It runs detached from
// the request deadline so a timed-out upsert still cleans up its upload.
func (u *candidateUsecase) deleteBlob(ctx context.Context, key string) {
	if u.blobs == nil {
		return
	}
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), blobCleanupTimeout)
	defer cancel()

	if err := u.blobs.Delete(cleanupCtx, key); err != nil {
		logger.FromContext(ctx).Warn("Orphaned resume object left in storage", "key", key, "error", err)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, upload.ErrEmptyFile):
		return "empty"
	case errors.Is(err, upload.ErrTooLarge):
		return "too_large"
	case errors.Is(err, upload.ErrNotPDF):
		return "not_pdf"
	case errors.Is(err, upload.ErrContentMismatch):
		return "content_mismatch"
	default:
		return "invalid"
	}
}

func resumeMessage(err error, maxBytes int64) string {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		if maxBytes == upload.DefaultMaxResumeBytes {
			return "Resume file size should not exceed 3MB"
		}
		return fmt.Sprintf("Resume file size should not exceed %d bytes", maxBytes)
	case errors.Is(err, upload.ErrEmptyFile):
		return "Resume file is empty"
	default:
		return "Only PDF files are allowed"
	}
}

func (u *candidateUsecase) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := u.repo.List(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return candidates, nil
}

// GetResume returns the PDF bytes from the row or from object storage.
func (u *candidateUsecase) GetResume(ctx context.Context, candidateID int64) ([]byte, error) {
	if candidateID <= 0 {
		return nil, apperror.BadRequest("Invalid candidate ID")
	}

	stored, err := u.repo.GetResume(ctx, candidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Resume not found")
		}
		return nil, apperror.Storage(err)
	}

	if stored.Key == "" {
		return stored.Data, nil
	}
	if u.blobs == nil {
		return nil, apperror.Storage(fmt.Errorf("resume %s is in object storage but no store is configured", stored.Key))
	}

	data, err := u.blobs.Get(ctx, stored.Key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, apperror.NotFound("Resume not found")
		}
		return nil, apperror.Storage(err)
	}
	return data, nil
}
