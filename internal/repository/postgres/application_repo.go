package postgres

import (
	"context"
	"errors"
	"time"

	"go-careers-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type applicationRepo struct {
	db DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db DB) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Submit looks up the candidate by email, bumps application_count and inserts
// the application in one SERIALIZABLE transaction. Every early return rolls back.
//
// Errors: domain.ErrCandidateNotFound, domain.ErrDuplicateApplication,
// domain.ErrJobNotFound, domain.ErrSerialization (caller may retry).
func (r *applicationRepo) Submit(ctx context.Context, jobID int64, email string, appliedAt time.Time) (*domain.Application, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	app := &domain.Application{
		JobID:           jobID,
		ApplicationDate: appliedAt,
		Status:          domain.ApplicationStatusPending,
	}

	err = tx.QueryRow(ctx, `SELECT id FROM candidates WHERE email = $1`, email).Scan(&app.CandidateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, mapTxError(err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE candidates SET application_count = application_count + 1, updated_at = NOW() WHERE id = $1`,
		app.CandidateID,
	)
	if err != nil {
		return nil, mapTxError(err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO job_applications (job_id, candidate_id, application_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		app.JobID, app.CandidateID, app.ApplicationDate, app.Status,
	).Scan(&app.ID)
	if err != nil {
		return nil, mapTxError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapTxError(err)
	}
	return app, nil
}

// Applied runs outside any transaction, so it sees whatever the competing
// submission committed.
func (r *applicationRepo) Applied(ctx context.Context, jobID int64, email string) (bool, error) {
	var applied bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM job_applications ja
			JOIN candidates c ON ja.candidate_id = c.id
			WHERE ja.job_id = $1 AND c.email = $2
		)`, jobID, email,
	).Scan(&applied)
	return applied, err
}

// mapTxError converts constraint and concurrency failures to domain errors.
func mapTxError(err error) error {
	switch pgCode(err) {
	case sqlStateUniqueViolation:
		return domain.ErrDuplicateApplication
	case sqlStateForeignKeyViolation:
		return domain.ErrJobNotFound
	case sqlStateSerializationFailure, sqlStateDeadlockDetected:
		return domain.ErrSerialization
	default:
		return err
	}
}

// ListByCandidateEmail returns a candidate's applications with job details, newest first
func (r *applicationRepo) ListByCandidateEmail(ctx context.Context, email string) ([]domain.CandidateApplication, error) {
	query := `
		SELECT
			ja.id, j.id, j.title, COALESCE(j.location, ''), COALESCE(j.sector, ''),
			ja.application_date, ja.status
		FROM job_applications ja
		JOIN candidates c ON ja.candidate_id = c.id
		JOIN jobs j ON ja.job_id = j.id
		WHERE c.email = $1
		ORDER BY ja.application_date DESC, ja.id DESC`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := make([]domain.CandidateApplication, 0)
	for rows.Next() {
		var a domain.CandidateApplication
		if err := rows.Scan(
			&a.ApplicationID, &a.JobID, &a.Title, &a.Location, &a.Sector,
			&a.ApplicationDate, &a.Status,
		); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

// ListByJob returns the applicants of a job with candidate contact data, newest first
func (r *applicationRepo) ListByJob(ctx context.Context, jobID int64) ([]domain.JobApplicant, error) {
	query := `
		SELECT
			ja.id, c.id, c.name, c.email, COALESCE(c.phone, ''),
			(c.resume IS NOT NULL OR c.resume_key IS NOT NULL) AS has_resume,
			ja.application_date, ja.status
		FROM job_applications ja
		JOIN candidates c ON ja.candidate_id = c.id
		WHERE ja.job_id = $1
		ORDER BY ja.application_date DESC, ja.id DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applicants := make([]domain.JobApplicant, 0)
	for rows.Next() {
		var a domain.JobApplicant
		if err := rows.Scan(
			&a.ApplicationID, &a.CandidateID, &a.Name, &a.Email, &a.Phone, &a.HasResume,
			&a.ApplicationDate, &a.Status,
		); err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}
