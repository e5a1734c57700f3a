package postgres

import (
	"context"

	"go-careers-backend/internal/domain"
)

type candidateRepository struct {
	db DB
}

func NewCandidateRepository(db DB) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

// upsertCandidateQuery keys on email. A supplied resume (bytes or object key)
// replaces both resume columns; otherwise the stored pair is kept.
// xmax is 0 only for a freshly inserted tuple. prev locks the existing row so
// the returned resume_key is the one this statement overwrites.
const upsertCandidateQuery = `
	WITH prev AS (
		SELECT resume_key FROM candidates WHERE email = $2 FOR UPDATE
	)
	INSERT INTO candidates (name, email, phone, resume, resume_key)
	VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''))
	ON CONFLICT (email) DO UPDATE SET
		name = EXCLUDED.name,
		phone = EXCLUDED.phone,
		resume = CASE WHEN EXCLUDED.resume IS NULL AND EXCLUDED.resume_key IS NULL
			THEN candidates.resume ELSE EXCLUDED.resume END,
		resume_key = CASE WHEN EXCLUDED.resume IS NULL AND EXCLUDED.resume_key IS NULL
			THEN candidates.resume_key ELSE EXCLUDED.resume_key END,
		updated_at = NOW()
	RETURNING id, (xmax = 0) AS inserted, COALESCE((SELECT resume_key FROM prev), '') AS previous_key`

func (r *candidateRepository) Upsert(ctx context.Context, c *domain.CandidateUpsert) (*domain.UpsertResult, error) {
	var resume []byte
	if len(c.Resume) > 0 {
		resume = c.Resume
	}

	var res domain.UpsertResult
	var previousKey string
	err := r.db.QueryRow(ctx, upsertCandidateQuery,
		c.Name, c.Email, c.Phone, resume, c.ResumeKey,
	).Scan(&res.ID, &res.Created, &previousKey)
	if err != nil {
		return nil, err
	}

	// The stored pair is only overwritten when a new resume was supplied.
	if (len(resume) > 0 || c.ResumeKey != "") && previousKey != c.ResumeKey {
		res.ReplacedResumeKey = previousKey
	}
	return &res, nil
}

func (r *candidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''),
			(resume IS NOT NULL OR resume_key IS NOT NULL) AS has_resume,
			application_count, created_at, updated_at
		FROM candidates
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := make([]domain.Candidate, 0)
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.HasResume,
			&c.ApplicationCount, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// GetResume returns domain.ErrNotFound when the candidate is missing or has no resume.
func (r *candidateRepository) GetResume(ctx context.Context, candidateID int64) (*domain.StoredResume, error) {
	var stored domain.StoredResume
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(resume, ''::bytea), COALESCE(resume_key, '') FROM candidates WHERE id = $1`,
		candidateID,
	).Scan(&stored.Data, &stored.Key)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if len(stored.Data) == 0 && stored.Key == "" {
		return nil, domain.ErrNotFound
	}
	return &stored, nil
}
