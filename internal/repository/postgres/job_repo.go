package postgres

import (
	"context"
	"fmt"
	"strings"

	"go-careers-backend/internal/domain"
)

type jobRepo struct {
	db DB
}

func NewJobRepository(db DB) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, title, COALESCE(location, ''), COALESCE(sector, ''), to_char(date, 'YYYY-MM-DD'),
	COALESCE(description, ''), COALESCE(experience, ''), COALESCE(details, '')`

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (title, location, sector, date, description, experience, details)
              VALUES ($1, $2, $3, $4::date, $5, $6, $7) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.Title, job.Location, job.Sector, job.Date, job.Description, job.Experience, job.Details,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Location, &job.Sector, &job.Date,
		&job.Description, &job.Experience, &job.Details,
	)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &job, nil
}

// Fetch lists jobs newest first, narrowed by the equality filters that are set.
func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	var (
		where []string
		args  []any
	)
	if filter.Location != "" {
		args = append(args, filter.Location)
		where = append(where, fmt.Sprintf("location = $%d", len(args)))
	}
	if filter.Sector != "" {
		args = append(args, filter.Sector)
		where = append(where, fmt.Sprintf("sector = $%d", len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Location, &job.Sector, &job.Date,
			&job.Description, &job.Experience, &job.Details,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $2, location = $3, sector = $4, date = $5::date,
              description = $6, experience = $7, details = $8 WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Location, job.Sector, job.Date, job.Description, job.Experience, job.Details,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DistinctLocations sorts bytewise so the order does not depend on the database locale.
func (r *jobRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT location FROM jobs WHERE location IS NOT NULL AND location <> '' ORDER BY location COLLATE "C"`)
}

func (r *jobRepo) DistinctSectors(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT sector FROM jobs WHERE sector IS NOT NULL AND sector <> '' ORDER BY sector COLLATE "C"`)
}

func (r *jobRepo) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
