package postgres

import (
	"context"
	"regexp"
	"testing"

	"go-careers-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobRowColumns = []string{"id", "title", "location", "sector", "date", "description", "experience", "details"}

func TestJobRepo_Fetch(t *testing.T) {
	t.Run("Should list all jobs without filters", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewJobRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM jobs ORDER BY date DESC, id DESC`)).
			WillReturnRows(pgxmock.NewRows(jobRowColumns).
				AddRow(int64(2), "Nurse", "Osaka", "Healthcare", "2024-03-02", "", "", "").
				AddRow(int64(1), "Welder", "Nagoya", "Manufacturing", "2024-03-01", "", "", ""))

		jobs, err := repo.Fetch(context.Background(), domain.JobFilter{})

		require.NoError(t, err)
		assert.Len(t, jobs, 2)
		assert.Equal(t, "2024-03-02", jobs[0].Date)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should combine filters with AND", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewJobRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE location = $1 AND sector = $2 ORDER BY`)).
			WithArgs("Osaka", "Healthcare").
			WillReturnRows(pgxmock.NewRows(jobRowColumns))

		jobs, err := repo.Fetch(context.Background(), domain.JobFilter{Location: "Osaka", Sector: "Healthcare"})

		require.NoError(t, err)
		assert.NotNil(t, jobs)
		assert.Empty(t, jobs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should bind sector alone as the first parameter", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewJobRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`WHERE sector = $1 ORDER BY`)).
			WithArgs("IT").
			WillReturnRows(pgxmock.NewRows(jobRowColumns))

		_, err := repo.Fetch(context.Background(), domain.JobFilter{Sector: "IT"})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJobRepo_CreateAndUpdate(t *testing.T) {
	job := &domain.Job{Title: "Welder", Location: "Nagoya", Sector: "Manufacturing", Date: "2024-03-01"}

	t.Run("Should set the generated id", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewJobRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO jobs`)).
			WithArgs("Welder", "Nagoya", "Manufacturing", "2024-03-01", "", "", "").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

		require.NoError(t, repo.Create(context.Background(), job))
		assert.Equal(t, int64(11), job.ID)
	})

	t.Run("Should return not found when no row was updated", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewJobRepository(mock)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE jobs SET`)).
			WithArgs(int64(11), "Welder", "Nagoya", "Manufacturing", "2024-03-01", "", "", "").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(context.Background(), job)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestJobRepo_GetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM jobs WHERE id = $1`)).WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobRepo_Distinct(t *testing.T) {
	mock := newMockPool(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT location FROM jobs WHERE location IS NOT NULL AND location <> '' ORDER BY location COLLATE "C"`)).
		WillReturnRows(pgxmock.NewRows([]string{"location"}).AddRow("Nagoya").AddRow("Osaka"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT sector FROM jobs WHERE sector IS NOT NULL AND sector <> '' ORDER BY sector COLLATE "C"`)).
		WillReturnRows(pgxmock.NewRows([]string{"sector"}))

	locations, err := repo.DistinctLocations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Nagoya", "Osaka"}, locations)

	sectors, err := repo.DistinctSectors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, sectors)
	assert.NoError(t, mock.ExpectationsWereMet())
}
