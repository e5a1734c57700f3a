package postgres

import (
	"context"
	"regexp"
	"testing"

	"go-careers-backend/internal/domain"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRepo_ListTables(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAdminRepository(mock)

	for _, name := range []string{"candidates", "job_applications", "jobs"} {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "` + name + `"`)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(len(name))))
	}

	tables, err := repo.ListTables(context.Background())

	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, "candidates", tables[0].Name)
	assert.Equal(t, "jobs", tables[2].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepo_BrowseTable(t *testing.T) {
	t.Run("Should reject tables outside the whitelist", func(t *testing.T) {
		repo := NewAdminRepository(newMockPool(t))
		_, err := repo.BrowseTable(context.Background(), "pg_shadow", 10)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Should never select resume columns", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewAdminRepository(mock)

		cols := browsableTables["candidates"]
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "candidates" ORDER BY id LIMIT $1`)).WithArgs(3).
			WillReturnRows(pgxmock.NewRows(cols).
				AddRow(int64(1), "Ana", "ana@gmail.com", "", 1, nil, nil))

		rows, err := repo.BrowseTable(context.Background(), "candidates", 2)

		require.NoError(t, err)
		assert.NotContains(t, rows.Columns, "resume")
		assert.NotContains(t, rows.Columns, "resume_key")
		require.Len(t, rows.Rows, 1)
		assert.Equal(t, "Ana", rows.Rows[0]["name"])
		assert.False(t, rows.Truncated)
	})

	t.Run("Should flag truncation when more rows exist", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewAdminRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "job_applications"`)).WithArgs(2).
			WillReturnRows(pgxmock.NewRows(browsableTables["job_applications"]).
				AddRow(int64(1), int64(1), int64(1), nil, "pending").
				AddRow(int64(2), int64(1), int64(2), nil, "pending"))

		rows, err := repo.BrowseTable(context.Background(), "job_applications", 1)

		require.NoError(t, err)
		assert.Len(t, rows.Rows, 1)
		assert.True(t, rows.Truncated)
	})
}
