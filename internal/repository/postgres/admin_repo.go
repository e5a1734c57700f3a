package postgres

import (
	"context"
	"sort"
	"strings"

	"go-careers-backend/internal/domain"

	"github.com/lib/pq"
)

// browsableTables whitelists the tables the store browser may read and the
// columns it may return. Resume bytes and object keys are never exposed.
var browsableTables = map[string][]string{
	"jobs":             {"id", "title", "location", "sector", "date", "description", "experience", "details"},
	"candidates":       {"id", "name", "email", "phone", "application_count", "created_at", "updated_at"},
	"job_applications": {"id", "job_id", "candidate_id", "application_date", "status"},
}

type adminRepo struct {
	db DB
}

func NewAdminRepository(db DB) domain.AdminRepository {
	return &adminRepo{db: db}
}

// ListTables returns the browsable tables with their row counts, sorted by name
func (r *adminRepo) ListTables(ctx context.Context) ([]domain.TableInfo, error) {
	names := make([]string, 0, len(browsableTables))
	for name := range browsableTables {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]domain.TableInfo, 0, len(names))
	for _, name := range names {
		info := domain.TableInfo{Name: name}
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM `+pq.QuoteIdentifier(name)).Scan(&info.Rows); err != nil {
			return nil, err
		}
		tables = append(tables, info)
	}
	return tables, nil
}

// BrowseTable reads up to limit rows of a whitelisted table ordered by id.
// Unknown names return domain.ErrNotFound.
func (r *adminRepo) BrowseTable(ctx context.Context, name string, limit int) (*domain.TableRows, error) {
	columns, ok := browsableTables[name]
	if !ok {
		return nil, domain.ErrNotFound
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = pq.QuoteIdentifier(col)
	}
	query := `SELECT ` + strings.Join(quoted, ", ") + ` FROM ` + pq.QuoteIdentifier(name) + ` ORDER BY id LIMIT $1`

	// One extra row tells us whether the result was cut off
	rows, err := r.db.Query(ctx, query, limit+1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &domain.TableRows{
		Table:   name,
		Columns: columns,
		Rows:    make([]map[string]any, 0),
	}
	for rows.Next() {
		if len(result.Rows) == limit {
			result.Truncated = true
			break
		}
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
