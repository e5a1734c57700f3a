package domain

import "context"

// MaxBrowseRows caps the rows returned by the table browser.
const MaxBrowseRows = 500

// TableInfo names a browsable table and its current row count.
type TableInfo struct {
	Name string `json:"name"`
	Rows int64  `json:"rows"`
}

// TableRows is a read-only page of a table.
type TableRows struct {
	Table     string           `json:"table"`
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	Truncated bool             `json:"truncated"`
}

// Export is a generated file ready to stream.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// AdminRepository gives read-only access to the store's tables.
type AdminRepository interface {
	ListTables(ctx context.Context) ([]TableInfo, error)
	BrowseTable(ctx context.Context, name string, limit int) (*TableRows, error)
}

// AdminUsecase serves the store browser and applicant exports.
type AdminUsecase interface {
	ListTables(ctx context.Context) ([]TableInfo, error)
	BrowseTable(ctx context.Context, name string) (*TableRows, error)
	ExportApplicantsByJob(ctx context.Context, jobID int64) (*Export, error)
}
