package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stores.go -package=mocks github.com/esenthil2018/whisper-assistant/internal/storage APIStore,EnvStore,RepoInfoStore

import (
	"context"
	"database/sql"
	"fmt"
)

// APIStore defines the interface for API metadata operations.
type APIStore interface {
	// Insert inserts a single API record.
	Insert(ctx context.Context, record *APIRecord) error
	// Search returns records whose name or docstring contains the term.
	Search(ctx context.Context, term string) ([]APIRecord, error)
	// DeleteAll removes every record, used before re-indexing.
	DeleteAll(ctx context.Context) error
}

// APIRepo provides methods for API metadata operations.
// It implements the APIStore interface.
type APIRepo struct {
	db *sql.DB
}

// NewAPIRepo creates a new APIRepo.
func NewAPIRepo(db *sql.DB) *APIRepo {
	return &APIRepo{db: db}
}

// Insert inserts a single API record.
func (r *APIRepo) Insert(ctx context.Context, record *APIRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO api_metadata (name, docstring, parameters, return_type, file_path) VALUES (?, ?, ?, ?, ?)",
		record.Name, record.Docstring, record.Parameters, record.ReturnType, record.FilePath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert api record: %w", err)
	}
	return nil
}

// Search returns records whose name or docstring contains the term,
// case-insensitively, capped at 20 rows.
func (r *APIRepo) Search(ctx context.Context, term string) ([]APIRecord, error) {
	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, docstring, parameters, return_type, file_path
		 FROM api_metadata
		 WHERE name LIKE ? OR docstring LIKE ?
		 LIMIT 20`,
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search api metadata: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []APIRecord
	for rows.Next() {
		var record APIRecord
		if err := rows.Scan(&record.ID, &record.Name, &record.Docstring,
			&record.Parameters, &record.ReturnType, &record.FilePath); err != nil {
			return nil, fmt.Errorf("failed to scan api record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate api records: %w", err)
	}
	return records, nil
}

// DeleteAll removes every API record.
func (r *APIRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM api_metadata"); err != nil {
		return fmt.Errorf("failed to delete api metadata: %w", err)
	}
	return nil
}
