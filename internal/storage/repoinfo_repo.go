package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Well-known repository_info keys written by the indexing pipeline.
const (
	RepoInfoStats     = "stats"
	RepoInfoSummaries = "summaries"
)

// RepoInfoStore defines the interface for repository-level key/value metadata.
type RepoInfoStore interface {
	// Set stores or replaces a value for the key.
	Set(ctx context.Context, key, value string) error
	// Get returns the value for the key. Returns ErrNotFound if absent.
	Get(ctx context.Context, key string) (string, error)
}

// RepoInfoRepo provides methods for repository info operations.
// It implements the RepoInfoStore interface.
type RepoInfoRepo struct {
	db *sql.DB
}

// NewRepoInfoRepo creates a new RepoInfoRepo.
func NewRepoInfoRepo(db *sql.DB) *RepoInfoRepo {
	return &RepoInfoRepo{db: db}
}

// Set stores or replaces a value for the key.
func (r *RepoInfoRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO repository_info (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set repository info: %w", err)
	}
	return nil
}

// Get returns the value for the key. Returns ErrNotFound if absent.
func (r *RepoInfoRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM repository_info WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get repository info: %w", err)
	}
	return value, nil
}
