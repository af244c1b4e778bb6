package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// EnvStore defines the interface for environment-variable metadata operations.
type EnvStore interface {
	// Upsert inserts or replaces a variable by name.
	Upsert(ctx context.Context, envVar *EnvVariable) error
	// ListAll returns every stored variable ordered by name.
	ListAll(ctx context.Context) ([]EnvVariable, error)
}

// EnvRepo provides methods for environment-variable operations.
// It implements the EnvStore interface.
type EnvRepo struct {
	db *sql.DB
}

// NewEnvRepo creates a new EnvRepo.
func NewEnvRepo(db *sql.DB) *EnvRepo {
	return &EnvRepo{db: db}
}

// Upsert inserts or replaces a variable by name.
func (r *EnvRepo) Upsert(ctx context.Context, envVar *EnvVariable) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO env_variables (name, description, is_required, default_value)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			is_required = excluded.is_required,
			default_value = excluded.default_value`,
		envVar.Name, envVar.Description, envVar.IsRequired, envVar.DefaultValue,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert env variable: %w", err)
	}
	return nil
}

// ListAll returns every stored variable ordered by name.
func (r *EnvRepo) ListAll(ctx context.Context) ([]EnvVariable, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, is_required, default_value FROM env_variables ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query env variables: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var envVars []EnvVariable
	for rows.Next() {
		var envVar EnvVariable
		if err := rows.Scan(&envVar.ID, &envVar.Name, &envVar.Description,
			&envVar.IsRequired, &envVar.DefaultValue); err != nil {
			return nil, fmt.Errorf("failed to scan env variable: %w", err)
		}
		envVars = append(envVars, envVar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate env variables: %w", err)
	}
	return envVars, nil
}
