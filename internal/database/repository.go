package database

import (
	"context"
	"database/sql"
)

// Repository owns the database handle and exposes the task operations.
type Repository struct {
	*TaskRepo
	db *sql.DB
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB, opts ...RepoOption) *Repository {
	return &Repository{
		TaskRepo: NewTaskRepo(db, opts...),
		db:       db,
	}
}

// HealthCheck verifies that the database answers queries.
func (r *Repository) HealthCheck(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return wrapErr("health check", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}
