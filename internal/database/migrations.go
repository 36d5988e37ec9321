package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaVersion is stored in PRAGMA user_version once the schema is in place
const schemaVersion = 1

// runMigrations creates the database schema if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return wrapErr("migrate", err)
	}
	if version >= schemaVersion {
		return nil
	}

	return withTx(ctx, db, "migrate", func(ctx context.Context, tx *sql.Tx) error {
		statements := []string{
			`CREATE TABLE IF NOT EXISTS tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT,
				description TEXT,
				isCompleted INTEGER NOT NULL DEFAULT 0,
				isDeleted INTEGER NOT NULL DEFAULT 0,
				dueDate TEXT,
				createdAt TEXT NOT NULL,
				updatedAt TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_deleted_created
				ON tasks(isDeleted, createdAt)`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_deleted_updated
				ON tasks(isDeleted, updatedAt)`,
			fmt.Sprintf("PRAGMA user_version = %d", schemaVersion),
		}

		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
