package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
//
// A context that is already done skips the work entirely. Once the
// transaction has begun it runs to commit or rollback even if ctx is
// cancelled afterwards.
func withTx(ctx context.Context, db *sql.DB, op string, fn func(context.Context, *sql.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable(op+": begin", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "op", op, "error", err)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return wrapErr(op, err)
	}

	if err := tx.Commit(); err != nil {
		return unavailable(op+": commit", err)
	}

	return nil
}

// nullString maps the empty string to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringToString converts sql.NullString to string.
// Returns empty string if the value is not valid.
func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
