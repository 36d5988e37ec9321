package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrConstraintViolation is returned when a write breaks a schema
	// constraint, e.g. inserting an id that already exists.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStorageUnavailable is returned when the database cannot be read or
	// written: locked, busy, corrupt, full, closed or unopenable.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrTaskNotFound is returned by lookups of a single task by id.
	// Writes against a missing row are never reported as errors.
	ErrTaskNotFound = errors.New("task not found")
)

// ErrorKind classifies a StoreError.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConstraint
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindConstraint:
		return "constraint"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// StoreError wraps a failure reported by the database driver.
type StoreError struct {
	Op   string
	Kind ErrorKind
	Code int // SQLite extended result code, 0 when not a driver error
	Err  error
}

func (e *StoreError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %s (sqlite code %d): %v", e.Op, e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel for the error's kind.
func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrConstraintViolation:
		return e.Kind == KindConstraint
	case ErrStorageUnavailable:
		return e.Kind == KindUnavailable
	}
	return false
}

// wrapErr classifies err and wraps it in a StoreError.
// Context errors and errors that are already StoreErrors pass through unchanged.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}

	kind, code := classify(err)
	return &StoreError{Op: op, Kind: kind, Code: code, Err: err}
}

// unavailable wraps err as a StoreError of KindUnavailable regardless of
// its driver code. Used for transaction begin and commit failures.
func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	_, code := classify(err)
	return &StoreError{Op: op, Kind: KindUnavailable, Code: code, Err: err}
}

func classify(err error) (ErrorKind, int) {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) {
		return KindUnavailable, 0
	}

	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return KindUnknown, 0
	}

	code := sqliteErr.Code()
	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return KindConstraint, code
	case sqlite3.SQLITE_BUSY,
		sqlite3.SQLITE_LOCKED,
		sqlite3.SQLITE_IOERR,
		sqlite3.SQLITE_FULL,
		sqlite3.SQLITE_CANTOPEN,
		sqlite3.SQLITE_READONLY,
		sqlite3.SQLITE_CORRUPT,
		sqlite3.SQLITE_NOTADB:
		return KindUnavailable, code
	default:
		return KindUnknown, code
	}
}
