package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/thenoetrevino/todo/internal/database"
)

// SetupTestDB creates an in-memory database with the full schema.
// The database is closed automatically when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.InitDB(context.Background(), ":memory:", 0)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// CreateTestTask inserts an active, incomplete task and returns its ID
func CreateTestTask(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	return insertRaw(t, db, title, false, false, nil)
}

// CreateCompletedTestTask inserts an active, completed task and returns its ID
func CreateCompletedTestTask(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	return insertRaw(t, db, title, true, false, nil)
}

// CreateDeletedTestTask inserts a task already in the trash and returns its ID
func CreateDeletedTestTask(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	return insertRaw(t, db, title, false, true, nil)
}

// CreateDueTestTask inserts an incomplete task with a due date and returns its ID
func CreateDueTestTask(t *testing.T, db *sql.DB, title string, due time.Time) int64 {
	t.Helper()
	return insertRaw(t, db, title, false, false, &due)
}

func insertRaw(t *testing.T, db *sql.DB, title string, completed, deleted bool, due *time.Time) int64 {
	t.Helper()

	now := database.FormatTimestamp(time.Now())
	var dueDate any
	if due != nil {
		dueDate = database.FormatTimestamp(*due)
	}

	result, err := db.ExecContext(context.Background(),
		`INSERT INTO tasks (title, isCompleted, isDeleted, dueDate, createdAt, updatedAt)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		title, completed, deleted, dueDate, now, now)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	taskID, _ := result.LastInsertId()
	return taskID
}
