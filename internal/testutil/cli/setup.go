package cli

import (
	"database/sql"
	"testing"
	"time"

	"github.com/thenoetrevino/todo/internal/app"
	"github.com/thenoetrevino/todo/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T, opts ...app.Option) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	appInstance := app.New(db, opts...)
	t.Cleanup(func() { _ = appInstance.Close() })

	return db, appInstance
}

// CreateTestTask wraps testutil.CreateTestTask for CLI tests
func CreateTestTask(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	return testutil.CreateTestTask(t, db, title)
}

// CreateDeletedTestTask wraps testutil.CreateDeletedTestTask for CLI tests
func CreateDeletedTestTask(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	return testutil.CreateDeletedTestTask(t, db, title)
}

// CreateDueTestTask wraps testutil.CreateDueTestTask for CLI tests
func CreateDueTestTask(t *testing.T, db *sql.DB, title string, due time.Time) int64 {
	t.Helper()
	return testutil.CreateDueTestTask(t, db, title, due)
}
