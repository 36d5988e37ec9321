package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/todo/internal/models"
)

// testClock is a manually advanced clock for deterministic timestamps.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// setupTestRepo opens a fresh in-memory database with the real schema.
func setupTestRepo(t *testing.T) (*Repository, *testClock) {
	t.Helper()

	db, err := InitDB(context.Background(), ":memory:", 0)
	require.NoError(t, err, "failed to init test database")

	clock := newTestClock()
	repo := NewRepository(db, WithClock(clock.Now))
	t.Cleanup(func() { _ = repo.Close() })

	return repo, clock
}

// insertTask stores a task created at the clock's current time and then
// advances the clock so that successive inserts get distinct createdAt values.
func insertTask(t *testing.T, repo *Repository, clock *testClock, task *models.Task) *models.Task {
	t.Helper()

	if task.CreatedAt.IsZero() {
		task.CreatedAt = clock.Now()
	}
	_, err := repo.InsertTask(context.Background(), task)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	return task
}

func ids(tasks []*models.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func countRows(t *testing.T, repo *Repository) int {
	t.Helper()
	var n int
	require.NoError(t, repo.db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&n))
	return n
}
