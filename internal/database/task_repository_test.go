package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/todo/internal/models"
)

func TestBuyMilkScenario(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	id, err := repo.InsertTask(ctx, &models.Task{Title: "Buy milk", CreatedAt: clock.Now()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	pending, err := repo.GetPendingTasks(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), pending[0].ID)
	assert.Equal(t, "Buy milk", pending[0].Title)
	assert.False(t, pending[0].IsCompleted)

	clock.Advance(time.Minute)
	require.NoError(t, repo.MarkAsDeleted(ctx, 1))

	pending, err = repo.GetPendingTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	deleted, err := repo.GetDeletedTasks(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, int64(1), deleted[0].ID)
	assert.Equal(t, models.TaskStateDeleted, deleted[0].State)
}

// ============================================================================
// InsertTask
// ============================================================================

func TestInsertTask_AssignsUniqueIDs(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)

	seen := map[int64]bool{}
	for range 5 {
		task := insertTask(t, repo, clock, &models.Task{Title: "task"})
		assert.Positive(t, task.ID)
		assert.False(t, seen[task.ID], "id %d assigned twice", task.ID)
		seen[task.ID] = true
	}
}

func TestInsertTask_ExplicitID(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	id, err := repo.InsertTask(ctx, &models.Task{ID: 42, Title: "explicit", CreatedAt: clock.Now()})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	got, err := repo.GetTaskByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "explicit", got.Title)
}

func TestInsertTask_DuplicateIDIsConstraintViolation(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	first := insertTask(t, repo, clock, &models.Task{Title: "original"})

	_, err := repo.InsertTask(ctx, &models.Task{ID: first.ID, Title: "duplicate", CreatedAt: clock.Now()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)

	var storeErr *StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, KindConstraint, storeErr.Kind)
	assert.NotZero(t, storeErr.Code)

	// The failed insert rolled back and left the original row alone.
	assert.Equal(t, 1, countRows(t, repo))
	got, err := repo.GetTaskByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
}

func TestInsertTask_RoundTripsThroughActiveTasks(t *testing.T) {
	t.Parallel()

	due := time.Date(2024, 4, 1, 17, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 8, 15, 30, 250_000_000, time.UTC)
	preciseDue := time.Date(2024, 4, 1, 17, 0, 0, 123_456_789, time.FixedZone("CET", 60*60))

	tests := []struct {
		name string
		task models.Task
	}{
		{"all fields", models.Task{Title: "Write report", Description: "Q1 numbers", DueDate: &due, CreatedAt: created, UpdatedAt: created.Add(time.Hour)}},
		{"completed", models.Task{Title: "Done already", IsCompleted: true, CreatedAt: created, UpdatedAt: created}},
		{"no due date", models.Task{Title: "Someday", CreatedAt: created, UpdatedAt: created}},
		{"empty title and description", models.Task{CreatedAt: created, UpdatedAt: created}},
		{"unicode", models.Task{Title: "Café ☕", Description: "naïve résumé", CreatedAt: created, UpdatedAt: created}},
		{"sub-millisecond due date in another zone", models.Task{Title: "Call Berlin", DueDate: &preciseDue, CreatedAt: created.Add(time.Microsecond), UpdatedAt: created.Add(time.Microsecond)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, _ := setupTestRepo(t)
			ctx := context.Background()

			task := tt.task
			id, err := repo.InsertTask(ctx, &task)
			require.NoError(t, err)

			want := tt.task
			want.ID = id
			want.State = models.TaskStateActive
			if want.DueDate != nil {
				due := want.DueDate.UTC()
				want.DueDate = &due
			}

			active, err := repo.GetAllActiveTasks(ctx)
			require.NoError(t, err)
			require.Len(t, active, 1)
			assert.Equal(t, &want, active[0])
			assert.Equal(t, &want, &task, "InsertTask should update the caller's copy")
		})
	}
}

func TestInsertTask_NullDueDateRoundTrip(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)

	task := insertTask(t, repo, clock, &models.Task{Title: "no due date"})

	got, err := repo.GetTaskByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)

	var raw *string
	require.NoError(t, repo.db.QueryRow("SELECT dueDate FROM tasks WHERE id = ?", task.ID).Scan(&raw))
	assert.Nil(t, raw, "nil due date should be stored as NULL")
}

func TestInsertTask_EmptyStringsStoredAsNull(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)

	task := insertTask(t, repo, clock, &models.Task{})

	var title, description *string
	require.NoError(t, repo.db.QueryRow(
		"SELECT title, description FROM tasks WHERE id = ?", task.ID,
	).Scan(&title, &description))
	assert.Nil(t, title)
	assert.Nil(t, description)
}

func TestInsertTask_TimestampDefaults(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	t.Run("zero timestamps take the clock", func(t *testing.T) {
		task := &models.Task{Title: "stamped"}
		_, err := repo.InsertTask(ctx, task)
		require.NoError(t, err)
		assert.Equal(t, clock.Now(), task.CreatedAt)
		assert.Equal(t, clock.Now(), task.UpdatedAt)
	})

	t.Run("updatedAt never precedes createdAt", func(t *testing.T) {
		created := clock.Now()
		task := &models.Task{Title: "clamped", CreatedAt: created, UpdatedAt: created.Add(-time.Hour)}
		_, err := repo.InsertTask(ctx, task)
		require.NoError(t, err)

		got, err := repo.GetTaskByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got.UpdatedAt)
	})

	t.Run("stored as fixed-width ISO-8601", func(t *testing.T) {
		task := &models.Task{Title: "format", CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
		_, err := repo.InsertTask(ctx, task)
		require.NoError(t, err)

		var raw string
		require.NoError(t, repo.db.QueryRow("SELECT createdAt FROM tasks WHERE id = ?", task.ID).Scan(&raw))
		assert.Equal(t, "2024-01-02T03:04:05.000000000", raw)
	})
}

func TestInsertTask_DeletedStatePersists(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	task := insertTask(t, repo, clock, &models.Task{Title: "born in the trash", State: models.TaskStateDeleted})

	active, err := repo.GetAllActiveTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	deleted, err := repo.GetDeletedTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{task.ID}, ids(deleted))
}

// ============================================================================
// UpdateTask
// ============================================================================

func TestUpdateTask_ReplacesAllFields(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	due := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task := insertTask(t, repo, clock, &models.Task{Title: "old", Description: "old desc", DueDate: &due})
	createdAt := task.CreatedAt

	now := clock.Advance(time.Hour)
	update := &models.Task{
		ID:          task.ID,
		Title:       "new",
		Description: "",
		IsCompleted: true,
		State:       models.TaskStateActive,
	}
	require.NoError(t, repo.UpdateTask(ctx, update))

	got, err := repo.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Empty(t, got.Description)
	assert.True(t, got.IsCompleted)
	assert.Nil(t, got.DueDate, "a nil due date clears the stored one")
	assert.Equal(t, createdAt, got.CreatedAt, "zero CreatedAt keeps the stored value")
	assert.Equal(t, now, got.UpdatedAt)
	assert.Equal(t, now, update.UpdatedAt, "UpdateTask should report the stored stamp")
}

func TestUpdateTask_CanSoftDelete(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	task := insertTask(t, repo, clock, &models.Task{Title: "to trash"})
	task.State = models.TaskStateDeleted
	require.NoError(t, repo.UpdateTask(ctx, task))

	deleted, err := repo.GetDeletedTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{task.ID}, ids(deleted))
}

func TestUpdateTask_MissingRowIsNoop(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	existing := insertTask(t, repo, clock, &models.Task{Title: "keep me"})

	ghost := &models.Task{ID: 999, Title: "ghost"}
	err := repo.UpdateTask(ctx, ghost)
	require.NoError(t, err)
	assert.True(t, ghost.UpdatedAt.IsZero(), "a missing row leaves the caller's task untouched")

	assert.Equal(t, 1, countRows(t, repo))
	got, err := repo.GetTaskByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Title)
}

func TestUpdateTask_UpdatedAtNeverPrecedesCreatedAt(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	task := insertTask(t, repo, clock, &models.Task{Title: "future", CreatedAt: clock.Now().Add(48 * time.Hour)})
	update := &models.Task{ID: task.ID, Title: "still future"}
	require.NoError(t, repo.UpdateTask(ctx, update))

	got, err := repo.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	assert.Equal(t, got.UpdatedAt, update.UpdatedAt, "caller sees the clamped stamp")
}

// ============================================================================
// Delete
// ============================================================================

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	a := insertTask(t, repo, clock, &models.Task{Title: "a"})
	b := insertTask(t, repo, clock, &models.Task{Title: "b"})

	require.NoError(t, repo.DeleteTask(ctx, a))
	require.NoError(t, repo.DeleteTask(ctx, a), "deleting twice should succeed")

	_, err := repo.GetTaskByID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	active, err := repo.GetAllActiveTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, ids(active))
}

func TestDeleteTaskByID(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	task := insertTask(t, repo, clock, &models.Task{Title: "gone"})

	require.NoError(t, repo.DeleteTaskByID(ctx, task.ID))
	require.NoError(t, repo.DeleteTaskByID(ctx, task.ID))
	require.NoError(t, repo.DeleteTaskByID(ctx, 12345))
	assert.Equal(t, 0, countRows(t, repo))
}

func TestDeleteAllDeletedTasks(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	keepPending := insertTask(t, repo, clock, &models.Task{Title: "pending"})
	keepDone := insertTask(t, repo, clock, &models.Task{Title: "done", IsCompleted: true})
	trashA := insertTask(t, repo, clock, &models.Task{Title: "trash a"})
	trashB := insertTask(t, repo, clock, &models.Task{Title: "trash b", IsCompleted: true})

	require.NoError(t, repo.MarkAsDeleted(ctx, trashA.ID))
	require.NoError(t, repo.MarkAsDeleted(ctx, trashB.ID))

	before, err := repo.GetAllActiveTasks(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAllDeletedTasks(ctx))

	deleted, err := repo.GetDeletedTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	after, err := repo.GetAllActiveTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "active rows must be untouched")
	assert.ElementsMatch(t, []int64{keepPending.ID, keepDone.ID}, ids(after))
	assert.Equal(t, 2, countRows(t, repo))

	require.NoError(t, repo.DeleteAllDeletedTasks(ctx), "purging an empty trash succeeds")
}

// ============================================================================
// Soft delete
// ============================================================================

func TestMarkAsDeletedAndRestore(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	task := insertTask(t, repo, clock, &models.Task{Title: "flip flop"})

	deletedAt := clock.Advance(time.Hour)
	require.NoError(t, repo.MarkAsDeleted(ctx, task.ID))
	require.NoError(t, repo.MarkAsDeleted(ctx, task.ID), "marking twice should succeed")

	active, err := repo.GetAllActiveTasks(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids(active), task.ID)

	deleted, err := repo.GetDeletedTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{task.ID}, ids(deleted))
	assert.Equal(t, deletedAt, deleted[0].UpdatedAt)

	restoredAt := clock.Advance(time.Hour)
	require.NoError(t, repo.RestoreTask(ctx, task.ID))
	require.NoError(t, repo.RestoreTask(ctx, task.ID), "restoring twice should succeed")

	active, err = repo.GetAllActiveTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{task.ID}, ids(active))
	assert.Equal(t, restoredAt, active[0].UpdatedAt)
	assert.Equal(t, models.TaskStateActive, active[0].State)

	deleted, err = repo.GetDeletedTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func TestMarkAsDeleted_MissingRowIsNoop(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.MarkAsDeleted(ctx, 77))
	assert.NoError(t, repo.RestoreTask(ctx, 77))
	assert.Equal(t, 0, countRows(t, repo))
}

func TestMarkAsDeleted_UpdatedAtNeverPrecedesCreatedAt(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	created := clock.Now().Add(24 * time.Hour)
	task := insertTask(t, repo, clock, &models.Task{Title: "from the future", CreatedAt: created})

	require.NoError(t, repo.MarkAsDeleted(ctx, task.ID))

	got, err := repo.GetTaskByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got.UpdatedAt)
}

// ============================================================================
// Queries
// ============================================================================

func TestQueries_FilterAndOrder(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	oldPending := insertTask(t, repo, clock, &models.Task{Title: "old pending"})
	oldDone := insertTask(t, repo, clock, &models.Task{Title: "old done", IsCompleted: true})
	trashFirst := insertTask(t, repo, clock, &models.Task{Title: "trash first"})
	newPending := insertTask(t, repo, clock, &models.Task{Title: "new pending"})
	newDone := insertTask(t, repo, clock, &models.Task{Title: "new done", IsCompleted: true})
	trashSecond := insertTask(t, repo, clock, &models.Task{Title: "trash second", IsCompleted: true})

	// Trash the newer task first so updatedAt order differs from createdAt order.
	clock.Advance(time.Minute)
	require.NoError(t, repo.MarkAsDeleted(ctx, trashSecond.ID))
	clock.Advance(time.Minute)
	require.NoError(t, repo.MarkAsDeleted(ctx, trashFirst.ID))

	active, err := repo.GetAllActiveTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{newDone.ID, newPending.ID, oldDone.ID, oldPending.ID}, ids(active))

	pending, err := repo.GetPendingTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{newPending.ID, oldPending.ID}, ids(pending))

	completed, err := repo.GetCompletedTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{newDone.ID, oldDone.ID}, ids(completed))

	deleted, err := repo.GetDeletedTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{trashFirst.ID, trashSecond.ID}, ids(deleted))
}

func TestQueries_EmptyTableReturnsEmptySlice(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	for name, query := range map[string]func(context.Context) ([]*models.Task, error){
		"active":    repo.GetAllActiveTasks,
		"pending":   repo.GetPendingTasks,
		"completed": repo.GetCompletedTasks,
		"deleted":   repo.GetDeletedTasks,
	} {
		tasks, err := query(ctx)
		require.NoError(t, err, name)
		assert.NotNil(t, tasks, name)
		assert.Empty(t, tasks, name)
	}
}

func TestQueries_TiesBrokenByNewestID(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	same := clock.Now()
	a := &models.Task{Title: "a", CreatedAt: same}
	b := &models.Task{Title: "b", CreatedAt: same}
	_, err := repo.InsertTask(ctx, a)
	require.NoError(t, err)
	_, err = repo.InsertTask(ctx, b)
	require.NoError(t, err)

	active, err := repo.GetAllActiveTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, ids(active))
}

func TestSearchTasks(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	inTitle := insertTask(t, repo, clock, &models.Task{Title: "foo fighters tickets"})
	inDescription := insertTask(t, repo, clock, &models.Task{Title: "groceries", Description: "buy food and foo"})
	upperCase := insertTask(t, repo, clock, &models.Task{Title: "FOOTBALL practice"})
	insertTask(t, repo, clock, &models.Task{Title: "unrelated", Description: "nothing here"})
	trashed := insertTask(t, repo, clock, &models.Task{Title: "foo in the trash"})
	require.NoError(t, repo.MarkAsDeleted(ctx, trashed.ID))

	got, err := repo.SearchTasks(ctx, "%foo%")
	require.NoError(t, err)
	// SQLite's LIKE is case-insensitive for ASCII.
	assert.Equal(t, []int64{upperCase.ID, inDescription.ID, inTitle.ID}, ids(got))

	t.Run("no wildcards added by the store", func(t *testing.T) {
		got, err := repo.SearchTasks(ctx, "foo")
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = repo.SearchTasks(ctx, "groceries")
		require.NoError(t, err)
		assert.Equal(t, []int64{inDescription.ID}, ids(got))
	})

	t.Run("prefix pattern", func(t *testing.T) {
		got, err := repo.SearchTasks(ctx, "foo%")
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{inTitle.ID, upperCase.ID}, ids(got))
	})
}

// ============================================================================
// Lookups
// ============================================================================

func TestGetTaskByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepo(t)

	task, err := repo.GetTaskByID(context.Background(), 1)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestGetTasksDueBetween(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	ctx := context.Background()

	now := clock.Now()
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}

	soon := insertTask(t, repo, clock, &models.Task{Title: "soon", DueDate: at(2 * time.Hour)})
	sooner := insertTask(t, repo, clock, &models.Task{Title: "sooner", DueDate: at(time.Hour)})
	insertTask(t, repo, clock, &models.Task{Title: "later", DueDate: at(48 * time.Hour)})
	insertTask(t, repo, clock, &models.Task{Title: "past", DueDate: at(-time.Hour)})
	insertTask(t, repo, clock, &models.Task{Title: "done", IsCompleted: true, DueDate: at(time.Hour)})
	insertTask(t, repo, clock, &models.Task{Title: "undated"})
	trashed := insertTask(t, repo, clock, &models.Task{Title: "trashed", DueDate: at(time.Hour)})
	require.NoError(t, repo.MarkAsDeleted(ctx, trashed.ID))

	got, err := repo.GetTasksDueBetween(ctx, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []int64{sooner.ID, soon.ID}, ids(got))
}

// ============================================================================
// Cancellation and failures
// ============================================================================

func TestCancelledContextSkipsOperation(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.InsertTask(ctx, &models.Task{Title: "never", CreatedAt: clock.Now()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, countRows(t, repo))

	_, err = repo.GetAllActiveTasks(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	assert.ErrorIs(t, repo.DeleteAllDeletedTasks(ctx), context.Canceled)
}

func TestClosedDatabaseIsStorageUnavailable(t *testing.T) {
	t.Parallel()
	repo, clock := setupTestRepo(t)
	require.NoError(t, repo.Close())

	ctx := context.Background()
	_, err := repo.InsertTask(ctx, &models.Task{Title: "nowhere", CreatedAt: clock.Now()})
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	assert.ErrorIs(t, repo.MarkAsDeleted(ctx, 1), ErrStorageUnavailable)
	assert.ErrorIs(t, repo.DeleteAllDeletedTasks(ctx), ErrStorageUnavailable)
}
