package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/todo/internal/models"
)

const taskColumns = `id, title, description, isCompleted, isDeleted, dueDate, createdAt, updatedAt`

// TaskRepo handles all task persistence against the tasks table.
type TaskRepo struct {
	db  *sql.DB
	now func() time.Time
}

// RepoOption configures a TaskRepo.
type RepoOption func(*TaskRepo)

// WithClock replaces the wall clock used to stamp updatedAt on mutations.
func WithClock(now func() time.Time) RepoOption {
	return func(r *TaskRepo) {
		if now != nil {
			r.now = now
		}
	}
}

// NewTaskRepo creates a TaskRepo over db.
func NewTaskRepo(db *sql.DB, opts ...RepoOption) *TaskRepo {
	r := &TaskRepo{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ============================================================================
// Writes
// ============================================================================

// InsertTask stores task and returns its id.
// A zero ID lets the database assign one; any other ID is used as given and
// fails with ErrConstraintViolation if already taken. On success the task's
// ID and timestamps are updated to the stored values.
func (r *TaskRepo) InsertTask(ctx context.Context, task *models.Task) (int64, error) {
	createdAt := task.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}
	updatedAt := task.UpdatedAt
	if updatedAt.IsZero() || updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}

	var id int64
	err := withTx(ctx, r.db, "insert task", func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (`+taskColumns+`)
			 VALUES (NULLIF(?, 0), ?, ?, ?, ?, ?, ?, ?)`,
			task.ID,
			nullString(task.Title),
			nullString(task.Description),
			boolToInt(task.IsCompleted),
			boolToInt(task.IsDeleted()),
			nullTimestamp(task.DueDate),
			FormatTimestamp(createdAt),
			FormatTimestamp(updatedAt),
		)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}

	task.ID = id
	task.CreatedAt = createdAt.UTC()
	task.UpdatedAt = updatedAt.UTC()
	if task.DueDate != nil {
		due := task.DueDate.UTC()
		task.DueDate = &due
	}
	if task.State == "" {
		task.State = models.TaskStateActive
	}

	slog.Debug("task inserted", "id", id)
	return id, nil
}

// UpdateTask overwrites every column of the row identified by task.ID and
// stamps updatedAt with the current time. A zero CreatedAt keeps the stored
// value. On success task.UpdatedAt holds the stored stamp. Updating a row
// that does not exist is a no-op.
func (r *TaskRepo) UpdateTask(ctx context.Context, task *models.Task) error {
	var createdAt sql.NullString
	if !task.CreatedAt.IsZero() {
		createdAt = sql.NullString{String: FormatTimestamp(task.CreatedAt), Valid: true}
	}

	var stamped string
	err := withTx(ctx, r.db, "update task", func(ctx context.Context, tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`UPDATE tasks
			 SET title = ?,
			     description = ?,
			     isCompleted = ?,
			     isDeleted = ?,
			     dueDate = ?,
			     createdAt = COALESCE(?, createdAt),
			     updatedAt = MAX(?, COALESCE(?, createdAt))
			 WHERE id = ?
			 RETURNING updatedAt`,
			nullString(task.Title),
			nullString(task.Description),
			boolToInt(task.IsCompleted),
			boolToInt(task.IsDeleted()),
			nullTimestamp(task.DueDate),
			createdAt,
			FormatTimestamp(r.now()),
			createdAt,
			task.ID,
		).Scan(&stamped)
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("task update matched no rows", "id", task.ID)
			return nil
		}
		return err
	})
	if err != nil || stamped == "" {
		return err
	}

	updatedAt, err := ParseTimestamp(stamped)
	if err != nil {
		return fmt.Errorf("decode updatedAt of task %d: %w", task.ID, err)
	}
	task.UpdatedAt = updatedAt
	slog.Debug("task updated", "id", task.ID)
	return nil
}

// DeleteTask permanently removes the row with task.ID.
func (r *TaskRepo) DeleteTask(ctx context.Context, task *models.Task) error {
	return r.deleteByID(ctx, "delete task", task.ID)
}

// DeleteTaskByID permanently removes the row with id.
func (r *TaskRepo) DeleteTaskByID(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "delete task by id", id)
}

func (r *TaskRepo) deleteByID(ctx context.Context, op string, id int64) error {
	return withTx(ctx, r.db, op, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
		if err != nil {
			return err
		}
		logAffected("task deleted", id, result)
		return nil
	})
}

// MarkAsDeleted moves a task to the trash.
func (r *TaskRepo) MarkAsDeleted(ctx context.Context, id int64) error {
	return r.setDeleted(ctx, "mark task deleted", id, true)
}

// RestoreTask takes a task out of the trash.
func (r *TaskRepo) RestoreTask(ctx context.Context, id int64) error {
	return r.setDeleted(ctx, "restore task", id, false)
}

func (r *TaskRepo) setDeleted(ctx context.Context, op string, id int64, deleted bool) error {
	return withTx(ctx, r.db, op, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE tasks
			 SET isDeleted = ?, updatedAt = MAX(?, createdAt)
			 WHERE id = ?`,
			boolToInt(deleted), FormatTimestamp(r.now()), id,
		)
		if err != nil {
			return err
		}
		logAffected(op, id, result)
		return nil
	})
}

// DeleteAllDeletedTasks permanently removes every task in the trash.
func (r *TaskRepo) DeleteAllDeletedTasks(ctx context.Context) error {
	return withTx(ctx, r.db, "empty trash", func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE isDeleted = 1")
		if err != nil {
			return err
		}
		if n, err := result.RowsAffected(); err == nil {
			slog.Debug("trash emptied", "purged", n)
		}
		return nil
	})
}

func logAffected(msg string, id int64, result sql.Result) {
	n, err := result.RowsAffected()
	if err != nil {
		return
	}
	slog.Debug(msg, "id", id, "rows", n)
}

// ============================================================================
// Reads
// ============================================================================

// GetAllActiveTasks returns every task not in the trash, newest first.
func (r *TaskRepo) GetAllActiveTasks(ctx context.Context) ([]*models.Task, error) {
	return r.queryTasks(ctx, "get active tasks",
		`SELECT `+taskColumns+` FROM tasks
		 WHERE isDeleted = 0
		 ORDER BY createdAt DESC, id DESC`)
}

// GetPendingTasks returns incomplete tasks not in the trash, newest first.
func (r *TaskRepo) GetPendingTasks(ctx context.Context) ([]*models.Task, error) {
	return r.queryTasks(ctx, "get pending tasks",
		`SELECT `+taskColumns+` FROM tasks
		 WHERE isCompleted = 0 AND isDeleted = 0
		 ORDER BY createdAt DESC, id DESC`)
}

// GetCompletedTasks returns completed tasks not in the trash, newest first.
func (r *TaskRepo) GetCompletedTasks(ctx context.Context) ([]*models.Task, error) {
	return r.queryTasks(ctx, "get completed tasks",
		`SELECT `+taskColumns+` FROM tasks
		 WHERE isCompleted = 1 AND isDeleted = 0
		 ORDER BY createdAt DESC, id DESC`)
}

// GetDeletedTasks returns the trash, most recently changed first.
func (r *TaskRepo) GetDeletedTasks(ctx context.Context) ([]*models.Task, error) {
	return r.queryTasks(ctx, "get deleted tasks",
		`SELECT `+taskColumns+` FROM tasks
		 WHERE isDeleted = 1
		 ORDER BY updatedAt DESC, id DESC`)
}

// SearchTasks matches pattern against title and description of tasks not in
// the trash using LIKE. The caller supplies any wildcards.
func (r *TaskRepo) SearchTasks(ctx context.Context, pattern string) ([]*models.Task, error) {
	return r.queryTasks(ctx, "search tasks",
		`SELECT `+taskColumns+` FROM tasks
		 WHERE isDeleted = 0
		   AND (title LIKE ? OR description LIKE ?)
		 ORDER BY createdAt DESC, id DESC`,
		pattern, pattern)
}

// GetTaskByID returns a single task regardless of its state.
func (r *TaskRepo) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
	}
	if err != nil {
		return nil, wrapErr("get task", err)
	}
	return task, nil
}

// GetTasksDueBetween returns open tasks outside the trash whose due date
// falls in [from, to), soonest first.
func (r *TaskRepo) GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error) {
	return r.queryTasks(ctx, "get tasks due",
		`SELECT `+taskColumns+` FROM tasks
		 WHERE isDeleted = 0 AND isCompleted = 0
		   AND dueDate IS NOT NULL AND dueDate >= ? AND dueDate < ?
		 ORDER BY dueDate ASC, id ASC`,
		FormatTimestamp(from), FormatTimestamp(to))
}

func (r *TaskRepo) queryTasks(ctx context.Context, op, query string, args ...any) ([]*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "op", op, "error", err)
		}
	}()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task        models.Task
		title       sql.NullString
		description sql.NullString
		completed   int
		deleted     int
		dueDate     sql.NullString
		createdAt   string
		updatedAt   string
	)
	if err := row.Scan(&task.ID, &title, &description, &completed, &deleted, &dueDate, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if task.DueDate, err = parseNullTimestamp(dueDate); err != nil {
		return nil, fmt.Errorf("task %d dueDate: %w", task.ID, err)
	}
	if task.CreatedAt, err = ParseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("task %d createdAt: %w", task.ID, err)
	}
	if task.UpdatedAt, err = ParseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("task %d updatedAt: %w", task.ID, err)
	}

	task.Title = NullStringToString(title)
	task.Description = NullStringToString(description)
	task.IsCompleted = completed != 0
	task.State = models.StateFromDeleted(deleted != 0)
	return &task, nil
}
