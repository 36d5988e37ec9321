package database

import (
	"context"
	"time"

	"github.com/thenoetrevino/todo/internal/models"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetAllActiveTasks(ctx context.Context) ([]*models.Task, error)
	GetPendingTasks(ctx context.Context) ([]*models.Task, error)
	GetCompletedTasks(ctx context.Context) ([]*models.Task, error)
	GetDeletedTasks(ctx context.Context) ([]*models.Task, error)
	SearchTasks(ctx context.Context, pattern string) ([]*models.Task, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	InsertTask(ctx context.Context, task *models.Task) (int64, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, task *models.Task) error
	DeleteTaskByID(ctx context.Context, id int64) error
}

// TaskTrash defines the soft-delete lifecycle operations.
type TaskTrash interface {
	MarkAsDeleted(ctx context.Context, id int64) error
	RestoreTask(ctx context.Context, id int64) error
	DeleteAllDeletedTasks(ctx context.Context) error
}

// TaskStore combines all task persistence operations.
type TaskStore interface {
	TaskReader
	TaskWriter
	TaskTrash
}

// TaskLookup defines the single-row and range lookups used by services.
type TaskLookup interface {
	GetTaskByID(ctx context.Context, id int64) (*models.Task, error)
	GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error)
}

// TaskRepository is everything the service layer needs from storage.
type TaskRepository interface {
	TaskStore
	TaskLookup
}
