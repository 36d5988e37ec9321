package models

import "time"

// Task is a single entry in the personal task list.
type Task struct {
	ID          int64
	Title       string
	Description string
	IsCompleted bool
	State       TaskState
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetID satisfies the quiet-mode output contract of the CLI formatter.
func (t *Task) GetID() int {
	return int(t.ID)
}

// IsDeleted reports whether the task sits in the trash.
func (t *Task) IsDeleted() bool {
	return t.State == TaskStateDeleted
}

// IsOverdue reports whether an open task has passed its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted || t.IsDeleted() || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

// TaskState is the soft-delete lifecycle of a task.
type TaskState string

const (
	TaskStateActive  TaskState = "active"
	TaskStateDeleted TaskState = "deleted"
)

// StateFromDeleted maps the persisted isDeleted flag to a TaskState.
func StateFromDeleted(deleted bool) TaskState {
	if deleted {
		return TaskStateDeleted
	}
	return TaskStateActive
}

// DayCount is the number of tasks created on a calendar day.
type DayCount struct {
	Day   time.Time
	Count int
}

// TaskStats summarises the active tasks.
type TaskStats struct {
	Total          int
	Completed      int
	Pending        int
	Deleted        int
	Overdue        int
	CompletionRate int // integer percent of Completed over Total
	LastSevenDays  []DayCount
}
