package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle          = errors.New("task title cannot be empty")
	ErrTitleTooLong        = errors.New("task title cannot exceed 255 characters")
	ErrDescriptionTooLong  = errors.New("task description cannot exceed 10000 characters")
	ErrInvalidTaskID       = errors.New("invalid task ID")
	ErrInvalidWindow       = errors.New("time window must be positive")
	ErrConflictingDueDates = errors.New("cannot set and clear the due date at the same time")

	// Business logic errors
	ErrTaskNotFound = errors.New("task not found")
	ErrNotInTrash   = errors.New("task is not in the trash")
)
