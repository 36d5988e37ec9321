package cli

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/thenoetrevino/todo/internal/database"
	"github.com/thenoetrevino/todo/internal/models"
	taskservice "github.com/thenoetrevino/todo/internal/services/task"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: unexpected failures that don't fit the categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing arguments, malformed task IDs or dates.
	ExitUsage = 2

	// ExitNotFound indicates a requested task does not exist.
	ExitNotFound = 3

	// ExitDataErr indicates the store rejected the data.
	// Use for: constraint violations such as a duplicate task ID.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: empty or oversized titles, unknown filters, restoring a task
	// that is not in the trash.
	ExitValidation = 5

	// ExitUnavailable indicates the task database could not be used.
	// Use for: locked, read-only or corrupt database files.
	ExitUnavailable = 6
)

// UsageError marks an error caused by how the command was invoked.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	var (
		usageErr       *UsageError
		validationErrs validator.ValidationErrors
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.Is(err, taskservice.ErrTaskNotFound), errors.Is(err, database.ErrTaskNotFound):
		return ExitNotFound
	case errors.Is(err, taskservice.ErrEmptyTitle),
		errors.Is(err, taskservice.ErrTitleTooLong),
		errors.Is(err, taskservice.ErrDescriptionTooLong),
		errors.Is(err, taskservice.ErrInvalidTaskID),
		errors.Is(err, taskservice.ErrInvalidWindow),
		errors.Is(err, taskservice.ErrConflictingDueDates),
		errors.Is(err, taskservice.ErrNotInTrash),
		errors.Is(err, models.ErrUnknownFilter),
		errors.As(err, &validationErrs):
		return ExitValidation
	case errors.Is(err, database.ErrConstraintViolation):
		return ExitDataErr
	case errors.Is(err, database.ErrStorageUnavailable):
		return ExitUnavailable
	default:
		return ExitError
	}
}

// errorCode is the machine-readable code reported in JSON error output.
func errorCode(err error) string {
	switch ExitCode(err) {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitNotFound:
		return "TASK_NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitDataErr:
		return "CONSTRAINT_VIOLATION"
	case ExitUnavailable:
		return "STORAGE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// suggestion returns a hint for errors the user can act on.
func suggestion(err error) string {
	switch {
	case errors.Is(err, taskservice.ErrTaskNotFound):
		return "Use 'todo task list --filter all' to see task IDs"
	case errors.Is(err, taskservice.ErrNotInTrash):
		return "Use 'todo task list --filter deleted' to see the trash"
	case errors.Is(err, models.ErrUnknownFilter):
		return "Valid filters are: active, pending, completed, deleted, all"
	case errors.Is(err, database.ErrStorageUnavailable):
		return "Check that the database file is writable and not locked by another process"
	default:
		return ""
	}
}
