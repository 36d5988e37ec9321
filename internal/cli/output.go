package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/thenoetrevino/todo/internal/models"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// reportedError marks an error that has already been shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already printed by an OutputFormatter
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// Fail reports err in the selected output mode and returns it, marked as
// reported, so the caller can propagate the exit code.
func (f *OutputFormatter) Fail(err error) error {
	if Reported(err) {
		return err
	}
	if fmtErr := f.ErrorWithSuggestion(errorCode(err), err.Error(), suggestion(err)); fmtErr != nil {
		slog.Error("Error formatting error message", "error", fmtErr)
	}
	return &reportedError{err: err}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	if s, ok := data.(fmt.Stringer); ok {
		fmt.Println(s.String())
		return nil
	}
	fmt.Printf("%+v\n", data)
	return nil
}

// TaskJSON is the wire shape of a task in --json output.
func TaskJSON(task *models.Task) map[string]any {
	out := map[string]any{
		"id":           task.ID,
		"title":        task.Title,
		"description":  task.Description,
		"is_completed": task.IsCompleted,
		"state":        task.State,
		"due_date":     nil,
		"created_at":   task.CreatedAt.Format(time.RFC3339),
		"updated_at":   task.UpdatedAt.Format(time.RFC3339),
	}
	if task.DueDate != nil {
		out["due_date"] = task.DueDate.Format(time.RFC3339)
	}
	return out
}

// TasksJSON converts a list of tasks; an empty list encodes as [].
func TasksJSON(tasks []*models.Task) []map[string]any {
	out := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, TaskJSON(task))
	}
	return out
}

// ActionResult describes a single-task command outcome such as
// "completed" or "moved to trash".
type ActionResult struct {
	Action string
	TaskID int64
	Title  string
}

// GetID returns the affected task ID for quiet mode
func (r ActionResult) GetID() int {
	return int(r.TaskID)
}

func (r ActionResult) String() string {
	if r.Title == "" {
		return fmt.Sprintf("✓ Task %d %s", r.TaskID, r.Action)
	}
	return fmt.Sprintf("✓ Task %d '%s' %s", r.TaskID, r.Title, r.Action)
}

// MarshalJSON keeps the JSON keys in snake case like the rest of the output
func (r ActionResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"action":  r.Action,
		"task_id": r.TaskID,
		"title":   r.Title,
	})
}
