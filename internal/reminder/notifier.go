package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// SlogNotifier writes reminders to a structured logger.
type SlogNotifier struct {
	Logger *slog.Logger
}

func (n SlogNotifier) Notify(ctx context.Context, r Reminder) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "task due soon",
		"id", r.Task.ID,
		"title", r.Task.Title,
		"due", r.Task.DueDate,
		"due_in", r.DueIn.Round(time.Minute).String(),
	)
	return nil
}

// WriterNotifier prints one line per reminder.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(_ context.Context, r Reminder) error {
	due := "soon"
	if r.Task.DueDate != nil {
		due = r.Task.DueDate.Local().Format("Mon Jan 2 15:04")
	}
	_, err := fmt.Fprintf(n.W, "Reminder: #%d %q is due in %s (%s)\n",
		r.Task.ID, r.Task.Title, r.DueIn.Round(time.Minute), due)
	return err
}
