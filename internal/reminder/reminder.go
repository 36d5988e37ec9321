// Package reminder finds tasks that are about to come due and hands them to a
// Notifier, once per task and due date.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/todo/internal/models"
)

// Reminder is a single notification about an upcoming task.
type Reminder struct {
	Task  *models.Task
	DueIn time.Duration
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// TaskSource lists open tasks due within window from now.
type TaskSource interface {
	DueSoon(ctx context.Context, now time.Time, window time.Duration) ([]*models.Task, error)
}

// Checker looks for tasks whose due date is between lead-window and lead
// from now. A task is reminded about once per due date; moving the due date
// makes it eligible again.
type Checker struct {
	source   TaskSource
	notifier Notifier
	lead     time.Duration
	window   time.Duration

	mu   sync.Mutex
	sent map[int64]time.Time
}

// NewChecker creates a Checker. Window is clamped to lead.
func NewChecker(source TaskSource, notifier Notifier, lead, window time.Duration) *Checker {
	if window > lead {
		window = lead
	}
	return &Checker{
		source:   source,
		notifier: notifier,
		lead:     lead,
		window:   window,
		sent:     make(map[int64]time.Time),
	}
}

// Check runs one reminder pass at now and returns how many reminders were
// delivered. Delivery failures are joined into the returned error; the
// failed tasks are retried on the next pass.
func (c *Checker) Check(ctx context.Context, now time.Time) (int, error) {
	if c.lead <= 0 || c.window <= 0 {
		return 0, fmt.Errorf("reminder: lead %v and window %v must be positive", c.lead, c.window)
	}

	from := now.Add(c.lead - c.window)
	tasks, err := c.source.DueSoon(ctx, from, c.window)
	if err != nil {
		return 0, fmt.Errorf("reminder: list due tasks: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.forgetPast(now)

	var (
		delivered int
		errs      []error
	)
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		due := *task.DueDate
		if last, ok := c.sent[task.ID]; ok && last.Equal(due) {
			continue
		}

		r := Reminder{Task: task, DueIn: due.Sub(now)}
		if err := c.notifier.Notify(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("task %d: %w", task.ID, err))
			continue
		}
		c.sent[task.ID] = due
		delivered++
	}

	slog.Debug("reminder pass complete", "candidates", len(tasks), "delivered", delivered)
	return delivered, errors.Join(errs...)
}

// forgetPast drops bookkeeping for due dates that have already passed.
func (c *Checker) forgetPast(now time.Time) {
	for id, due := range c.sent {
		if due.Before(now) {
			delete(c.sent, id)
		}
	}
}
