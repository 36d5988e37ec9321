// Package remind implements the one-shot reminder command.
package remind

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
	"github.com/thenoetrevino/todo/internal/reminder"
)

// collector keeps reminders so they can be printed in the selected format
type collector struct {
	reminders []reminder.Reminder
}

func (c *collector) Notify(_ context.Context, r reminder.Reminder) error {
	c.reminders = append(c.reminders, r)
	return nil
}

// RemindCmd returns the remind command
func RemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Print reminders for tasks that are about to come due",
		Long: `Run one reminder pass now, using the lead time and window from the
configuration (by default: tasks due between 23 and 24 hours from now).

The todo-daemon runs the same check on a schedule.`,
		Args: cobra.NoArgs,
		RunE: runRemind,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (task IDs only)")

	return cmd
}

func runRemind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := handler.NewFlagParser(cmd).Formatter()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing CLI: %v\n", err)
		}
	}()

	sink := &collector{}
	if _, err := cliInstance.App.ReminderChecker(sink).Check(ctx, time.Now()); err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
		for _, r := range sink.reminders {
			fmt.Printf("%d\n", r.Task.ID)
		}
		return nil
	case formatter.JSON:
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"count":     len(sink.reminders),
			"reminders": remindersJSON(sink.reminders),
		})
	}

	if len(sink.reminders) == 0 {
		fmt.Println("No tasks are coming due")
		return nil
	}
	printer := reminder.WriterNotifier{W: os.Stdout}
	for _, r := range sink.reminders {
		if err := printer.Notify(ctx, r); err != nil {
			return formatter.Fail(err)
		}
	}
	return nil
}

func remindersJSON(reminders []reminder.Reminder) []map[string]any {
	out := make([]map[string]any, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, map[string]any{
			"task":           cli.TaskJSON(r.Task),
			"due_in_seconds": int64(r.DueIn.Round(time.Second) / time.Second),
		})
	}
	return out
}
