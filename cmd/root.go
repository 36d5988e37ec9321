package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/remind"
	"github.com/thenoetrevino/todo/internal/cli/task"
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "todo - a local task list",
	Long: `todo keeps a personal task list in a local SQLite database.

Tasks can be created, completed, moved to the trash and restored.
Run the todo-daemon to get reminders for tasks that are about to come due.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(remind.RemindCmd())

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.UsageError{Err: err}
	})
}

// Execute runs the root command under ctx
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
