package task

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Long: `Mark a task as completed.

Examples:
  todo task done 42
  todo task done 42 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(completionHandler(true)),
	}
	addOutputFlags(cmd)
	return cmd
}

// UndoneCmd returns the task undone subcommand
func UndoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undone <id>",
		Short: "Mark a completed task as pending again",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(completionHandler(false)),
	}
	addOutputFlags(cmd)
	return cmd
}

func completionHandler(completed bool) handler.HandlerFunc {
	return func(ctx context.Context, args *handler.Arguments) (any, error) {
		taskID, err := args.TaskID()
		if err != nil {
			return nil, err
		}

		task, err := args.CLI.App.TaskService.SetCompleted(ctx, taskID, completed)
		if err != nil {
			return nil, err
		}

		action := "marked as done"
		if !completed {
			action = "marked as pending"
		}
		return cli.ActionResult{Action: action, TaskID: task.ID, Title: task.Title}, nil
	}
}
