package task

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Move a task to the trash",
		Long: `Move a task to the trash. Trashed tasks can be brought back with
'todo task restore' and removed for good with 'todo task purge'.`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(runDelete)),
	}
	addOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	taskID, err := args.TaskID()
	if err != nil {
		return nil, err
	}

	svc := args.CLI.App.TaskService
	task, err := svc.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := svc.MoveToTrash(ctx, taskID); err != nil {
		return nil, err
	}

	return cli.ActionResult{Action: "moved to trash", TaskID: task.ID, Title: task.Title}, nil
}

// RestoreCmd returns the task restore subcommand
func RestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a task from the trash",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runRestore)),
	}
	addOutputFlags(cmd)
	return cmd
}

func runRestore(ctx context.Context, args *handler.Arguments) (any, error) {
	taskID, err := args.TaskID()
	if err != nil {
		return nil, err
	}

	svc := args.CLI.App.TaskService
	if err := svc.RestoreFromTrash(ctx, taskID); err != nil {
		return nil, err
	}
	task, err := svc.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	return cli.ActionResult{Action: "restored", TaskID: task.ID, Title: task.Title}, nil
}
