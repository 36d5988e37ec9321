package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
	taskservice "github.com/thenoetrevino/todo/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long: `Update the title, description or due date of a task.
Only the flags that are given are changed.

Examples:
  todo task update 42 --title="Buy oat milk"
  todo task update 42 --due=48h
  todo task update 42 --clear-due
  todo task update 42 --description=""
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New task title")
	cmd.Flags().String("description", "", "New description (use - for stdin)")
	cmd.Flags().String("due", "", "New due date: YYYY-MM-DD, 'YYYY-MM-DD HH:MM', RFC 3339 or a duration like 48h")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	addOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	parser := handler.NewFlagParser(cmd)
	formatter := parser.Formatter()

	taskID, err := parser.ParseTaskID(args)
	if err != nil {
		return formatter.Fail(err)
	}

	req, err := buildUpdateRequest(cmd, parser, taskID)
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := openCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	task, err := cliInstance.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return writeTask(formatter, task, fmt.Sprintf("✓ Task %d updated: '%s'", task.ID, task.Title))
}

func buildUpdateRequest(cmd *cobra.Command, parser *handler.FlagParser, taskID int64) (taskservice.UpdateTaskRequest, error) {
	req := taskservice.UpdateTaskRequest{TaskID: taskID}
	changed := false

	title, titleSet, err := parser.ParseStringOptional("title")
	if err != nil {
		return req, err
	}
	if titleSet {
		req.Title = &title
		changed = true
	}

	descriptionFlag, descriptionSet, err := parser.ParseStringOptional("description")
	if err != nil {
		return req, err
	}
	if descriptionSet {
		description, err := cli.ReadDescription(descriptionFlag, cmd.InOrStdin())
		if err != nil {
			return req, err
		}
		req.Description = &description
		changed = true
	}

	dueFlag, dueSet, err := parser.ParseStringOptional("due")
	if err != nil {
		return req, err
	}
	if dueSet {
		due, err := cli.ParseDueDate(dueFlag, time.Now(), time.Local)
		if err != nil {
			return req, err
		}
		req.DueDate = &due
		changed = true
	}

	if req.ClearDueDate, err = parser.ParseBool("clear-due"); err != nil {
		return req, err
	}
	if req.ClearDueDate {
		changed = true
	}

	if !changed {
		return req, &cli.UsageError{Err: errors.New("nothing to update: pass --title, --description, --due or --clear-due")}
	}
	return req, nil
}
