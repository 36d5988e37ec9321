package task

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
	taskservice "github.com/thenoetrevino/todo/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task.

Examples:
  # Simple task (human-readable output)
  todo task create --title="Buy milk"

  # With a due date and a description read from stdin
  echo "2% please" | todo task create --title="Buy milk" --due=2024-05-01 --description=-

  # JSON output for agents
  todo task create --title="Buy milk" --json

  # Quiet mode for bash capture
  TASK_ID=$(todo task create --title="Buy milk" --quiet)
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("description", "", "Task description (use - for stdin)")
	cmd.Flags().String("due", "", "Due date: YYYY-MM-DD, 'YYYY-MM-DD HH:MM', RFC 3339 or a duration like 48h")
	cmd.Flags().Bool("done", false, "Create the task already completed")
	addOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	parser := handler.NewFlagParser(cmd)
	formatter := parser.Formatter()

	title, err := parser.ParseString("title")
	if err != nil {
		return formatter.Fail(err)
	}

	descriptionFlag, _, err := parser.ParseStringOptional("description")
	if err != nil {
		return formatter.Fail(err)
	}
	description, err := cli.ReadDescription(descriptionFlag, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(err)
	}

	completed, err := parser.ParseBool("done")
	if err != nil {
		return formatter.Fail(err)
	}
	req := taskservice.CreateTaskRequest{
		Title:       title,
		Description: description,
		Completed:   completed,
	}

	dueFlag, dueSet, err := parser.ParseStringOptional("due")
	if err != nil {
		return formatter.Fail(err)
	}
	if dueSet {
		due, err := cli.ParseDueDate(dueFlag, time.Now(), time.Local)
		if err != nil {
			return formatter.Fail(err)
		}
		req.DueDate = &due
	}

	cliInstance, err := openCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	task, err := cliInstance.App.TaskService.CreateTask(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return writeTask(formatter, task, fmt.Sprintf("✓ Task '%s' created successfully (ID: %d)", task.Title, task.ID))
}
