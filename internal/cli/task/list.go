package task

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli/handler"
	"github.com/thenoetrevino/todo/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, newest first.

Filters:
  active     tasks not in the trash (default)
  pending    open tasks
  completed  finished tasks
  deleted    tasks in the trash
  all        pending, then completed, then trashed tasks`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("filter", string(models.FilterActive), "Which tasks to list: active, pending, completed, deleted, all")
	addOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	parser := handler.NewFlagParser(cmd)
	formatter := parser.Formatter()

	filterFlag, _, err := parser.ParseStringOptional("filter")
	if err != nil {
		return formatter.Fail(err)
	}
	filter, err := models.ParseFilter(filterFlag)
	if err != nil {
		return formatter.Fail(err)
	}

	cliInstance, err := openCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	tasks, err := cliInstance.App.TaskService.ListTasks(ctx, filter)
	if err != nil {
		return formatter.Fail(err)
	}

	return writeTaskList(formatter, tasks, map[string]any{"filter": filter})
}
