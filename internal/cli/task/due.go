package task

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
)

// DueCmd returns the task due subcommand
func DueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List open tasks that are due soon",
		Long: `List open tasks whose due date falls within the given window from now,
soonest first.

Examples:
  todo task due
  todo task due --within 72h --json
`,
		Args: cobra.NoArgs,
		RunE: runDue,
	}

	cmd.Flags().Duration("within", 24*time.Hour, "How far ahead to look")
	addOutputFlags(cmd)

	return cmd
}

func runDue(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := handler.NewFlagParser(cmd).Formatter()

	within, err := cmd.Flags().GetDuration("within")
	if err != nil {
		return formatter.Fail(err)
	}
	if within <= 0 {
		return formatter.Fail(&cli.UsageError{Err: errors.New("--within must be positive")})
	}

	cliInstance, err := openCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	tasks, err := cliInstance.App.TaskService.DueSoon(ctx, time.Now(), within)
	if err != nil {
		return formatter.Fail(err)
	}

	return writeTaskList(formatter, tasks, map[string]any{"within": within.String()})
}
