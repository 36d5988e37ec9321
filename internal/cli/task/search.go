package task

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli/handler"
)

// SearchCmd returns the task search subcommand
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search active tasks by title or description",
		Long: `Search active tasks whose title or description contains the term.

Examples:
  todo task search milk
  todo task search "weekly report" --json
`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	addOutputFlags(cmd)

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := handler.NewFlagParser(cmd).Formatter()
	term := strings.Join(args, " ")

	cliInstance, err := openCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	tasks, err := cliInstance.App.TaskService.Search(ctx, term)
	if err != nil {
		return formatter.Fail(err)
	}

	return writeTaskList(formatter, tasks, map[string]any{"term": term})
}
