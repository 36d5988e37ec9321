package task

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/handler"
	"github.com/thenoetrevino/todo/internal/models"
)

// PurgeCmd returns the task purge subcommand
func PurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge [id]",
		Short: "Permanently delete a task or empty the trash",
		Long: `Permanently delete a single task, or every task in the trash with --all.
This cannot be undone. You are asked to confirm unless --force is given.

Examples:
  todo task purge 42
  todo task purge --all --force
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPurge,
	}

	cmd.Flags().Bool("all", false, "Empty the trash")
	cmd.Flags().Bool("force", false, "Do not ask for confirmation")
	addOutputFlags(cmd)

	return cmd
}

func runPurge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	parser := handler.NewFlagParser(cmd)
	formatter := parser.Formatter()

	all, err := parser.ParseBool("all")
	if err != nil {
		return formatter.Fail(err)
	}
	force, err := parser.ParseBool("force")
	if err != nil {
		return formatter.Fail(err)
	}

	switch {
	case all && len(args) > 0:
		return formatter.Fail(&cli.UsageError{Err: errors.New("pass either a task ID or --all, not both")})
	case !all && len(args) == 0:
		return formatter.Fail(&cli.UsageError{Err: errors.New("pass a task ID or --all")})
	}

	cliInstance, err := openCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)
	svc := cliInstance.App.TaskService

	if all {
		trash, err := svc.ListTasks(ctx, models.FilterDeleted)
		if err != nil {
			return formatter.Fail(err)
		}
		if len(trash) > 0 && !force && !confirm(cmd.InOrStdin(), fmt.Sprintf("Permanently delete %d task(s) in the trash?", len(trash))) {
			fmt.Fprintln(os.Stderr, "Aborted")
			return nil
		}
		if err := svc.EmptyTrash(ctx); err != nil {
			return formatter.Fail(err)
		}

		if formatter.Quiet {
			return nil
		}
		if formatter.JSON {
			return encodeJSON(map[string]any{
				"success": true,
				"action":  "trash emptied",
			})
		}
		fmt.Println("✓ Emptied the trash")
		return nil
	}

	taskID, err := parser.ParseTaskID(args)
	if err != nil {
		return formatter.Fail(err)
	}
	task, err := svc.GetTask(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}
	if !force && !confirm(cmd.InOrStdin(), fmt.Sprintf("Permanently delete task %d '%s'?", task.ID, task.Title)) {
		fmt.Fprintln(os.Stderr, "Aborted")
		return nil
	}
	if err := svc.DeletePermanently(ctx, taskID); err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(cli.ActionResult{Action: "permanently deleted", TaskID: task.ID, Title: task.Title})
}

// confirm asks a yes/no question on stderr and reads the answer from r
func confirm(r io.Reader, question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
