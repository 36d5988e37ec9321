package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/cli/styles"
	"github.com/thenoetrevino/todo/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(SearchCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DoneCmd())
	cmd.AddCommand(UndoneCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(RestoreCmd())
	cmd.AddCommand(PurgeCmd())
	cmd.AddCommand(StatsCmd())
	cmd.AddCommand(DueCmd())

	return cmd
}

// addOutputFlags adds the agent-friendly flags every command carries
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// writeTaskList prints a list of tasks in the formatter's mode
func writeTaskList(formatter *cli.OutputFormatter, tasks []*models.Task, extra map[string]any) error {
	if formatter.Quiet {
		for _, t := range tasks {
			fmt.Printf("%d\n", t.ID)
		}
		return nil
	}

	if formatter.JSON {
		out := map[string]any{
			"success": true,
			"count":   len(tasks),
			"tasks":   cli.TasksJSON(tasks),
		}
		for k, v := range extra {
			out[k] = v
		}
		return encodeJSON(out)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	now := time.Now()
	fmt.Printf("Found %d tasks:\n\n", len(tasks))
	for _, t := range tasks {
		fmt.Printf("  %s\n", styles.RenderTaskLine(t, now))
	}
	return nil
}

// writeTask prints a single task in the formatter's mode
func writeTask(formatter *cli.OutputFormatter, task *models.Task, headline string) error {
	if formatter.Quiet {
		fmt.Printf("%d\n", task.ID)
		return nil
	}

	if formatter.JSON {
		return encodeJSON(map[string]any{
			"success": true,
			"task":    cli.TaskJSON(task),
		})
	}

	fmt.Println(headline)
	if task.DueDate != nil {
		fmt.Printf("  Due: %s\n", task.DueDate.Local().Format("Jan 2, 2006 3:04 PM"))
	}
	return nil
}

func encodeJSON(v any) error {
	return json.NewEncoder(os.Stdout).Encode(v)
}

func closeCLI(c *cli.CLI) {
	if err := c.Close(); err != nil {
		slog.Error("Error closing CLI", "error", err)
	}
}

// openCLI returns the CLI for ctx with output styles set from its theme
func openCLI(ctx context.Context) (*cli.CLI, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return nil, err
	}
	styles.Init(cliInstance.App.Config.ColorScheme)
	return cliInstance, nil
}
