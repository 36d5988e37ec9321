package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/todo/internal/cli/handler"
	"github.com/thenoetrevino/todo/internal/cli/styles"
	"github.com/thenoetrevino/todo/internal/models"
)

// StatsCmd returns the task stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Long:  "Show totals, the completion rate and how many tasks were created on each of the last seven days.",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	addOutputFlags(cmd)
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := handler.NewFlagParser(cmd).Formatter()

	cliInstance, err := openCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeCLI(cliInstance)

	stats, err := cliInstance.App.TaskService.Stats(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", stats.Total)
		return nil
	}

	if formatter.JSON {
		return encodeJSON(map[string]any{
			"success": true,
			"stats":   statsJSON(stats),
		})
	}

	fmt.Println(renderStats(stats))
	return nil
}

func statsJSON(stats *models.TaskStats) map[string]any {
	days := make([]map[string]any, 0, len(stats.LastSevenDays))
	for _, d := range stats.LastSevenDays {
		days = append(days, map[string]any{
			"day":   d.Day.Format("2006-01-02"),
			"count": d.Count,
		})
	}
	return map[string]any{
		"total":           stats.Total,
		"completed":       stats.Completed,
		"pending":         stats.Pending,
		"deleted":         stats.Deleted,
		"overdue":         stats.Overdue,
		"completion_rate": stats.CompletionRate,
		"last_seven_days": days,
	}
}

func renderStats(stats *models.TaskStats) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render("Task statistics"))
	content.WriteString("\n\n")

	row := func(label string, value string) {
		content.WriteString(fmt.Sprintf("%s %s\n", styles.LabelStyle.Render(fmt.Sprintf("%-11s", label+":")), value))
	}
	row("Total", styles.ValueStyle.Render(fmt.Sprint(stats.Total)))
	row("Completed", styles.SuccessStyle.Render(fmt.Sprint(stats.Completed)))
	row("Pending", styles.WarningStyle.Render(fmt.Sprint(stats.Pending)))
	row("Overdue", styles.DangerStyle.Render(fmt.Sprint(stats.Overdue)))
	row("In trash", styles.SubtitleStyle.Render(fmt.Sprint(stats.Deleted)))
	row("Done", styles.ValueStyle.Render(fmt.Sprintf("%d%%", stats.CompletionRate)))

	if len(stats.LastSevenDays) > 0 {
		content.WriteString("\n")
		content.WriteString(styles.SectionStyle.Render("Created in the last 7 days"))
		content.WriteString("\n")
		for _, d := range stats.LastSevenDays {
			bar := strings.Repeat("■", d.Count)
			content.WriteString(fmt.Sprintf("  %s %2d %s\n",
				styles.SubtitleStyle.Render(d.Day.Format("Mon Jan 2")),
				d.Count,
				styles.LabelStyle.Render(bar),
			))
		}
	}

	return styles.RenderCard(content.String())
}
