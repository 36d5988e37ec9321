package styles

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/thenoetrevino/todo/internal/config/colors"
	"github.com/thenoetrevino/todo/internal/models"
)

const timeFormat = "Jan 2, 2006 3:04 PM"

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Due:", "Created:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Description"

	// Status styles
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	DangerStyle  lipgloss.Style
)

// Init initializes all CLI styles with the given color scheme
func Init(scheme colors.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.Border)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Success))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Warning))

	DangerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Danger))
}

func init() {
	Init(*colors.Default())
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders a task description as terminal markdown.
// The plain text is returned when rendering fails.
func RenderMarkdown(text string, width int) string {
	renderer, err := getRenderer(width)
	if err != nil {
		return text
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(rendered, "\n")
}

// Checkbox renders the completion marker of a task
func Checkbox(task *models.Task) string {
	if task.IsCompleted {
		return SuccessStyle.Render("[x]")
	}
	return SubtitleStyle.Render("[ ]")
}

// RenderDue renders a due date, highlighting overdue tasks
func RenderDue(task *models.Task, now time.Time) string {
	if task.DueDate == nil {
		return ""
	}
	due := task.DueDate.In(now.Location()).Format(timeFormat)
	if task.IsOverdue(now) {
		return DangerStyle.Render("overdue " + due)
	}
	return WarningStyle.Render("due " + due)
}

// RenderTaskLine renders a task as a single list row
// Format: "[ ] #12 Buy milk  due May 1, 2024 5:00 PM"
func RenderTaskLine(task *models.Task, now time.Time) string {
	line := fmt.Sprintf("%s %s %s",
		Checkbox(task),
		LabelStyle.Render(fmt.Sprintf("#%d", task.ID)),
		ValueStyle.Render(task.Title),
	)
	if due := RenderDue(task, now); due != "" {
		line += "  " + due
	}
	if task.IsDeleted() {
		line += "  " + SubtitleStyle.Render("(trash)")
	}
	return line
}

// RenderTaskCard renders the full detail view of a task
func RenderTaskCard(task *models.Task, now time.Time) string {
	var content strings.Builder

	content.WriteString(TitleStyle.Render(fmt.Sprintf("#%d: %s", task.ID, task.Title)))
	content.WriteString("\n\n")

	status := "pending"
	statusStyle := WarningStyle
	if task.IsCompleted {
		status, statusStyle = "completed", SuccessStyle
	}
	if task.IsDeleted() {
		status, statusStyle = status+", in trash", DangerStyle
	}
	content.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("Status:"), statusStyle.Render(status)))

	if due := RenderDue(task, now); due != "" {
		content.WriteString(fmt.Sprintf("%s %s\n", LabelStyle.Render("Due:"), due))
	}

	// Timestamps
	content.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render("Created:"),
		SubtitleStyle.Render(task.CreatedAt.In(now.Location()).Format(timeFormat)),
	))
	content.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render("Updated:"),
		SubtitleStyle.Render(task.UpdatedAt.In(now.Location()).Format(timeFormat)),
	))

	// Description
	if task.Description != "" {
		content.WriteString("\n")
		content.WriteString(SectionStyle.Render("Description"))
		content.WriteString("\n")
		content.WriteString(RenderMarkdown(task.Description, CardWidth-6))
		content.WriteString("\n")
	}

	return RenderCard(content.String())
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
