package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/colortasks/internal/task"
	"github.com/nibzard/colortasks/internal/taskview"
)

// ProgressWidth is the number of cells in a group progress bar.
const ProgressWidth = 20

// Styles renders task list pieces for one output.
type Styles struct {
	r *lipgloss.Renderer

	Title  lipgloss.Style
	Tab    lipgloss.Style
	TabOn  lipgloss.Style
	Notice lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
	Done   lipgloss.Style
	Cursor lipgloss.Style
	Due    lipgloss.Style
	Late   lipgloss.Style
}

// NewStyles builds styles bound to r. A nil renderer uses the default one.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		r:      r,
		Title:  r.NewStyle().Bold(true),
		Tab:    r.NewStyle().Faint(true),
		TabOn:  r.NewStyle().Bold(true).Underline(true),
		Notice: r.NewStyle().Foreground(lipgloss.Color("#b91c1c")).Background(lipgloss.Color("#fee2e2")).Padding(0, 1),
		Status: r.NewStyle().Foreground(lipgloss.Color("#15803d")),
		Error:  r.NewStyle().Foreground(lipgloss.Color("#dc2626")),
		Help:   r.NewStyle().Faint(true),
		Done:   r.NewStyle().Strikethrough(true).Faint(true),
		Cursor: r.NewStyle().Bold(true),
		Due:    r.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Late:   r.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true),
	}
}

// Swatch renders the colored dot for c.
func (s Styles) Swatch(c task.Color) string {
	tok := taskview.ColorStyle(c)
	return s.r.NewStyle().Foreground(lipgloss.Color(tok.Swatch)).Render("●")
}

// Card styles a task line with the background of its color.
func (s Styles) Card(c task.Color, line string) string {
	tok := taskview.ColorStyle(c)
	return s.r.NewStyle().
		Background(lipgloss.Color(tok.Background)).
		Foreground(lipgloss.Color("#111827")).
		Render(line)
}

// GroupHeader renders "● Label  N tasks  P% Complete".
func (s Styles) GroupHeader(g taskview.Group) string {
	return fmt.Sprintf("%s %s  %d tasks  %d%% Complete",
		s.Swatch(g.Color),
		s.Title.Render(g.Label),
		len(g.Tasks),
		taskview.RoundPercent(g.Percentage),
	)
}

// Progress renders a progress bar colored with the group swatch.
func (s Styles) Progress(c task.Color, percent float64) string {
	bar := ProgressBar(percent, ProgressWidth)
	filled := strings.Count(bar, "█")
	tok := taskview.ColorStyle(c)
	return s.r.NewStyle().Foreground(lipgloss.Color(tok.Swatch)).Render(bar[:filled*len("█")]) + bar[filled*len("█"):]
}

// DueBadge renders the due or overdue label.
func (s Styles) DueBadge(due time.Time, overdue bool) string {
	label := taskview.DueLabel(due, overdue)
	if overdue {
		return s.Late.Render(label)
	}
	return s.Due.Render(label)
}

// TaskLine renders "[x] text  Due: ..." for t.
func (s Styles) TaskLine(t task.Task, now time.Time) string {
	box := "[ ]"
	text := t.Text
	if t.Completed {
		box = "[x]"
		text = s.Done.Render(text)
	}
	line := box + " " + text
	if t.DueDate != nil {
		line += "  " + s.DueBadge(*t.DueDate, taskview.IsOverdue(t, now))
	}
	return line
}

// ProgressBar renders percent (0..100) as a bar of width cells.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent/100*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
