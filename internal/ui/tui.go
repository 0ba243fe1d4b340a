// Package ui provides the terminal interface for the task list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/colortasks/internal/task"
	"github.com/nibzard/colortasks/internal/taskview"
)

// DeletePrompt is the confirmation shown before a task is removed.
const DeletePrompt = "Are you sure you want to delete this task? This action cannot be undone. [y/N]"

const dateLayout = "2006-01-02"

// Options configures the TUI.
type Options struct {
	// DefaultColor is preselected in the add form.
	DefaultColor task.Color
	// ConfirmDelete asks before removing a task.
	ConfirmDelete bool
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Renderer styles the output. Defaults to lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer
}

// Run starts the TUI on repo and blocks until the user quits or ctx is done.
func Run(ctx context.Context, repo *task.Repository, opts Options) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	return runProgram(ctx, NewModel(repo, opts))
}

func runProgram(ctx context.Context, model *Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tab int

const (
	tabAll tab = iota
	tabOverdue
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeConfirm
)

type field int

const (
	fieldText field = iota
	fieldDue
)

// Model is the bubbletea model of the task list.
type Model struct {
	repo   *task.Repository
	opts   Options
	styles Styles

	tab      tab
	mode     mode
	cursor   int
	pending  string // id awaiting delete confirmation
	showHelp bool

	// add form
	text  []rune
	due   []rune
	focus field
	color task.Color

	status string
	err    string
}

// NewModel creates a model over repo.
func NewModel(repo *task.Repository, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Model{
		repo:   repo,
		opts:   opts,
		styles: NewStyles(opts.Renderer),
		color:  opts.DefaultColor,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.mode {
	case modeAdd:
		m.updateAdd(key)
		return m, nil
	case modeConfirm:
		m.updateConfirm(key)
		return m, nil
	}
	return m.updateBrowse(key)
}

func (m *Model) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = ""
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case "tab":
		m.setTab((m.tab + 1) % 2)
	case "1":
		m.setTab(tabAll)
	case "2":
		m.setTab(tabOverdue)
	case " ", "space", "enter", "x":
		if t, ok := m.selected(); ok && m.repo.Toggle(t.ID) {
			if t.Completed {
				m.status = "Reopened: " + t.Text
			} else {
				m.status = "Completed: " + t.Text
			}
			m.clampCursor()
		}
	case "d", "delete":
		if t, ok := m.selected(); ok {
			if m.opts.ConfirmDelete {
				m.pending = t.ID
				m.mode = modeConfirm
			} else {
				m.remove(t.ID)
			}
		}
	case "a", "n":
		m.mode = modeAdd
		m.text, m.due = nil, nil
		m.focus = fieldText
		m.color = m.opts.DefaultColor
		m.status = ""
	case "?", "h":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) updateConfirm(key tea.KeyMsg) {
	switch key.String() {
	case "y", "Y":
		m.remove(m.pending)
	default:
		m.status = "Delete cancelled"
	}
	m.pending = ""
	m.mode = modeBrowse
}

func (m *Model) updateAdd(key tea.KeyMsg) {
	m.err = ""
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
	case tea.KeyEnter:
		m.submit()
	case tea.KeyTab, tea.KeyShiftTab:
		if m.focus == fieldText {
			m.focus = fieldDue
		} else {
			m.focus = fieldText
		}
	case tea.KeyUp:
		m.color = task.Color((int(m.color) + task.NumColors - 1) % task.NumColors)
	case tea.KeyDown:
		m.color = task.Color((int(m.color) + 1) % task.NumColors)
	case tea.KeyBackspace:
		buf := m.field()
		if len(*buf) > 0 {
			*buf = (*buf)[:len(*buf)-1]
		}
	case tea.KeySpace:
		buf := m.field()
		*buf = append(*buf, ' ')
	case tea.KeyRunes:
		buf := m.field()
		*buf = append(*buf, key.Runes...)
	}
}

func (m *Model) field() *[]rune {
	if m.focus == fieldDue {
		return &m.due
	}
	return &m.text
}

func (m *Model) submit() {
	var due *time.Time
	if s := strings.TrimSpace(string(m.due)); s != "" {
		d, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			m.err = "Due date must be YYYY-MM-DD"
			m.focus = fieldDue
			return
		}
		due = &d
	}
	t, err := m.repo.Add(string(m.text), m.color, due)
	if errors.Is(err, task.ErrEmptyText) {
		m.err = "Please enter a task"
		m.focus = fieldText
		return
	}
	if err != nil {
		m.err = err.Error()
		return
	}
	m.status = "Task added: " + t.Text
	m.mode = modeBrowse
}

func (m *Model) remove(id string) {
	if t, ok := m.repo.Get(id); ok && m.repo.Remove(id) {
		m.status = "Task deleted: " + t.Text
	}
	m.clampCursor()
}

func (m *Model) setTab(t tab) {
	m.tab = t
	m.cursor = 0
}

// rows returns the tasks of the current tab in display order.
func (m *Model) rows() []task.Task {
	tasks := m.repo.Tasks()
	if m.tab == tabOverdue {
		return taskview.OverdueTasks(tasks, m.opts.Now())
	}
	var out []task.Task
	for _, g := range taskview.GroupByColor(tasks) {
		out = append(out, g.Tasks...)
	}
	return out
}

func (m *Model) selected() (task.Task, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return task.Task{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	now := m.opts.Now()
	tasks := m.repo.Tasks()
	overdue := taskview.OverdueTasks(tasks, now)

	writeTitle(&b, m.styles)
	m.writeTabs(&b, len(tasks), len(overdue))

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.styles)
		return b.String()
	}

	if len(overdue) > 0 {
		b.WriteString(m.styles.Notice.Render(taskview.OverdueNotice(len(overdue))) + "\n\n")
	}

	switch m.mode {
	case modeAdd:
		m.writeAddForm(&b)
	default:
		if m.tab == tabOverdue {
			m.writeOverdue(&b, overdue, now)
		} else {
			m.writeGroups(&b, tasks, now)
		}
	}

	if m.mode == modeConfirm {
		b.WriteString(DeletePrompt + "\n\n")
	}
	if m.err != "" {
		b.WriteString(m.styles.Error.Render(m.err) + "\n\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status) + "\n\n")
	}
	writeFooter(&b, m.styles)
	return b.String()
}

func (m *Model) writeTabs(b *strings.Builder, all, overdue int) {
	labels := []string{fmt.Sprintf("All (%d)", all), fmt.Sprintf("Overdue (%d)", overdue)}
	for i, label := range labels {
		if i > 0 {
			b.WriteString("  ")
		}
		if tab(i) == m.tab {
			b.WriteString(m.styles.TabOn.Render(label))
		} else {
			b.WriteString(m.styles.Tab.Render(label))
		}
	}
	b.WriteString("\n\n")
}

func (m *Model) writeGroups(b *strings.Builder, tasks []task.Task, now time.Time) {
	groups := taskview.GroupByColor(tasks)
	if len(groups) == 0 {
		b.WriteString("  No tasks yet. Press a to add one.\n\n")
		return
	}
	row := 0
	for _, g := range groups {
		b.WriteString(m.styles.GroupHeader(g) + "\n")
		b.WriteString("  " + m.styles.Progress(g.Color, g.Percentage) + "\n")
		for _, t := range g.Tasks {
			b.WriteString(m.taskRow(t, row, now) + "\n")
			row++
		}
		b.WriteString("\n")
	}
}

func (m *Model) writeOverdue(b *strings.Builder, overdue []task.Task, now time.Time) {
	if len(overdue) == 0 {
		b.WriteString("  No overdue tasks.\n\n")
		return
	}
	for i, t := range overdue {
		b.WriteString(m.taskRow(t, i, now) + "\n")
	}
	b.WriteString("\n")
}

func (m *Model) taskRow(t task.Task, row int, now time.Time) string {
	if row == m.cursor {
		return m.styles.Card(t.Color, "› "+plainTaskLine(t, now))
	}
	return "  " + m.styles.TaskLine(t, now)
}

func (m *Model) writeAddForm(b *strings.Builder) {
	caret := func(f field) string {
		if m.focus == f {
			return "▏"
		}
		return ""
	}
	b.WriteString(m.styles.Title.Render("New task") + "\n")
	b.WriteString("  Text:  " + string(m.text) + caret(fieldText) + "\n")
	b.WriteString(fmt.Sprintf("  Color: %s %s  (↑/↓ to change)\n", m.styles.Swatch(m.color), m.color.Label()))
	b.WriteString("  Due:   " + string(m.due) + caret(fieldDue) + "  (YYYY-MM-DD, optional)\n\n")
	b.WriteString(m.styles.Help.Render("  enter save · tab next field · esc cancel") + "\n\n")
}

func plainTaskLine(t task.Task, now time.Time) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	line := box + " " + t.Text
	if t.DueDate != nil {
		line += "  " + taskview.DueLabel(*t.DueDate, taskview.IsOverdue(t, now))
	}
	return line
}

func writeTitle(b *strings.Builder, s Styles) {
	title := "Color-Coded Tasks"
	b.WriteString(s.Title.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c      Quit\n")
	b.WriteString("  up/k, down/j   Move\n")
	b.WriteString("  space, enter   Toggle completed\n")
	b.WriteString("  a              Add a task\n")
	b.WriteString("  d              Delete the selected task\n")
	b.WriteString("  tab, 1, 2      Switch between all and overdue\n")
	b.WriteString("  h, ?           Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder, s Styles) {
	b.WriteString(s.Help.Render("a add · space toggle · d delete · tab view · ? help · q quit") + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
