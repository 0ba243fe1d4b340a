package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/colortasks/internal/task"
	"github.com/nibzard/colortasks/internal/taskview"
	"github.com/nibzard/colortasks/internal/ui"
)

const dateLayout = "2006-01-02"

// minPrefix is the shortest id prefix accepted as a task reference.
const minPrefix = 4

// ErrNoTask is returned when a reference matches no task.
var ErrNoTask = errors.New("no such task")

// listCommand prints the task list grouped by color.
func (a *app) listCommand(args []string) error {
	fs := a.flagSet("list")
	flat := fs.Bool("flat", false, "List in insertion order instead of by color")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	repo, _, closeFn := a.openRepository()
	defer closeFn()

	tasks := repo.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(a.io.Out, "No tasks yet. Add one with: colortasks add <text>")
		return nil
	}

	now := a.now()
	a.writeOverdueNotice(tasks, now)
	positions := positionsOf(tasks)

	if *flat {
		for _, t := range tasks {
			fmt.Fprintf(a.io.Out, "%s %s\n", a.styles.Swatch(t.Color), a.itemLine(t, positions, now))
		}
		return nil
	}

	for i, g := range taskview.GroupByColor(tasks) {
		if i > 0 {
			fmt.Fprintln(a.io.Out)
		}
		fmt.Fprintln(a.io.Out, a.styles.GroupHeader(g))
		fmt.Fprintln(a.io.Out, "  "+a.styles.Progress(g.Color, g.Percentage))
		for _, t := range g.Tasks {
			fmt.Fprintln(a.io.Out, "  "+a.itemLine(t, positions, now))
		}
	}
	return nil
}

// overdueCommand prints only the overdue tasks.
func (a *app) overdueCommand(args []string) error {
	fs := a.flagSet("overdue")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	repo, _, closeFn := a.openRepository()
	defer closeFn()

	tasks := repo.Tasks()
	now := a.now()
	overdue := taskview.OverdueTasks(tasks, now)
	if len(overdue) == 0 {
		fmt.Fprintln(a.io.Out, "No overdue tasks.")
		return nil
	}
	a.writeOverdueNotice(tasks, now)
	positions := positionsOf(tasks)
	for _, t := range overdue {
		fmt.Fprintf(a.io.Out, "%s %s\n", a.styles.Swatch(t.Color), a.itemLine(t, positions, now))
	}
	return nil
}

// addCommand adds one task. The text is the remaining arguments joined by spaces.
func (a *app) addCommand(args []string) error {
	fs := a.flagSet("add")
	colorName := fs.String("color", a.cfg.DefaultColor, "Task color (default|red|blue|green|yellow)")
	dueStr := fs.String("due", "", "Due date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	color, ok := task.ParseColor(*colorName)
	if !ok {
		return fmt.Errorf("unknown color %q (expected %s)", *colorName, strings.Join(colorNames(), "|"))
	}
	var due *time.Time
	if s := strings.TrimSpace(*dueStr); s != "" {
		d, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", s)
		}
		due = &d
	}

	repo, _, closeFn := a.openRepository()
	defer closeFn()

	t, err := repo.Add(strings.Join(fs.Args(), " "), color, due)
	if err != nil {
		if errors.Is(err, task.ErrEmptyText) {
			fmt.Fprintln(a.io.Err, "Please enter a task.")
		}
		return fmt.Errorf("add: %w", err)
	}
	fmt.Fprintf(a.io.Out, "Task added: %s\n", t.Text)
	return nil
}

// toggleCommand flips the completion flag of one task.
func (a *app) toggleCommand(args []string) error {
	fs := a.flagSet("toggle")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("toggle: expected exactly one task reference")
	}

	repo, _, closeFn := a.openRepository()
	defer closeFn()

	t, err := resolveRef(repo.Tasks(), fs.Arg(0))
	if err != nil {
		return err
	}
	repo.Toggle(t.ID)
	if t.Completed {
		fmt.Fprintf(a.io.Out, "Reopened: %s\n", t.Text)
	} else {
		fmt.Fprintf(a.io.Out, "Completed: %s\n", t.Text)
	}
	return nil
}

// removeCommand deletes one task, asking first unless -y is given or
// confirm_delete is off.
func (a *app) removeCommand(args []string) error {
	fs := a.flagSet("rm")
	yes := fs.Bool("y", false, "Delete without asking")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("rm: expected exactly one task reference")
	}

	repo, _, closeFn := a.openRepository()
	defer closeFn()

	t, err := resolveRef(repo.Tasks(), fs.Arg(0))
	if err != nil {
		return err
	}
	if a.cfg.ConfirmDelete && !*yes {
		fmt.Fprintf(a.io.Out, "%s\n%s ", t.Text, ui.DeletePrompt)
		if !confirm(a.io.In) {
			fmt.Fprintln(a.io.Out, "Cancelled.")
			return nil
		}
	}
	repo.Remove(t.ID)
	fmt.Fprintf(a.io.Out, "Task deleted: %s\n", t.Text)
	return nil
}

// colorsCommand lists the selectable colors.
func (a *app) colorsCommand(args []string) error {
	fs := a.flagSet("colors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, opt := range task.ColorOptions() {
		tok := taskview.ColorStyle(opt.Value)
		fmt.Fprintf(a.io.Out, "%s %-8s %-8s %s\n", a.styles.Swatch(opt.Value), opt.Label, opt.Value, tok.Class)
	}
	return nil
}

func (a *app) writeOverdueNotice(tasks []task.Task, now time.Time) {
	if n := len(taskview.OverdueTasks(tasks, now)); n > 0 {
		fmt.Fprintln(a.io.Out, a.styles.Notice.Render(taskview.OverdueNotice(n)))
		fmt.Fprintln(a.io.Out)
	}
}

func (a *app) itemLine(t task.Task, positions map[string]int, now time.Time) string {
	return fmt.Sprintf("%d. %s", positions[t.ID], a.styles.TaskLine(t, now))
}

// positionsOf maps task ids to their 1-based insertion position.
func positionsOf(tasks []task.Task) map[string]int {
	positions := make(map[string]int, len(tasks))
	for i, t := range tasks {
		positions[t.ID] = i + 1
	}
	return positions
}

// resolveRef finds the task named by ref: an exact id, a 1-based position,
// or a unique id prefix of at least minPrefix characters.
func resolveRef(tasks []task.Task, ref string) (task.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, fmt.Errorf("empty task reference")
	}
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(tasks) {
			return task.Task{}, fmt.Errorf("%w: no task at position %d (have %d)", ErrNoTask, n, len(tasks))
		}
		return tasks[n-1], nil
	}
	if len(ref) < minPrefix {
		return task.Task{}, fmt.Errorf("%w: %q (id prefixes need at least %d characters)", ErrNoTask, ref, minPrefix)
	}
	var matches []task.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %q", ErrNoTask, ref)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("ambiguous task reference %q matches %d tasks", ref, len(matches))
	}
}

// confirm reads one line and reports whether it is yes.
func confirm(r io.Reader) bool {
	if r == nil {
		return false
	}
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func colorNames() []string {
	var names []string
	for _, opt := range task.ColorOptions() {
		names = append(names, opt.Value.String())
	}
	return names
}
