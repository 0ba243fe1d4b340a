// Package taskview computes derived, read-only views over a task list.
// Nothing in this package mutates its input.
package taskview

import (
	"fmt"
	"math"
	"time"

	"github.com/nibzard/colortasks/internal/task"
)

// Group is the subset of tasks sharing one color.
type Group struct {
	Color      task.Color
	Label      string
	Tasks      []task.Task
	Percentage float64
}

// CompletionPercentage returns 100 * completed / total, or 0 for no tasks.
// The result is not rounded.
func CompletionPercentage(tasks []task.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for i := range tasks {
		if tasks[i].Completed {
			done++
		}
	}
	return float64(done) / float64(len(tasks)) * 100
}

// Today returns the start of now's calendar day.
func Today(now time.Time) time.Time {
	return task.Midnight(now)
}

// IsOverdue reports whether t is incomplete and due strictly before the day
// containing asOf. A task due today is not overdue.
func IsOverdue(t task.Task, asOf time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return task.Midnight(*t.DueDate).Before(Today(asOf))
}

// OverdueTasks returns the overdue tasks in their original order.
func OverdueTasks(tasks []task.Task, asOf time.Time) []task.Task {
	var out []task.Task
	for _, t := range tasks {
		if IsOverdue(t, asOf) {
			out = append(out, t)
		}
	}
	return out
}

// GroupByColor partitions tasks by color in enumeration order. Empty groups
// are omitted; tasks keep their relative order inside a group.
func GroupByColor(tasks []task.Task) []Group {
	var buckets [task.NumColors][]task.Task
	for _, t := range tasks {
		c := t.Color
		if !c.Valid() {
			c = task.ColorDefault
		}
		buckets[c] = append(buckets[c], t)
	}

	var groups []Group
	for _, opt := range task.ColorOptions() {
		members := buckets[opt.Value]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, Group{
			Color:      opt.Value,
			Label:      opt.Label,
			Tasks:      members,
			Percentage: CompletionPercentage(members),
		})
	}
	return groups
}

// RoundPercent rounds a percentage for display.
func RoundPercent(p float64) int {
	return int(math.Round(p))
}

// FormatDueDate renders a date in long form, e.g. "October 15th, 2026".
func FormatDueDate(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", t.Month(), ordinal(t.Day()), t.Year())
}

// DueLabel is the badge text shown next to a task with a due date.
func DueLabel(due time.Time, overdue bool) string {
	if overdue {
		return "Overdue: " + FormatDueDate(due)
	}
	return "Due: " + FormatDueDate(due)
}

// OverdueNotice is the alert text shown when n tasks are overdue.
func OverdueNotice(n int) string {
	return fmt.Sprintf("You have %d overdue tasks. Please complete them soon.", n)
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
