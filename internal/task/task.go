package task

import "time"

// Task represents a single entry in the task list.
type Task struct {
	ID        string
	Text      string
	Completed bool
	Color     Color
	DueDate   *time.Time
}

// HasDueDate returns true if the task carries a due date.
func (t *Task) HasDueDate() bool {
	return t.DueDate != nil
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateOf builds a local-midnight due date from a calendar date.
func DateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
