package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyText is returned by Add when the text is empty after trimming.
var ErrEmptyText = errors.New("task text is empty")

// Store is the persistence the repository writes through to.
// Load and Save never fail from the repository's point of view; a store that
// cannot reach its backend degrades to an empty load or a dropped write.
type Store interface {
	Load() []Task
	Save(tasks []Task)
}

// Option configures a Repository.
type Option func(*Repository)

// WithIDFunc replaces the id generator.
func WithIDFunc(fn func() string) Option {
	return func(r *Repository) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// Repository owns the ordered task list. Every successful mutation is
// followed by exactly one full-list save. A Repository is not safe for
// concurrent use.
type Repository struct {
	tasks []Task
	store Store
	newID func() string
}

// NewRepository creates a repository seeded from store.Load.
// A nil store keeps the list in memory only.
func NewRepository(store Store, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		newID: newID,
	}
	for _, opt := range opts {
		opt(r)
	}
	if store != nil {
		for _, t := range store.Load() {
			r.tasks = append(r.tasks, t.Clone())
		}
	}
	return r
}

// newID returns a time-ordered UUID, falling back to a random one.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Add appends a new task and persists the list.
// Whitespace-only text is declined with ErrEmptyText and nothing is written.
func (r *Repository) Add(text string, color Color, due *time.Time) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	if !color.Valid() {
		color = ColorDefault
	}

	t := Task{
		ID:    r.uniqueID(),
		Text:  text,
		Color: color,
	}
	if due != nil {
		d := normalizeDue(*due)
		t.DueDate = &d
	}

	r.tasks = append(r.tasks, t)
	r.persist()
	return t.Clone(), nil
}

// Toggle flips the completion flag of the task with the given id.
// It returns false, without persisting, when no such task exists.
func (r *Repository) Toggle(id string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.tasks[i].Completed = !r.tasks[i].Completed
	r.persist()
	return true
}

// Remove deletes the task with the given id, keeping the order of the rest.
// It returns false, without persisting, when no such task exists.
func (r *Repository) Remove(id string) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.persist()
	return true
}

// Tasks returns a copy of the list in insertion order.
func (r *Repository) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	for i, t := range r.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of the task with the given id.
func (r *Repository) Get(id string) (Task, bool) {
	i := r.index(id)
	if i < 0 {
		return Task{}, false
	}
	return r.tasks[i].Clone(), true
}

// Len returns the number of tasks.
func (r *Repository) Len() int {
	return len(r.tasks)
}

func (r *Repository) index(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) uniqueID() string {
	id := r.newID()
	if r.index(id) < 0 {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if r.index(candidate) < 0 {
			return candidate
		}
	}
}

func (r *Repository) persist() {
	if r.store == nil {
		return
	}
	r.store.Save(r.Tasks())
}

// normalizeDue keeps the calendar date of t and drops the time of day.
func normalizeDue(t time.Time) time.Time {
	y, m, d := t.Date()
	return DateOf(y, m, d)
}
