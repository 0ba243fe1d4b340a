// Package store persists the task list into a single key/value slot.
//
// The slot holds an array of task records:
//
//	[
//	  {
//	    "id": "0192f0c4-7a7e-7b3c-9f55-0a4c6a7de2c1",
//	    "text": "Call dentist",
//	    "completed": false,
//	    "color": "blue",
//	    "dueDate": "2026-10-14"
//	  }
//	]
//
// Reading validates the document against an embedded JSON Schema. Due dates
// are written as calendar dates; RFC 3339 timestamps are also accepted and
// converted to the local calendar date. Unknown colors read as "default".
//
// Load and Save never return errors: a missing, unreadable or invalid slot
// loads as an empty list and a failed write is logged and dropped. Read and
// Write are the strict variants.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/colortasks/internal/kv"
	"github.com/nibzard/colortasks/internal/logging"
	"github.com/nibzard/colortasks/internal/task"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "color-coded-tasks"

const dateLayout = "2006-01-02"

type record struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
	DueDate   string `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
}

// Option configures a Store.
type Option func(*Store)

// WithCodec sets the slot encoding. The default is JSON.
func WithCodec(c Codec) Option {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is the persistent adapter between a task repository and a kv slot.
type Store struct {
	backend kv.Store
	key     string
	codec   Codec
	logger  *log.Logger
}

var _ task.Store = (*Store)(nil)

// New creates a store writing to key in backend.
func New(backend kv.Store, key string, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{
		backend: backend,
		key:     key,
		codec:   JSONCodec{},
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SlotKey returns the kv key the list is stored under.
func (s *Store) SlotKey() string {
	return s.key + s.codec.Ext()
}

// Codec returns the slot encoding.
func (s *Store) Codec() Codec {
	return s.codec
}

// Load returns the stored list, or an empty list if the slot is missing,
// unreadable or invalid.
func (s *Store) Load() []task.Task {
	tasks, err := s.Read()
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			s.logger.Debug("storage slot is empty", "slot", s.SlotKey())
		} else {
			s.logger.Warn("ignoring stored tasks", "slot", s.SlotKey(), "err", err)
		}
		return []task.Task{}
	}
	return tasks
}

// Save overwrites the slot with tasks. Failures are logged, not returned.
func (s *Store) Save(tasks []task.Task) {
	if err := s.Write(tasks); err != nil {
		s.logger.Error("could not save tasks", "slot", s.SlotKey(), "err", err)
	}
}

// Read decodes and validates the slot. A missing slot yields kv.ErrNotFound.
func (s *Store) Read() ([]task.Task, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("storage unavailable")
	}
	data, err := s.backend.Get(s.SlotKey())
	if err != nil {
		return nil, err
	}
	return Decode(s.codec, data)
}

// Write encodes tasks and replaces the slot.
func (s *Store) Write(tasks []task.Task) error {
	if s.backend == nil {
		return fmt.Errorf("storage unavailable")
	}
	data, err := Encode(s.codec, tasks)
	if err != nil {
		return err
	}
	return s.backend.Put(s.SlotKey(), data)
}

// Encode serializes tasks with codec.
func Encode(codec Codec, tasks []task.Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		r := record{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Color:     t.Color.String(),
		}
		if t.DueDate != nil {
			r.DueDate = t.DueDate.Format(dateLayout)
		}
		records = append(records, r)
	}
	data, err := codec.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses and validates a slot document. Schema violations are
// reported as *ValidationError values joined into one error.
func Decode(codec Codec, data []byte) ([]task.Task, error) {
	var doc any
	if err := codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}

	// Schema validation works on JSON values, so every codec is funneled
	// through a JSON round trip first.
	normalized, err := json.Marshal(normalize(doc))
	if err != nil {
		return nil, fmt.Errorf("normalize tasks: %w", err)
	}
	var instance any
	if err := json.Unmarshal(normalized, &instance); err != nil {
		return nil, fmt.Errorf("normalize tasks: %w", err)
	}
	if errs := validateDocument(instance); len(errs) > 0 {
		return nil, fmt.Errorf("invalid tasks: %w", errors.Join(errs...))
	}

	var records []record
	if err := json.Unmarshal(normalized, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if first, dup := seen[r.ID]; dup {
			return nil, &ValidationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %q (first at [%d])", r.ID, first),
			}
		}
		seen[r.ID] = i

		color, _ := task.ParseColor(r.Color)
		t := task.Task{
			ID:        r.ID,
			Text:      r.Text,
			Completed: r.Completed,
			Color:     color,
		}
		if r.DueDate != "" {
			due, err := parseDueDate(r.DueDate)
			if err != nil {
				return nil, &ValidationError{Path: fmt.Sprintf("[%d].dueDate", i), Err: err}
			}
			t.DueDate = &due
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// parseDueDate accepts a calendar date or an RFC 3339 timestamp and returns
// local midnight of the corresponding local calendar day.
func parseDueDate(s string) (time.Time, error) {
	if d, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q", s)
	}
	return task.DateOf(ts.In(time.Local).Date()), nil
}

// normalize converts YAML-specific values into JSON-compatible ones: maps
// with non-string keys become string-keyed maps and bare YAML timestamps
// become date or RFC 3339 strings.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalize(val)
		}
		return out
	case time.Time:
		if v.Equal(task.Midnight(v)) && v.Location() == time.UTC {
			return v.Format(dateLayout)
		}
		return v.Format(time.RFC3339Nano)
	default:
		return v
	}
}
