// Package task defines the task record, the closed color set and the
// in-memory repository that owns the task list.
//
// The repository is the single source of truth. It exposes three mutations:
//
//   - Add appends a task. Text is trimmed; whitespace-only text is declined
//     with ErrEmptyText and nothing is written.
//   - Toggle flips the completion flag of one task in place.
//   - Remove deletes one task.
//
// Toggle and Remove on an unknown id are no-ops that report false. Every
// successful mutation writes the full list to the Store exactly once; order is
// always insertion order.
//
// # Colors
//
// Color values, in enumeration order:
//
//   - "default" (zero value)
//   - "red"
//   - "blue"
//   - "green"
//   - "yellow"
//
// Unknown color strings decode to "default".
package task
