// Package task defines the task model and the input validation gate that
// protects the scoring engine from malformed records. Validation is the only
// strict boundary in the system: everything downstream of it degrades
// gracefully instead of failing.
package task

import "time"

// Default values substituted by the validator when an optional field is
// absent from an incoming record.
const (
	DefaultEstimatedHours = 2.0
	DefaultImportance     = 5
)

// Importance rating bounds. Values outside this range are rejected on input
// and clamped by the scoring layer on stored data.
const (
	MinImportance = 1
	MaxImportance = 10
)

// Task is a unit of work with scheduling metadata and optional dependencies.
// A task is immutable once handed to the engine; the engine only reads it.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	DueDate        *time.Time `json:"due_date,omitempty"` // calendar date, UTC midnight
	EstimatedHours float64    `json:"estimated_hours"`
	Importance     int        `json:"importance"`
	DependsOn      []string   `json:"dependencies,omitempty"`
}

// Date builds a calendar date at UTC midnight, the canonical form for due
// dates throughout the engine.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight truncates t to its calendar date at UTC midnight.
func Midnight(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}
