package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for due dates.
const DateLayout = "2006-01-02"

// RecordError reports why a single record in a batch was rejected. Index is
// the record's position in the submitted batch.
type RecordError struct {
	Index  int      `json:"index"`
	Errors []string `json:"errors"`
}

// ValidateRecord checks one raw, untrusted record against today's date and
// either returns a cleaned Task or the validation errors that disqualify it.
// Fields are checked in a fixed order (title, due_date, estimated_hours,
// importance, dependencies) and validation stops at the first disqualifying
// error, so a record with several defects reports only the first one.
//
// The record never produces both a task and errors.
func ValidateRecord(raw map[string]any, today time.Time) (Task, []string) {
	var t Task

	title, ok := raw["title"].(string)
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		return Task{}, []string{"title: must be a non-empty string"}
	}
	t.Title = title

	if id, ok := raw["id"].(string); ok {
		t.ID = strings.TrimSpace(id)
	}

	if v, present := raw["due_date"]; present && v != nil {
		due, err := coerceDate(v)
		if err != nil {
			return Task{}, []string{fmt.Sprintf("due_date: %v", err)}
		}
		if due.Before(Midnight(today)) {
			return Task{}, []string{"due_date: cannot be in the past"}
		}
		t.DueDate = &due
	}

	t.EstimatedHours = DefaultEstimatedHours
	if v, present := raw["estimated_hours"]; present && v != nil {
		hours, err := coerceFloat(v)
		if err != nil {
			return Task{}, []string{fmt.Sprintf("estimated_hours: %v", err)}
		}
		switch {
		case hours < 0:
			return Task{}, []string{"estimated_hours: cannot be negative"}
		case hours == 0:
			return Task{}, []string{"estimated_hours: must be greater than zero"}
		}
		t.EstimatedHours = hours
	}

	t.Importance = DefaultImportance
	if v, present := raw["importance"]; present && v != nil {
		imp, err := coerceInt(v)
		if err != nil {
			return Task{}, []string{fmt.Sprintf("importance: %v", err)}
		}
		if imp < MinImportance || imp > MaxImportance {
			return Task{}, []string{fmt.Sprintf("importance: must be between %d and %d", MinImportance, MaxImportance)}
		}
		t.Importance = imp
	}

	if v, present := raw["dependencies"]; present && v != nil {
		deps, err := coerceIDList(v)
		if err != nil {
			return Task{}, []string{fmt.Sprintf("dependencies: %v", err)}
		}
		t.DependsOn = deps
	}

	return t, nil
}

// ValidateBatch validates every record independently: valid records are
// returned as tasks, invalid ones as RecordErrors. One record's failure never
// affects a sibling's outcome.
func ValidateBatch(records []map[string]any, today time.Time) ([]Task, []RecordError) {
	var tasks []Task
	var rejected []RecordError
	for i, raw := range records {
		t, errs := ValidateRecord(raw, today)
		if len(errs) > 0 {
			rejected = append(rejected, RecordError{Index: i, Errors: errs})
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, rejected
}

// --- field coercion ---

func coerceDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return Midnight(d), nil
	case string:
		parsed, err := time.Parse(DateLayout, strings.TrimSpace(d))
		if err != nil {
			return time.Time{}, fmt.Errorf("must be a date in YYYY-MM-DD form")
		}
		return parsed, nil
	default:
		return time.Time{}, fmt.Errorf("must be a date in YYYY-MM-DD form")
	}
}

func coerceFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("must be a number")
		}
		return f, nil
	default:
		return 0, fmt.Errorf("must be a number")
	}
}

func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("must be a whole number")
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("must be a whole number")
		}
		return i, nil
	default:
		return 0, fmt.Errorf("must be a whole number")
	}
}

func coerceIDList(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			id, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("must be a list of task identifiers")
			}
			out = append(out, id)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("must be a list of task identifiers")
	}
}
