package engine

import (
	"time"

	"github.com/taskrank/taskrank/internal/task"
)

// dayDistance returns the signed day count from today to due. Positive means
// due in the future, negative means overdue, zero means due today. When a
// workday predicate is supplied only working days are counted, so a task due
// Monday is one day away on Friday under a weekday calendar.
func dayDistance(today, due time.Time, workday WorkdayFunc) int {
	today = task.Midnight(today)
	due = task.Midnight(due)

	if workday == nil {
		return int(due.Sub(today).Hours() / 24)
	}

	switch {
	case due.After(today):
		n := 0
		for d := today.AddDate(0, 0, 1); !d.After(due); d = d.AddDate(0, 0, 1) {
			if workday(d) {
				n++
			}
		}
		return n
	case due.Before(today):
		n := 0
		for d := due.AddDate(0, 0, 1); !d.After(today); d = d.AddDate(0, 0, 1) {
			if workday(d) {
				n++
			}
		}
		return -n
	default:
		return 0
	}
}

// Weekdays is a ready-made WorkdayFunc that excludes Saturdays and Sundays.
// Callers with locale-specific holidays supply their own predicate.
func Weekdays(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
