package engine

import (
	"time"

	"github.com/taskrank/taskrank/internal/task"
)

// The component scorers are total functions: every input, including stored
// data that never passed through the validator, maps to a bounded value.

// urgencyScore maps due-date distance to a bounded urgency value. No due
// date scores the neutral constant. Overdue tasks get a boost that grows
// with each working day late, capped. Tasks due within the horizon decay
// linearly from the due-today boost down to the floor; beyond the horizon
// the value flattens at the floor. Monotonic in distance-to-due-date.
func (e *Engine) urgencyScore(t task.Task, today time.Time) float64 {
	if t.DueDate == nil {
		return e.opts.NeutralUrgency
	}
	dist := dayDistance(today, *t.DueDate, e.opts.Workday)

	if dist < 0 {
		boosted := e.opts.OverdueBase + e.opts.OverduePerDay*float64(-dist)
		return min(boosted, e.opts.OverdueCap)
	}
	if dist >= e.opts.HorizonDays {
		return e.opts.UrgencyFloor
	}
	span := e.opts.DueTodayBoost - e.opts.UrgencyFloor
	return e.opts.DueTodayBoost - span*float64(dist)/float64(e.opts.HorizonDays)
}

// importanceScore clamps the stored rating to the valid bounds and
// normalizes it onto [0, 10]. A missing rating (zero value) uses the
// midpoint default.
func (e *Engine) importanceScore(t task.Task) float64 {
	rating := t.Importance
	if rating == 0 {
		rating = task.DefaultImportance
	}
	rating = max(min(rating, task.MaxImportance), task.MinImportance)
	return float64(rating-task.MinImportance) /
		float64(task.MaxImportance-task.MinImportance) * 10
}

// effortFactor rewards small tasks: factor = scale/hours with the hours
// floored and the factor ceilinged. Missing or non-positive stored hours
// fall back to the validator's default before inversion.
func (e *Engine) effortFactor(t task.Task) float64 {
	hours := t.EstimatedHours
	if hours <= 0 {
		hours = task.DefaultEstimatedHours
	}
	hours = max(hours, e.opts.MinEffortHours)
	return min(e.opts.EffortScale/hours, e.opts.EffortCeiling)
}

// dependencyBoost converts the count of non-cyclic tasks this one unblocks
// into a multiplicative factor: 1 at zero dependents, growing linearly per
// dependent. Deliberately uncapped: a task gating the whole plan should
// dominate the ranking.
func (e *Engine) dependencyBoost(dependents int) float64 {
	return 1 + e.opts.BoostPerDependent*float64(dependents)
}
