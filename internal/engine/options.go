package engine

import "time"

// WorkdayFunc reports whether a calendar date counts as a working day when
// measuring distance to a due date. A nil WorkdayFunc treats every day as a
// working day; the engine never assumes a locale-specific holiday calendar.
type WorkdayFunc func(time.Time) bool

// Options holds every tunable the scoring pipeline uses. Options are passed
// at engine construction so multiple configurations can run side by side;
// there is no shared mutable state.
type Options struct {
	// UrgencyWeight and ImportanceWeight combine the two additive signals:
	// value = urgency*UrgencyWeight + importance*ImportanceWeight.
	UrgencyWeight    float64
	ImportanceWeight float64

	// NeutralUrgency is the urgency assigned to tasks with no due date.
	NeutralUrgency float64
	// DueTodayBoost is the urgency of a task due today; urgency decays
	// linearly from this value down to UrgencyFloor as the due date recedes
	// toward HorizonDays, and flattens at the floor beyond the horizon.
	DueTodayBoost float64
	UrgencyFloor  float64
	HorizonDays   int
	// Overdue tasks score OverdueBase plus OverduePerDay per working day
	// late, capped at OverdueCap.
	OverdueBase   float64
	OverduePerDay float64
	OverdueCap    float64

	// MinEffortHours floors the hours value before inversion so tiny
	// estimates cannot produce unbounded boosts. The effort factor is
	// EffortScale/hours, capped at EffortCeiling.
	MinEffortHours float64
	EffortScale    float64
	EffortCeiling  float64

	// BoostPerDependent sets the multiplicative reward per direct non-cyclic
	// dependent: factor = 1 + BoostPerDependent*dependents. Uncapped.
	BoostPerDependent float64

	// Katz centrality propagation. A small fixed iteration count keeps
	// latency bounded and predictable rather than iterating to convergence.
	KatzBaseline   float64
	KatzDecay      float64
	KatzIterations int

	// ScoreAnchor is the fixed normalization anchor for rescaling compressed
	// scores onto 0-100. It is a constant, not the runtime maximum, so scores
	// stay comparable across invocations and task sets.
	ScoreAnchor float64

	// Workday is the injected working-day predicate used when measuring
	// day distance to a due date. Nil means a plain 7-day calendar.
	Workday WorkdayFunc
}

// DefaultOptions returns production defaults.
func DefaultOptions() Options {
	return Options{
		UrgencyWeight:    0.6,
		ImportanceWeight: 0.4,

		NeutralUrgency: 4.0,
		DueTodayBoost:  10.0,
		UrgencyFloor:   2.0,
		HorizonDays:    14,
		OverdueBase:    10.0,
		OverduePerDay:  0.25,
		OverdueCap:     15.0,

		MinEffortHours: 0.5,
		EffortScale:    2.0,
		EffortCeiling:  4.0,

		BoostPerDependent: 0.1,

		KatzBaseline:   1.0,
		KatzDecay:      0.3,
		KatzIterations: 10,

		ScoreAnchor: 40.0,
	}
}
