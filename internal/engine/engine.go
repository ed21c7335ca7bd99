// Package engine ranks tasks by computed priority over a dependency graph.
// It detects and quarantines cycles, scores urgency, importance, effort and
// unblocking influence per task, propagates Katz centrality through the
// graph, discounts deeply nested tasks, and combines the signals into a
// single stable 0-100 ranking.
//
// The engine is a pure, synchronous computation over an immutable snapshot:
// it performs no I/O, holds no locks, and never mutates the tasks it is
// given. Callers hosting it concurrently must hand each Run its own stable
// snapshot.
package engine

import (
	"math"
	"sort"
	"time"

	"github.com/taskrank/taskrank/internal/task"
)

// Engine scores and ranks task snapshots using a fixed Options set.
type Engine struct {
	opts Options
}

// New creates an engine with the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Breakdown records the per-factor components behind a task's final score,
// surfaced so callers can explain why a task ranked where it did.
type Breakdown struct {
	Urgency         float64 `json:"urgency"`
	Importance      float64 `json:"importance"`
	EffortFactor    float64 `json:"effort_factor"`
	DependencyBoost float64 `json:"dependency_boost"`
	Centrality      float64 `json:"centrality"`
	Depth           int     `json:"depth"`
}

// ScoredTask pairs a task with its final score and diagnostics.
type ScoredTask struct {
	Task      task.Task `json:"task"`
	Score     float64   `json:"score"`
	Blocked   bool      `json:"blocked"`
	Breakdown Breakdown `json:"breakdown"`
}

// Result is the outcome of one scoring run.
type Result struct {
	// Ranked holds unblocked tasks first, then blocked tasks, each group
	// sorted by score descending with ascending ID as the tie-break.
	Ranked []ScoredTask `json:"ranked"`
	// Cyclic lists tasks excluded for participating in a dependency cycle.
	Cyclic []string `json:"cyclic_task_ids"`
	// Warnings reports dropped dangling/self references and duplicate IDs.
	Warnings []string `json:"warnings,omitempty"`
}

// Run scores the snapshot against the given reference date and returns the
// ranking plus diagnostics. An empty snapshot yields an empty result; a
// snapshot where every task is cyclic yields an empty ranking with the full
// cycle list. Run never fails: malformed stored data degrades to documented
// defaults.
func (e *Engine) Run(tasks []task.Task, today time.Time) Result {
	if len(tasks) == 0 {
		return Result{Ranked: []ScoredTask{}, Cyclic: []string{}}
	}

	g := buildGraph(tasks)

	cyclic := detectCycles(g.ids, g.deps)
	res := Result{Cyclic: cyclicIDs(cyclic), Warnings: g.warnings}

	g = g.without(cyclic)
	if len(g.ids) == 0 {
		res.Ranked = []ScoredTask{}
		res.Warnings = g.warnings
		return res
	}

	depths := dependencyDepths(g.ids, g.deps)
	centrality := katzCentrality(g.ids, g.dependents, e.opts)
	normalizeByMax(centrality)

	res.Ranked = make([]ScoredTask, 0, len(g.ids))
	for _, id := range g.ids {
		t := g.tasks[id]
		b := Breakdown{
			Urgency:         e.urgencyScore(t, today),
			Importance:      e.importanceScore(t),
			EffortFactor:    e.effortFactor(t),
			DependencyBoost: e.dependencyBoost(len(g.dependents[id])),
			Centrality:      centrality[id],
			Depth:           depths[id],
		}
		res.Ranked = append(res.Ranked, ScoredTask{
			Task:      t,
			Score:     e.combine(b),
			Blocked:   len(g.deps[id]) > 0,
			Breakdown: b,
		})
	}

	// Unblocked group first; within each group score descending, then
	// ascending ID so equal scores order deterministically.
	sort.Slice(res.Ranked, func(i, j int) bool {
		a, b := res.Ranked[i], res.Ranked[j]
		if a.Blocked != b.Blocked {
			return !a.Blocked
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Task.ID < b.Task.ID
	})

	return res
}

// combine folds the per-factor breakdown into the final 0-100 score:
//
//	value = urgency*Wu + importance*Wi
//	raw   = value * boost * centrality * effort * 1/(1+depth)
//
// then log1p compression tames outliers and the result is rescaled against
// the fixed anchor so scores are comparable across runs.
func (e *Engine) combine(b Breakdown) float64 {
	value := b.Urgency*e.opts.UrgencyWeight + b.Importance*e.opts.ImportanceWeight
	raw := value * b.DependencyBoost * b.Centrality * b.EffortFactor / (1 + float64(b.Depth))

	scaled := 100 * math.Log1p(raw) / math.Log1p(e.opts.ScoreAnchor)
	return max(0, min(100, scaled))
}
