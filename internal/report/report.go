// Package report renders scoring results as text. Each strategy produces a
// distinct view of the same result, letting commands pick the output that
// suits them without the engine knowing about presentation.
package report

import (
	"fmt"
	"strings"

	"github.com/taskrank/taskrank/internal/engine"
)

// Strategy defines how to present a scoring result.
type Strategy interface {
	Render(res engine.Result) string
}

// RankingStrategy renders the full ranking partitioned into actionable and
// blocked groups, with cycle and warning diagnostics at the end.
type RankingStrategy struct{}

// Render produces the partitioned ranking listing.
func (RankingStrategy) Render(res engine.Result) string {
	if len(res.Ranked) == 0 && len(res.Cyclic) == 0 {
		return "No tasks to rank.\n"
	}

	var b strings.Builder
	b.WriteString("# Ranking\n\n")

	section := ""
	rank := 0
	for _, st := range res.Ranked {
		want := "## Ready now\n"
		if st.Blocked {
			want = "## Blocked\n"
		}
		if section != want {
			if section != "" {
				b.WriteByte('\n')
			}
			section = want
			b.WriteString(section)
		}
		rank++
		fmt.Fprintf(&b, "%d. %s  score=%.1f", rank, label(st), st.Score)
		if len(st.Task.DependsOn) > 0 {
			fmt.Fprintf(&b, " [depends on: %s]", strings.Join(st.Task.DependsOn, ", "))
		}
		b.WriteByte('\n')
	}

	writeDiagnostics(&b, res)
	return b.String()
}

// ReasonStrategy renders the top N tasks with their per-factor breakdown,
// explaining why each one ranked where it did.
type ReasonStrategy struct {
	Limit int
}

// Render produces the suggestion report.
func (s ReasonStrategy) Render(res engine.Result) string {
	limit := s.Limit
	if limit <= 0 {
		limit = 3
	}

	var b strings.Builder
	b.WriteString("# Suggested next tasks\n\n")
	shown := 0
	for _, st := range res.Ranked {
		if st.Blocked || shown >= limit {
			break
		}
		shown++
		fmt.Fprintf(&b, "%d. %s  score=%.1f\n", shown, label(st), st.Score)
		fmt.Fprintf(&b, "   urgency=%.1f importance=%.1f effort=%.2f unblocks=%.2f centrality=%.2f depth=%d\n",
			st.Breakdown.Urgency, st.Breakdown.Importance, st.Breakdown.EffortFactor,
			st.Breakdown.DependencyBoost, st.Breakdown.Centrality, st.Breakdown.Depth)
	}
	if shown == 0 {
		b.WriteString("Nothing is actionable right now.\n")
	}

	writeDiagnostics(&b, res)
	return b.String()
}

// CycleStrategy renders only the graph diagnostics: cyclic tasks and dropped
// references.
type CycleStrategy struct{}

// Render produces the diagnostics report.
func (CycleStrategy) Render(res engine.Result) string {
	var b strings.Builder
	b.WriteString("# Graph diagnostics\n")
	if len(res.Cyclic) == 0 && len(res.Warnings) == 0 {
		b.WriteString("\nDependency graph is clean.\n")
		return b.String()
	}
	writeDiagnostics(&b, res)
	return b.String()
}

func label(st engine.ScoredTask) string {
	if st.Task.Title == "" {
		return st.Task.ID
	}
	return fmt.Sprintf("%s (%s)", st.Task.Title, st.Task.ID)
}

func writeDiagnostics(b *strings.Builder, res engine.Result) {
	if len(res.Cyclic) > 0 {
		fmt.Fprintf(b, "\nExcluded for circular dependencies: %s\n", strings.Join(res.Cyclic, ", "))
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(b, "warning: %s\n", w)
	}
}
