package engine

import (
	"fmt"
	"sort"

	"github.com/taskrank/taskrank/internal/task"
)

// graph is the explicit adjacency structure built once per run from the task
// snapshot. Edges are resolved against the snapshot: references to unknown
// tasks and self-references are dropped with a warning rather than followed.
type graph struct {
	tasks map[string]task.Task
	ids   []string // sorted, for deterministic iteration
	// deps maps id → resolved dependency IDs (forward edges).
	deps map[string][]string
	// dependents maps id → IDs of tasks that depend on it (backward edges).
	dependents map[string][]string

	warnings []string
}

// buildGraph indexes the snapshot and resolves every dependency edge.
// Duplicate task IDs keep the first occurrence; the rest are dropped with a
// warning so one corrupt record cannot shadow another silently.
func buildGraph(tasks []task.Task) *graph {
	g := &graph{
		tasks:      make(map[string]task.Task, len(tasks)),
		deps:       make(map[string][]string, len(tasks)),
		dependents: make(map[string][]string, len(tasks)),
	}

	for _, t := range tasks {
		if _, exists := g.tasks[t.ID]; exists {
			g.warnf("duplicate task id %q: keeping first occurrence", t.ID)
			continue
		}
		g.tasks[t.ID] = t
		g.ids = append(g.ids, t.ID)
	}
	sort.Strings(g.ids)

	for _, id := range g.ids {
		seen := make(map[string]bool)
		for _, dep := range g.tasks[id].DependsOn {
			if dep == id {
				g.warnf("task %q depends on itself: edge dropped", id)
				continue
			}
			if _, ok := g.tasks[dep]; !ok {
				g.warnf("task %q depends on unknown task %q: edge dropped", id, dep)
				continue
			}
			if seen[dep] {
				continue
			}
			seen[dep] = true
			g.deps[id] = append(g.deps[id], dep)
			g.dependents[dep] = append(g.dependents[dep], id)
		}
		sort.Strings(g.deps[id])
	}
	for id := range g.dependents {
		sort.Strings(g.dependents[id])
	}

	return g
}

// without returns a filtered view of the graph with the given IDs removed
// from the node set and from every edge list. Used to exclude cyclic tasks
// from all downstream computation.
func (g *graph) without(excluded map[string]bool) *graph {
	if len(excluded) == 0 {
		return g
	}
	f := &graph{
		tasks:      make(map[string]task.Task, len(g.tasks)),
		deps:       make(map[string][]string, len(g.deps)),
		dependents: make(map[string][]string, len(g.dependents)),
		warnings:   g.warnings,
	}
	for _, id := range g.ids {
		if excluded[id] {
			continue
		}
		f.tasks[id] = g.tasks[id]
		f.ids = append(f.ids, id)
		for _, dep := range g.deps[id] {
			if !excluded[dep] {
				f.deps[id] = append(f.deps[id], dep)
			}
		}
	}
	for _, id := range f.ids {
		for _, dep := range f.deps[id] {
			f.dependents[dep] = append(f.dependents[dep], id)
		}
	}
	return f
}

func (g *graph) warnf(format string, args ...any) {
	g.warnings = append(g.warnings, fmt.Sprintf(format, args...))
}
