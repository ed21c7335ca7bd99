package engine

import "sort"

// DFS colors. White nodes are unvisited, gray nodes are on the current
// traversal path, black nodes are fully processed.
const (
	white = iota
	gray
	black
)

// detectCycles returns the set of task IDs that participate in at least one
// directed cycle of the deps adjacency. The traversal is an iterative
// depth-first search with explicit frames, so graph size never threatens the
// goroutine stack. When an edge reaches a gray node the cycle closes there:
// every node on the path from that node to the top of the stack is cyclic.
// A node that turns black without closing a cycle is never revisited, giving
// O(V+E) overall. A self-edge is a 1-node cycle.
func detectCycles(ids []string, deps map[string][]string) map[string]bool {
	type frame struct {
		id   string
		next int // index of the next dependency edge to explore
	}

	color := make(map[string]int, len(ids))
	cyclic := make(map[string]bool)

	var stack []frame
	var path []string // gray node IDs, mirrors stack

	for _, start := range ids {
		if color[start] != white {
			continue
		}
		stack = append(stack[:0], frame{id: start})
		path = path[:0]
		color[start] = gray
		path = append(path, start)

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			edges := deps[f.id]

			descended := false
			for f.next < len(edges) {
				dep := edges[f.next]
				f.next++
				if dep == f.id {
					cyclic[dep] = true
					continue
				}
				switch color[dep] {
				case white:
					color[dep] = gray
					path = append(path, dep)
					stack = append(stack, frame{id: dep})
					descended = true
				case gray:
					// Back edge: mark the whole stack segment from dep up.
					for i := len(path) - 1; i >= 0; i-- {
						cyclic[path[i]] = true
						if path[i] == dep {
							break
						}
					}
				}
				if descended {
					break
				}
			}

			if !descended && stack[len(stack)-1].next >= len(deps[stack[len(stack)-1].id]) {
				done := stack[len(stack)-1].id
				color[done] = black
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
			}
		}
	}

	return cyclic
}

// cyclicIDs flattens the cyclic set into a sorted slice for diagnostics.
func cyclicIDs(cyclic map[string]bool) []string {
	ids := make([]string, 0, len(cyclic))
	for id := range cyclic {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
