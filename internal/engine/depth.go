package engine

// dependencyDepths computes the longest-chain depth of every task: 0 for a
// task with no dependencies, otherwise 1 + the maximum depth among its
// dependencies. Depth discounts deeply nested tasks in the final score on
// the theory that root-level tasks gate more of the plan.
//
// The deps adjacency must already be acyclic (cyclic tasks removed), so the
// memoized recursion terminates; the memo table bounds the work at O(V+E).
func dependencyDepths(ids []string, deps map[string][]string) map[string]int {
	memo := make(map[string]int, len(ids))

	var depth func(id string) int
	depth = func(id string) int {
		if d, ok := memo[id]; ok {
			return d
		}
		maxDep := -1
		for _, dep := range deps[id] {
			if d := depth(dep); d > maxDep {
				maxDep = d
			}
		}
		memo[id] = maxDep + 1
		return memo[id]
	}

	for _, id := range ids {
		depth(id)
	}
	return memo
}
