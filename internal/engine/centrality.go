package engine

// katzCentrality measures how much transitive unblocking influence each task
// has. children maps a task to the tasks that directly depend on it, so
// influence flows from leaves back to roots: a task that unblocks a task
// that unblocks many others outranks one that only unblocks a leaf.
//
// Every value starts at the baseline; each iteration recomputes
//
//	value[v] = baseline + decay * Σ previous[child] for v's children
//
// for a fixed iteration count. The fixed count trades exactness at the fixed
// point for bounded, predictable latency. Returns raw, unnormalized values.
func katzCentrality(ids []string, children map[string][]string, opts Options) map[string]float64 {
	if len(ids) == 0 {
		return map[string]float64{}
	}

	value := make(map[string]float64, len(ids))
	for _, id := range ids {
		value[id] = opts.KatzBaseline
	}

	for i := 0; i < opts.KatzIterations; i++ {
		next := make(map[string]float64, len(ids))
		for _, id := range ids {
			sum := 0.0
			for _, child := range children[id] {
				sum += value[child]
			}
			next[id] = opts.KatzBaseline + opts.KatzDecay*sum
		}
		value = next
	}

	return value
}

// normalizeByMax scales values so the maximum becomes 1. A degenerate
// maximum (zero or negative, possible only with a non-positive baseline)
// leaves the values untouched rather than dividing by zero.
func normalizeByMax(values map[string]float64) {
	maxV := 0.0
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}
	if maxV <= 0 {
		return
	}
	for id := range values {
		values[id] /= maxV
	}
}
