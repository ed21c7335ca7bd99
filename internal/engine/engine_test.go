package engine

import (
	"reflect"
	"testing"

	"github.com/taskrank/taskrank/internal/task"
)

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()
	res := New(DefaultOptions()).Run(nil, testToday)

	if len(res.Ranked) != 0 {
		t.Errorf("ranked = %v, want empty", res.Ranked)
	}
	if len(res.Cyclic) != 0 {
		t.Errorf("cyclic = %v, want empty", res.Cyclic)
	}
}

func TestRun_EveryTaskCyclic(t *testing.T) {
	t.Parallel()
	res := New(DefaultOptions()).Run([]task.Task{
		{ID: "a", Title: "a", DependsOn: []string{"b"}},
		{ID: "b", Title: "b", DependsOn: []string{"a"}},
	}, testToday)

	if len(res.Ranked) != 0 {
		t.Errorf("expected empty ranking, got %d entries", len(res.Ranked))
	}
	if got, want := res.Cyclic, []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("cyclic = %v, want %v", got, want)
	}
}

func TestRun_CyclicTasksExcludedEverywhere(t *testing.T) {
	t.Parallel()
	// x and y form a cycle; z depends on x. z must not count x as a
	// dependency, must score, and must come out unblocked.
	res := New(DefaultOptions()).Run([]task.Task{
		{ID: "x", Title: "x", DependsOn: []string{"y"}},
		{ID: "y", Title: "y", DependsOn: []string{"x"}},
		{ID: "z", Title: "z", DependsOn: []string{"x"}},
	}, testToday)

	if got, want := res.Cyclic, []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("cyclic = %v, want %v", got, want)
	}
	if len(res.Ranked) != 1 || res.Ranked[0].Task.ID != "z" {
		t.Fatalf("ranked = %v, want just z", res.Ranked)
	}
	if res.Ranked[0].Blocked {
		t.Error("z blocked only by a quarantined cyclic task, want unblocked")
	}
	if res.Ranked[0].Breakdown.Depth != 0 {
		t.Errorf("depth(z) = %d, want 0 after cyclic dependency dropped",
			res.Ranked[0].Breakdown.Depth)
	}
}

func TestRun_UnblockedAlwaysBeforeBlocked(t *testing.T) {
	t.Parallel()
	// Identical tasks except one carries a dependency. The blocked one even
	// gets the dependency boost from its dependent, yet must still rank
	// behind every unblocked task in the final output.
	res := New(DefaultOptions()).Run([]task.Task{
		{ID: "free", Title: "free", Importance: 5, EstimatedHours: 2},
		{ID: "gate", Title: "gate", Importance: 5, EstimatedHours: 2},
		{ID: "held", Title: "held", Importance: 5, EstimatedHours: 2, DependsOn: []string{"gate"}},
	}, testToday)

	sawBlocked := false
	for _, st := range res.Ranked {
		if st.Blocked {
			sawBlocked = true
		} else if sawBlocked {
			t.Fatalf("unblocked task %q ranked after a blocked one", st.Task.ID)
		}
	}
	if !sawBlocked {
		t.Fatal("expected at least one blocked task in fixture")
	}
}

func TestRun_TieBreakAscendingID(t *testing.T) {
	t.Parallel()
	res := New(DefaultOptions()).Run([]task.Task{
		{ID: "b", Title: "twin", Importance: 7, EstimatedHours: 3},
		{ID: "a", Title: "twin", Importance: 7, EstimatedHours: 3},
		{ID: "c", Title: "twin", Importance: 7, EstimatedHours: 3},
	}, testToday)

	var ids []string
	for _, st := range res.Ranked {
		ids = append(ids, st.Task.ID)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("tie-broken order = %v, want %v", ids, want)
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()
	snapshot := []task.Task{
		{ID: "t1", Title: "one", Importance: 8, EstimatedHours: 1, DueDate: dueIn(10)},
		{ID: "t2", Title: "two", Importance: 3, EstimatedHours: 5, DueDate: dueIn(2), DependsOn: []string{"t1"}},
		{ID: "t3", Title: "three", DependsOn: []string{"t2"}},
		{ID: "loop", Title: "loop", DependsOn: []string{"loop2"}},
		{ID: "loop2", Title: "loop2", DependsOn: []string{"loop"}},
	}
	e := New(DefaultOptions())

	first := e.Run(snapshot, testToday)
	second := e.Run(snapshot, testToday)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over the same snapshot differ:\n%v\n%v", first, second)
	}
}

func TestRun_ScoresWithinScale(t *testing.T) {
	t.Parallel()
	res := New(DefaultOptions()).Run([]task.Task{
		{ID: "hot", Title: "hot", Importance: 10, EstimatedHours: 0.1, DueDate: dueIn(-400)},
		{ID: "cold", Title: "cold", Importance: 1, EstimatedHours: 500, DueDate: dueIn(300)},
	}, testToday)

	for _, st := range res.Ranked {
		if st.Score < 0 || st.Score > 100 {
			t.Errorf("score(%s) = %f, outside [0, 100]", st.Task.ID, st.Score)
		}
	}
}

func TestRun_EndToEndScenario(t *testing.T) {
	t.Parallel()
	res := New(DefaultOptions()).Run([]task.Task{
		{ID: "t1", Title: "design", Importance: 8, EstimatedHours: 1, DueDate: dueIn(10)},
		{ID: "t2", Title: "build", Importance: 3, EstimatedHours: 5, DueDate: dueIn(2), DependsOn: []string{"t1"}},
		{ID: "t3", Title: "ship", DependsOn: []string{"t2"}},
	}, testToday)

	if len(res.Cyclic) != 0 {
		t.Fatalf("unexpected cycles: %v", res.Cyclic)
	}
	if len(res.Ranked) != 3 {
		t.Fatalf("ranked %d tasks, want 3", len(res.Ranked))
	}

	if res.Ranked[0].Task.ID != "t1" || res.Ranked[0].Blocked {
		t.Errorf("first entry = %q (blocked=%v), want unblocked t1",
			res.Ranked[0].Task.ID, res.Ranked[0].Blocked)
	}
	for _, st := range res.Ranked[1:] {
		if !st.Blocked {
			t.Errorf("%q should be in the blocked group", st.Task.ID)
		}
	}
	if res.Ranked[1].Score < res.Ranked[2].Score {
		t.Errorf("blocked group not sorted by score: %f < %f",
			res.Ranked[1].Score, res.Ranked[2].Score)
	}
}

func TestRun_DanglingReferenceSurfacedAsWarning(t *testing.T) {
	t.Parallel()
	res := New(DefaultOptions()).Run([]task.Task{
		{ID: "a", Title: "a", DependsOn: []string{"missing"}},
	}, testToday)

	if !hasWarning(res.Warnings, "unknown task") {
		t.Errorf("expected dangling-reference warning, got %v", res.Warnings)
	}
	if len(res.Ranked) != 1 || res.Ranked[0].Blocked {
		t.Errorf("task with only a dangling dependency should rank unblocked: %v", res.Ranked)
	}
}
