package algo

import (
	"errors"
	"testing"
	"time"

	"github.com/elektrokombinacija/mapf-grid-research/internal/core"
)

func open5x5() *core.Grid {
	return openGrid(5, 5, core.Manhattan4)
}

func TestSolveSoloShortestPath(t *testing.T) {
	g := open5x5()
	agents := []core.Agent{{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 2}}}

	plan, err := Solve(g, agents, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.SumOfCosts() != 3 {
		t.Fatalf("cost = %d, want 3", plan.SumOfCosts())
	}
}

func TestSolveHeadOnSwapRequiresDetourOrWait(t *testing.T) {
	g := open5x5()
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 2}},
		{ID: 1, Start: core.Cell{Row: 0, Col: 2}, Goal: core.Cell{Row: 0, Col: 0}},
	}

	plan, err := Solve(g, agents, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.SumOfCosts() != 8 {
		t.Fatalf("cost = %d, want the MAPF optimum 8", plan.SumOfCosts())
	}
	assertConflictFree(t, plan)
}

func TestSolveVertexMeetingAtCenter(t *testing.T) {
	g := open5x5()
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 2, Col: 2}},
		{ID: 1, Start: core.Cell{Row: 2, Col: 0}, Goal: core.Cell{Row: 0, Col: 2}},
	}

	plan, err := Solve(g, agents, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertConflictFree(t, plan)
}

func TestSolveBottleneckCorridorUnsolvable(t *testing.T) {
	g := openGrid(5, 1, core.Manhattan4)
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 4}},
		{ID: 1, Start: core.Cell{Row: 0, Col: 4}, Goal: core.Cell{Row: 0, Col: 0}},
	}

	_, err := Solve(g, agents, time.Time{})
	if !errors.Is(err, core.ErrUnsolvable) {
		t.Fatalf("err = %v, want ErrUnsolvable", err)
	}
}

func TestSolveGoalBlockingNeedsDetourThroughRow1(t *testing.T) {
	g := open5x5()
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 1}},
		{ID: 1, Start: core.Cell{Row: 0, Col: 1}, Goal: core.Cell{Row: 0, Col: 0}},
	}

	plan, err := Solve(g, agents, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.SumOfCosts() != 6 {
		t.Fatalf("cost = %d, want 6", plan.SumOfCosts())
	}
	assertConflictFree(t, plan)
}

func TestSolveIndependentAgentsDoNotInteract(t *testing.T) {
	g := open5x5()
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 4}},
		{ID: 1, Start: core.Cell{Row: 4, Col: 0}, Goal: core.Cell{Row: 4, Col: 4}},
	}

	plan, err := Solve(g, agents, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.SumOfCosts() != 10 {
		t.Fatalf("cost = %d, want 10 (two 5-cell paths)", plan.SumOfCosts())
	}
}

func TestSolveStartEqualsGoalIsLengthOnePath(t *testing.T) {
	g := open5x5()
	cell := core.Cell{Row: 2, Col: 2}
	agents := []core.Agent{{ID: 0, Start: cell, Goal: cell}}

	plan, err := Solve(g, agents, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan[0]) != 1 {
		t.Fatalf("path = %v, want length 1", plan[0])
	}
}

func TestSolveDuplicateAgentIDIsInvalidInput(t *testing.T) {
	g := open5x5()
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 1}},
		{ID: 0, Start: core.Cell{Row: 1, Col: 0}, Goal: core.Cell{Row: 1, Col: 1}},
	}

	_, err := Solve(g, agents, time.Time{})
	var invalid *core.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *core.InvalidInputError", err)
	}
}

func TestSolveStartOnObstacleIsInvalidInput(t *testing.T) {
	obstacle := make([]bool, 25)
	obstacle[0] = true // (0,0)
	g := core.NewGrid(5, 5, obstacle, core.Manhattan4)
	agents := []core.Agent{{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 4}}}

	_, err := Solve(g, agents, time.Time{})
	var invalid *core.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *core.InvalidInputError", err)
	}
}

func TestSolveDisconnectedGoalIsUnsolvable(t *testing.T) {
	// Wall off column 2 entirely: no route from column 0 to column 4.
	obstacle := make([]bool, 25)
	for r := 0; r < 5; r++ {
		obstacle[r*5+2] = true
	}
	g := core.NewGrid(5, 5, obstacle, core.Manhattan4)
	agents := []core.Agent{{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 4}}}

	_, err := Solve(g, agents, time.Time{})
	if !errors.Is(err, core.ErrUnsolvable) {
		t.Fatalf("err = %v, want ErrUnsolvable", err)
	}
}

func TestSolveIsDeterministicAndIdempotent(t *testing.T) {
	g := open5x5()
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 2, Col: 2}},
		{ID: 1, Start: core.Cell{Row: 2, Col: 0}, Goal: core.Cell{Row: 0, Col: 2}},
		{ID: 2, Start: core.Cell{Row: 4, Col: 4}, Goal: core.Cell{Row: 0, Col: 0}},
	}

	plan1, err1 := Solve(g, agents, time.Time{})
	plan2, err2 := Solve(g, agents, time.Time{})
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if len(plan1) != len(plan2) {
		t.Fatalf("plan lengths differ: %d vs %d", len(plan1), len(plan2))
	}
	for id, p1 := range plan1 {
		p2 := plan2[id]
		if len(p1) != len(p2) {
			t.Fatalf("agent %d path lengths differ across runs", id)
		}
		for i := range p1 {
			if p1[i] != p2[i] {
				t.Fatalf("agent %d path differs across runs at step %d: %v vs %v", id, i, p1, p2)
			}
		}
	}
}

func TestSolveTimeoutWhenDeadlineAlreadyPassed(t *testing.T) {
	g := open5x5()
	agents := []core.Agent{
		{ID: 0, Start: core.Cell{Row: 0, Col: 0}, Goal: core.Cell{Row: 0, Col: 2}},
		{ID: 1, Start: core.Cell{Row: 0, Col: 2}, Goal: core.Cell{Row: 0, Col: 0}},
	}

	_, err := Solve(g, agents, time.Now().Add(-time.Second))
	if !errors.Is(err, core.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func assertConflictFree(t *testing.T, plan core.JointPlan) {
	t.Helper()
	if _, found := FindFirstConflict(plan); found {
		t.Fatalf("plan has a conflict: %+v", plan)
	}
	for id, p := range plan {
		if len(p) == 0 {
			t.Fatalf("agent %d has an empty path", id)
		}
	}
}
