package algo

import (
	"testing"

	"github.com/elektrokombinacija/mapf-grid-research/internal/core"
)

func TestFindFirstConflictNone(t *testing.T) {
	plan := core.JointPlan{
		0: {{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		1: {{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	}
	if _, found := FindFirstConflict(plan); found {
		t.Fatal("expected no conflict between disjoint paths")
	}
}

func TestFindFirstConflictVertex(t *testing.T) {
	plan := core.JointPlan{
		0: {{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		1: {{Row: 0, Col: 2}, {Row: 0, Col: 1}},
	}
	c, found := FindFirstConflict(plan)
	if !found {
		t.Fatal("expected a vertex conflict")
	}
	if !c.IsVertex() || c.Time != 1 || c.Row != 0 || c.Col != 1 {
		t.Fatalf("unexpected conflict: %+v", c)
	}
}

func TestFindFirstConflictEdgeSwap(t *testing.T) {
	plan := core.JointPlan{
		0: {{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		1: {{Row: 0, Col: 1}, {Row: 0, Col: 0}},
	}
	c, found := FindFirstConflict(plan)
	if !found {
		t.Fatal("expected an edge swap conflict")
	}
	if !c.IsEdge() || c.Time != 0 {
		t.Fatalf("unexpected conflict: %+v", c)
	}
}

func TestFindFirstConflictPaddingAfterShorterPathEnds(t *testing.T) {
	// Agent 0 finishes at t=1 and, per spec.md §4.4, is padded at its goal
	// forever after. Agent 1 arrives at that same cell at t=2.
	plan := core.JointPlan{
		0: {{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		1: {{Row: 2, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 1}, {Row: 0, Col: 1}},
	}
	c, found := FindFirstConflict(plan)
	if !found {
		t.Fatal("expected a padded vertex conflict after the shorter path ends")
	}
	if c.Time != 2 {
		t.Fatalf("expected conflict at t=2 (agent 0 padded at its goal), got t=%d", c.Time)
	}
}

func TestFindFirstConflictTieBreakByAgentOrderAndEarliestTime(t *testing.T) {
	plan := core.JointPlan{
		2: {{Row: 5, Col: 5}, {Row: 5, Col: 5}},
		0: {{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		1: {{Row: 0, Col: 2}, {Row: 0, Col: 1}},
	}
	c, found := FindFirstConflict(plan)
	if !found {
		t.Fatal("expected a conflict")
	}
	if c.Agent1 != 0 || c.Agent2 != 1 || c.Time != 1 {
		t.Fatalf("expected conflict between agents (0,1) at t=1, got (%d,%d) at t=%d", c.Agent1, c.Agent2, c.Time)
	}
}
