package algo

import (
	"container/heap"
	"time"

	"github.com/elektrokombinacija/mapf-grid-research/internal/core"
)

// cbsNode is one node of the CBS constraint tree. It is immutable after
// construction: childFor builds fresh child nodes rather than mutating the
// parent, matching spec.md §3's "node is immutable after construction".
type cbsNode struct {
	constraints *core.ConstraintSet
	solution    core.JointPlan
	cost        int
	conflict    core.Conflict
	hasConflict bool
	numConflict int // tie-break: 1 if the node has a conflict, 0 if not; conflicts beyond the first are not counted
	index       int // heap bookkeeping
}

// cbsHeap orders nodes by cost, then by numConflict (so a conflict-free
// node pops before a conflicting one of equal cost), then by insertion
// order, for deterministic, non-decreasing-cost expansion. Nodes of equal
// cost that both have conflicts are not ordered by how many they have.
// index doubles as the FIFO tie-break: it is assigned once per push and
// never reused, so ties among equal (cost, numConflict) pairs resolve by
// arrival order, matching the
// teacher's cbsHeap in internal/algo/cbs.go generalized with the two
// extra tie-break keys spec.md calls for.
type cbsHeap []*cbsNode

func (h cbsHeap) Len() int { return len(h) }
func (h cbsHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	if h[i].numConflict != h[j].numConflict {
		return h[i].numConflict < h[j].numConflict
	}
	return h[i].index < h[j].index
}
func (h cbsHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *cbsHeap) Push(x any) {
	*h = append(*h, x.(*cbsNode))
}
func (h *cbsHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// Solve runs Conflict-Based Search for the given grid and agent set,
// returning a conflict-free joint plan or an error from core's taxonomy
// (InvalidInputError, ErrUnsolvable, ErrTimeout) per spec.md §7.
//
// deadline is optional; a zero time.Time means no deadline, matching
// spec.md §5's "may accept a deadline" — checked between CBS expansions
// and, inside FindPath, is left to the caller's own bounded horizon.
func Solve(g *core.Grid, agents []core.Agent, deadline time.Time) (core.JointPlan, error) {
	if err := validateAgents(g, agents); err != nil {
		return nil, err
	}
	if len(agents) == 0 {
		return core.JointPlan{}, nil
	}

	root := &cbsNode{
		constraints: core.NewConstraintSet(),
		solution:    core.JointPlan{},
	}
	for _, a := range agents {
		horizon := Horizon(g, root.constraints)
		path, ok := FindPath(g, a.ID, a.Start, a.Goal, 0, horizon, root.constraints)
		if !ok {
			return nil, core.ErrUnsolvable
		}
		root.solution[a.ID] = path
	}
	root.cost = root.solution.SumOfCosts()
	root.conflict, root.hasConflict = FindFirstConflict(root.solution)
	if root.hasConflict {
		root.numConflict = 1
	}

	open := &cbsHeap{}
	heap.Init(open)
	nextIndex := 0
	push := func(n *cbsNode) {
		n.index = nextIndex
		nextIndex++
		heap.Push(open, n)
	}
	push(root)

	for open.Len() > 0 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, core.ErrTimeout
		}

		node := heap.Pop(open).(*cbsNode)

		if !node.hasConflict {
			return node.solution, nil
		}

		for _, aid := range conflictingAgents(node.conflict) {
			child := childFor(g, agents, node, aid)
			if child == nil {
				continue // infeasible branch: dropped, not an error (spec.md §7)
			}
			push(child)
		}
	}

	return nil, core.ErrUnsolvable
}

// conflictingAgents returns the two agents a CBS conflict implicates, in
// a fixed order so the two children it produces are deterministic.
func conflictingAgents(c core.Conflict) [2]core.AgentID {
	return [2]core.AgentID{c.Agent1, c.Agent2}
}

// childFor builds the CBS child that adds one new constraint on agent
// aid to node's constraint set, per spec.md §4.5, and re-plans only that
// agent. It returns nil when re-planning fails — the caller drops the
// branch rather than treating it as an error.
func childFor(g *core.Grid, agents []core.Agent, node *cbsNode, aid core.AgentID) *cbsNode {
	var childConstraints *core.ConstraintSet
	c := node.conflict
	if c.IsVertex() {
		childConstraints = node.constraints.WithVertex(core.VertexConstraint{
			Agent: aid, Row: c.Row, Col: c.Col, Time: c.Time,
		})
	} else {
		// Edge constraints are directional: each agent was traversing the
		// conflicting edge in its own direction, so each child forbids the
		// direction *that* agent actually took (spec.md §4.5).
		fromR, fromC, toR, toC := c.FromR, c.FromC, c.ToR, c.ToC
		if aid == c.Agent2 {
			fromR, fromC, toR, toC = toR, toC, fromR, fromC
		}
		childConstraints = node.constraints.WithEdge(core.EdgeConstraint{
			Agent: aid, R1: fromR, C1: fromC, R2: toR, C2: toC, Time: c.Time,
		})
	}

	var agent core.Agent
	for _, a := range agents {
		if a.ID == aid {
			agent = a
			break
		}
	}

	horizon := Horizon(g, childConstraints)
	path, ok := FindPath(g, aid, agent.Start, agent.Goal, 0, horizon, childConstraints)
	if !ok {
		return nil
	}

	solution := make(core.JointPlan, len(node.solution))
	for id, p := range node.solution {
		solution[id] = p
	}
	solution[aid] = path

	child := &cbsNode{
		constraints: childConstraints,
		solution:    solution,
		cost:        solution.SumOfCosts(),
	}
	child.conflict, child.hasConflict = FindFirstConflict(solution)
	if child.hasConflict {
		child.numConflict = 1
	}
	return child
}

// validateAgents checks the InvalidInput cases spec.md §7 lists: a start
// or goal out of bounds or on an obstacle, or a duplicate agent id.
func validateAgents(g *core.Grid, agents []core.Agent) error {
	seen := make(map[core.AgentID]bool, len(agents))
	for _, a := range agents {
		if seen[a.ID] {
			return &core.InvalidInputError{Reason: "duplicate agent id"}
		}
		seen[a.ID] = true
		if !g.Passable(a.Start.Row, a.Start.Col) {
			return &core.InvalidInputError{Reason: "agent start is out of bounds or an obstacle"}
		}
		if !g.Passable(a.Goal.Row, a.Goal.Col) {
			return &core.InvalidInputError{Reason: "agent goal is out of bounds or an obstacle"}
		}
	}
	return nil
}
