package core

// VertexConstraint prohibits agent from occupying (Row,Col) at Time.
type VertexConstraint struct {
	Agent AgentID
	Row   int
	Col   int
	Time  int
}

// EdgeConstraint prohibits agent from traversing the directed edge
// (R1,C1) -> (R2,C2) between Time and Time+1.
type EdgeConstraint struct {
	Agent AgentID
	R1    int
	C1    int
	R2    int
	C2    int
	Time  int
}

// ConstraintSet is an immutable-from-the-outside set of vertex and edge
// constraints with O(1) exact membership. WithVertex/WithEdge return a new
// set equal to the receiver plus one element; the receiver is untouched.
//
// Constraints accumulate across the CBS constraint tree (spec.md §9's
// "persistent constraint sets" note): each child differs from its parent
// by exactly one element. This implementation clones the two small
// backing maps on every add rather than layering parent pointers, trading
// an O(depth) copy per node for true O(1) membership lookups — the
// alternative (a parent-pointer chain) would need an O(depth) walk on
// every membership test instead, and the low level calls HasVertex/HasEdge
// once per expanded state.
type ConstraintSet struct {
	vertices map[VertexConstraint]struct{}
	edges    map[EdgeConstraint]struct{}
}

// NewConstraintSet returns an empty constraint set.
func NewConstraintSet() *ConstraintSet {
	return &ConstraintSet{
		vertices: make(map[VertexConstraint]struct{}),
		edges:    make(map[EdgeConstraint]struct{}),
	}
}

// HasVertex reports whether the exact vertex constraint is a member.
func (s *ConstraintSet) HasVertex(agent AgentID, row, col, t int) bool {
	if s == nil {
		return false
	}
	_, ok := s.vertices[VertexConstraint{Agent: agent, Row: row, Col: col, Time: t}]
	return ok
}

// HasEdge reports whether the exact directed edge constraint is a member.
func (s *ConstraintSet) HasEdge(agent AgentID, r1, c1, r2, c2, t int) bool {
	if s == nil {
		return false
	}
	_, ok := s.edges[EdgeConstraint{Agent: agent, R1: r1, C1: c1, R2: r2, C2: c2, Time: t}]
	return ok
}

// WithVertex returns a new set containing every constraint in s plus v.
func (s *ConstraintSet) WithVertex(v VertexConstraint) *ConstraintSet {
	next := s.clone()
	next.vertices[v] = struct{}{}
	return next
}

// WithEdge returns a new set containing every constraint in s plus e.
func (s *ConstraintSet) WithEdge(e EdgeConstraint) *ConstraintSet {
	next := s.clone()
	next.edges[e] = struct{}{}
	return next
}

func (s *ConstraintSet) clone() *ConstraintSet {
	next := NewConstraintSet()
	if s == nil {
		return next
	}
	for k := range s.vertices {
		next.vertices[k] = struct{}{}
	}
	for k := range s.edges {
		next.edges[k] = struct{}{}
	}
	return next
}

// MaxVertexConstraintTime returns the latest Time among vertex constraints
// on agent at (row,col), and whether any such constraint exists at all.
// The low level uses this to decide whether reaching the goal early is
// actually safe to terminate on (spec.md §4.3's goal-camping note): a
// later constraint at the goal means the agent cannot simply stop there.
func (s *ConstraintSet) MaxVertexConstraintTime(agent AgentID, row, col int) (int, bool) {
	if s == nil {
		return 0, false
	}
	max, found := 0, false
	for v := range s.vertices {
		if v.Agent == agent && v.Row == row && v.Col == col {
			if !found || v.Time > max {
				max = v.Time
			}
			found = true
		}
	}
	return max, found
}

// MaxTime returns the largest Time value appearing in any constraint in
// the set (vertex or edge), and whether the set is non-empty. Used to size
// the low level's search horizon (spec.md §4.3).
func (s *ConstraintSet) MaxTime() (int, bool) {
	if s == nil {
		return 0, false
	}
	max, found := 0, false
	for v := range s.vertices {
		if !found || v.Time > max {
			max = v.Time
		}
		found = true
	}
	for e := range s.edges {
		if !found || e.Time > max {
			max = e.Time
		}
		found = true
	}
	return max, found
}

// Len returns the total number of constraints (vertex + edge) in the set.
func (s *ConstraintSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.vertices) + len(s.edges)
}
