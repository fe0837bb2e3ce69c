package core

// ConflictKind discriminates the two conflict shapes so callers can
// switch exhaustively instead of testing an object hierarchy.
type ConflictKind int

const (
	// VertexConflictKind: two agents occupy the same cell at the same time.
	VertexConflictKind ConflictKind = iota
	// EdgeConflictKind: two agents swap cells across one time step.
	EdgeConflictKind
)

// Conflict is the tagged union CBS branches on: a Vertex conflict carries
// (Agent1, Agent2, Row, Col, Time); an Edge conflict additionally carries
// the two cells being swapped. Only the fields relevant to Kind are
// meaningful.
type Conflict struct {
	Kind         ConflictKind
	Agent1       AgentID
	Agent2       AgentID
	Row, Col     int // vertex conflict location
	Time         int // conflict time (spec.md: edge swap uses its start time t)
	FromR, FromC int // edge conflict: cell agent1 occupies at Time
	ToR, ToC     int // edge conflict: cell agent1 occupies at Time+1
}

// IsVertex reports whether c is a vertex conflict.
func (c Conflict) IsVertex() bool { return c.Kind == VertexConflictKind }

// IsEdge reports whether c is an edge (swap) conflict.
func (c Conflict) IsEdge() bool { return c.Kind == EdgeConflictKind }
