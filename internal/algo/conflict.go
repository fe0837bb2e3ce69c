package algo

import (
	"sort"

	"github.com/elektrokombinacija/mapf-grid-research/internal/core"
)

// sortedAgentIDs returns the plan's agent ids in ascending order so
// conflict scans have a deterministic pair order.
func sortedAgentIDs(plan core.JointPlan) []core.AgentID {
	ids := make([]core.AgentID, 0, len(plan))
	for id := range plan {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// maxPlanTime returns the highest time index any agent's path reaches.
func maxPlanTime(plan core.JointPlan) int {
	max := 0
	for _, p := range plan {
		if len(p) > 0 && len(p)-1 > max {
			max = len(p) - 1
		}
	}
	return max
}

// FindFirstConflict returns the earliest conflict in plan — smallest time,
// ties broken by (agent1, agent2) lexicographically — or (Conflict{}, false)
// if the plan is conflict-free. Agents are padded at their goal past the
// end of their own path (spec.md §4.4), which is what lets this detect
// conflicts that happen after some agents have already finished.
func FindFirstConflict(plan core.JointPlan) (core.Conflict, bool) {
	agents := sortedAgentIDs(plan)
	tMax := maxPlanTime(plan)

	for t := 0; t <= tMax; t++ {
		for i := 0; i < len(agents); i++ {
			for j := i + 1; j < len(agents); j++ {
				a1, a2 := agents[i], agents[j]
				pos1 := plan[a1].At(t)
				pos2 := plan[a2].At(t)

				if pos1 == pos2 {
					return core.Conflict{
						Kind:   core.VertexConflictKind,
						Agent1: a1,
						Agent2: a2,
						Row:    pos1.Row,
						Col:    pos1.Col,
						Time:   t,
					}, true
				}

				if t == tMax {
					continue
				}
				next1 := plan[a1].At(t + 1)
				next2 := plan[a2].At(t + 1)
				if pos1 != next1 && pos2 != next2 && pos1 == next2 && pos2 == next1 {
					return core.Conflict{
						Kind:   core.EdgeConflictKind,
						Agent1: a1,
						Agent2: a2,
						Row:    pos1.Row,
						Col:    pos1.Col,
						Time:   t,
						FromR:  pos1.Row,
						FromC:  pos1.Col,
						ToR:    next1.Row,
						ToC:    next1.Col,
					}, true
				}
			}
		}
	}

	return core.Conflict{}, false
}
