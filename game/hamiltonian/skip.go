package hamiltonian

import (
	"snake-hamiltonian/game/types"
)

// Skip is a one-tick shortcut onto a grid neighbour of the head.
type Skip struct {
	Direction types.Direction
	Target    types.Point
	Step      int
}

// SkipPlanner decides whether the head may leave the cycle this tick.
type SkipPlanner struct {
	index *CycleIndex
}

func NewSkipPlanner(index *CycleIndex) *SkipPlanner {
	return &SkipPlanner{index: index}
}

// Enabled reports whether shortcuts are still considered for a body of the
// given length. They stop once the body covers half the board.
func (sp *SkipPlanner) Enabled(bodyLen int) bool {
	return bodyLen < sp.index.Len()/2
}

// Plan returns a shortcut and true when one is safe and useful.
//
// A shortcut is only taken while the tail is behind the head in cycle order,
// and only onto the neighbour whose step is closest to the goal's, provided
// that step lies strictly ahead of the head and not past the goal. The
// comparison never wraps around the end of the cycle. A neighbour that is
// simply the next cycle cell is not reported since the default move reaches it.
func (sp *SkipPlanner) Plan(head, tail, goal types.Point, bodyLen int) (Skip, bool, error) {
	if !sp.Enabled(bodyLen) {
		return Skip{}, false, nil
	}

	goalStep, err := sp.index.Step(goal)
	if err != nil {
		return Skip{}, false, err
	}
	headStep, err := sp.index.Step(head)
	if err != nil {
		return Skip{}, false, err
	}
	tailStep, err := sp.index.Step(tail)
	if err != nil {
		return Skip{}, false, err
	}
	if tailStep >= headStep {
		return Skip{}, false, nil
	}

	neighbors, err := sp.index.Neighbors(head)
	if err != nil {
		return Skip{}, false, err
	}

	best := Skip{Step: -1}
	bestDist := -1
	for _, nb := range neighbors {
		step, err := sp.index.Step(nb)
		if err != nil {
			return Skip{}, false, err
		}
		dist := abs(goalStep - step)
		if bestDist < 0 || dist < bestDist {
			best = Skip{Direction: types.DirectionBetween(head, nb), Target: nb, Step: step}
			bestDist = dist
		}
	}

	if best.Step <= headStep+1 || best.Step > goalStep {
		return Skip{}, false, nil
	}
	return best, true, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
