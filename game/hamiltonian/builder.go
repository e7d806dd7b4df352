// Package hamiltonian builds a Hamiltonian cycle over a rectangular grid,
// indexes it for constant-time step lookups and decides when the snake may
// leave the cycle for a forward shortcut.
//
// The cycle is found once by an exhaustive depth-first search and then shared
// read-only by the tick loop. Search time grows exponentially with the grid in
// the worst case; choosing a grid the search can handle is left to the caller.
package hamiltonian

import (
	"errors"
	"fmt"

	"snake-hamiltonian/game/types"
)

var (
	ErrOddArea         = errors.New("grid area is odd, no Hamiltonian cycle exists")
	ErrGridTooSmall    = errors.New("grid needs at least 4 cells to hold a cycle")
	ErrStartOutOfGrid  = errors.New("start cell is outside the grid")
	ErrSearchExhausted = errors.New("search exhausted without closing a cycle")
)

// MinCycleLen is the shortest closed tour a grid graph admits. Two cells only
// allow walking one edge back and forth.
const MinCycleLen = 4

// Cycle is a closed tour over every grid cell.
type Cycle struct {
	// Cells holds the visitation order; Cells[0] is the start cell.
	Cells []types.Point
	// Moves[i] leads from Cells[i] to Cells[(i+1)%len(Cells)].
	Moves []types.Direction
}

// Len is the number of steps in the cycle.
func (c *Cycle) Len() int {
	return len(c.Cells)
}

// BuildCycle searches for a Hamiltonian cycle that starts at start, exploring
// neighbours in the given order. The result is deterministic for a given
// grid, start and order.
func BuildCycle(grid types.Grid, start types.Point, order types.NeighborOrder) (*Cycle, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if grid.Area()%2 != 0 {
		return nil, fmt.Errorf("%dx%d: %w", grid.Width, grid.Height, ErrOddArea)
	}
	if grid.Area() < MinCycleLen {
		return nil, fmt.Errorf("%dx%d: %w", grid.Width, grid.Height, ErrGridTooSmall)
	}
	if !grid.Contains(start) {
		return nil, fmt.Errorf("%v on %dx%d: %w", start, grid.Width, grid.Height, ErrStartOutOfGrid)
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	path := search(grid, start, order)
	if path == nil {
		return nil, fmt.Errorf("%dx%d from %v: %w", grid.Width, grid.Height, start, ErrSearchExhausted)
	}

	moves := make([]types.Direction, len(path))
	for i, cell := range path {
		moves[i] = types.DirectionBetween(cell, path[(i+1)%len(path)])
	}
	return &Cycle{Cells: path, Moves: moves}, nil
}

// search runs the backtracking walk with an explicit stack. path is the
// stack of cells, tried[i] is how many directions path[i] has attempted.
func search(grid types.Grid, start types.Point, order types.NeighborOrder) []types.Point {
	n := grid.Area()
	visited := make([]bool, n)
	path := make([]types.Point, 0, n)
	tried := make([]uint8, 0, n)

	push := func(p types.Point) {
		visited[grid.Index(p)] = true
		path = append(path, p)
		tried = append(tried, 0)
	}
	pop := func() {
		top := len(path) - 1
		visited[grid.Index(path[top])] = false
		path = path[:top]
		tried = tried[:top]
	}

	push(start)
	for len(path) > 0 {
		top := len(path) - 1
		cell := path[top]

		if len(path) == n {
			if types.Adjacent(cell, start) {
				return path
			}
			pop()
			continue
		}
		if int(tried[top]) == len(order) {
			pop()
			continue
		}

		next := cell.Add(order[tried[top]])
		tried[top]++
		if grid.Contains(next) && !visited[grid.Index(next)] {
			push(next)
		}
	}
	return nil
}
