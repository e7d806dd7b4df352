package hamiltonian

import (
	"errors"
	"fmt"

	"snake-hamiltonian/game/types"
)

var (
	ErrCellOutOfGrid = errors.New("cell is outside the grid")
	ErrInvalidCycle  = errors.New("cycle is not a Hamiltonian cycle of the grid")
)

// CycleIndex maps every grid cell to its step in the cycle and to its in-grid
// neighbours. It is immutable once built and safe for concurrent readers.
type CycleIndex struct {
	grid  types.Grid
	order types.NeighborOrder
	cycle *Cycle

	// steps and neighbors are indexed by grid.Index(cell).
	steps     []int
	neighbors [][]types.Point
}

// NewCycleIndex validates cycle against grid and builds the lookup tables.
// Neighbours of each cell are listed in the given exploration order.
func NewCycleIndex(grid types.Grid, cycle *Cycle, order types.NeighborOrder) (*CycleIndex, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	n := grid.Area()
	if n < MinCycleLen || cycle == nil || len(cycle.Cells) != n || len(cycle.Moves) != n {
		return nil, fmt.Errorf("want %d cells: %w", n, ErrInvalidCycle)
	}

	steps := make([]int, n)
	for i := range steps {
		steps[i] = -1
	}
	for i, cell := range cycle.Cells {
		if !grid.Contains(cell) {
			return nil, fmt.Errorf("step %d at %v: %w", i, cell, ErrInvalidCycle)
		}
		slot := grid.Index(cell)
		if steps[slot] != -1 {
			return nil, fmt.Errorf("%v visited at steps %d and %d: %w", cell, steps[slot], i, ErrInvalidCycle)
		}
		next := cycle.Cells[(i+1)%n]
		if !types.Adjacent(cell, next) || cell.Add(cycle.Moves[i]) != next {
			return nil, fmt.Errorf("step %d %v -> %v: %w", i, cell, next, ErrInvalidCycle)
		}
		steps[slot] = i
	}

	neighbors := make([][]types.Point, n)
	for slot := range neighbors {
		cell := grid.At(slot)
		adj := make([]types.Point, 0, len(order))
		for _, d := range order {
			if nb := cell.Add(d); grid.Contains(nb) {
				adj = append(adj, nb)
			}
		}
		neighbors[slot] = adj
	}

	return &CycleIndex{
		grid:      grid,
		order:     order,
		cycle:     cycle,
		steps:     steps,
		neighbors: neighbors,
	}, nil
}

// Step returns the 0-based position of p in the cycle.
func (ix *CycleIndex) Step(p types.Point) (int, error) {
	if !ix.grid.Contains(p) {
		return 0, fmt.Errorf("step of %v: %w", p, ErrCellOutOfGrid)
	}
	return ix.steps[ix.grid.Index(p)], nil
}

// Neighbors returns the in-grid neighbours of p in exploration order. They are
// grid-adjacent, not necessarily cycle-adjacent. The slice must not be modified.
func (ix *CycleIndex) Neighbors(p types.Point) ([]types.Point, error) {
	if !ix.grid.Contains(p) {
		return nil, fmt.Errorf("neighbors of %v: %w", p, ErrCellOutOfGrid)
	}
	return ix.neighbors[ix.grid.Index(p)], nil
}

// Cell returns the cell at the given step, wrapping modulo the cycle length.
func (ix *CycleIndex) Cell(step int) types.Point {
	return ix.cycle.Cells[ix.wrap(step)]
}

// Move returns the direction that leaves the cell at the given step.
func (ix *CycleIndex) Move(step int) types.Direction {
	return ix.cycle.Moves[ix.wrap(step)]
}

// Len is the number of steps in the cycle.
func (ix *CycleIndex) Len() int {
	return len(ix.cycle.Cells)
}

func (ix *CycleIndex) Grid() types.Grid {
	return ix.grid
}

func (ix *CycleIndex) Order() types.NeighborOrder {
	return ix.order
}

func (ix *CycleIndex) wrap(step int) int {
	n := len(ix.cycle.Cells)
	step %= n
	if step < 0 {
		step += n
	}
	return step
}
