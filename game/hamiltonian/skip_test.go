package hamiltonian

import (
	"testing"

	"snake-hamiltonian/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// On the 4x4 cycle from (0,0) the steps are:
//
//	 0  1  2  3
//	15 14 13  4
//	10 11 12  5
//	 9  8  7  6
func fourByFourPlanner(t *testing.T) *SkipPlanner {
	t.Helper()
	return NewSkipPlanner(newIndex(t, types.Grid{Width: 4, Height: 4}, pt(0, 0)))
}

func TestSkipPlannerPlan(t *testing.T) {
	sp := fourByFourPlanner(t)

	tests := []struct {
		name       string
		head, tail types.Point
		goal       types.Point
		bodyLen    int
		want       Skip
		ok         bool
	}{
		{
			name: "shortcut to goal neighbour",
			head: pt(1, 0), tail: pt(0, 0), goal: pt(1, 1), bodyLen: 2,
			want: Skip{Direction: types.Down, Target: pt(1, 1), Step: 14},
			ok:   true,
		},
		{
			name: "shortcut towards goal",
			head: pt(1, 0), tail: pt(0, 0), goal: pt(0, 1), bodyLen: 2,
			want: Skip{Direction: types.Down, Target: pt(1, 1), Step: 14},
			ok:   true,
		},
		{
			name: "tail ahead of head",
			head: pt(1, 0), tail: pt(0, 1), goal: pt(1, 1), bodyLen: 3,
		},
		{
			name: "goal behind head",
			head: pt(2, 1), tail: pt(3, 3), goal: pt(1, 0), bodyLen: 5,
		},
		{
			name: "best neighbour overshoots goal",
			head: pt(1, 0), tail: pt(0, 0), goal: pt(2, 2), bodyLen: 2,
		},
		{
			name: "goal is the next cycle cell",
			head: pt(1, 0), tail: pt(0, 0), goal: pt(2, 0), bodyLen: 2,
		},
		{
			name: "best neighbour is the next cycle cell",
			head: pt(1, 0), tail: pt(0, 0), goal: pt(3, 0), bodyLen: 2,
		},
		{
			name: "disabled at half the board",
			head: pt(1, 0), tail: pt(0, 0), goal: pt(1, 1), bodyLen: 8,
		},
		{
			name: "still enabled just below half",
			head: pt(1, 0), tail: pt(0, 0), goal: pt(1, 1), bodyLen: 7,
			want: Skip{Direction: types.Down, Target: pt(1, 1), Step: 14},
			ok:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := sp.Plan(tt.head, tt.tail, tt.goal, tt.bodyLen)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkipPlannerTieGoesToFirstNeighbour(t *testing.T) {
	grid := types.Grid{Width: 4, Height: 4}
	base, err := BuildCycle(grid, pt(0, 0), types.DefaultNeighborOrder)
	require.NoError(t, err)

	// Rotate the cycle to start at (2,1). Then (1,1) sits at step 1 with
	// (1,0) at step 4 and (1,2) at step 14, both five steps from the goal
	// at (3,3), step 9.
	rotated := &Cycle{
		Cells: append(append([]types.Point(nil), base.Cells[13:]...), base.Cells[:13]...),
		Moves: append(append([]types.Direction(nil), base.Moves[13:]...), base.Moves[:13]...),
	}

	tests := []struct {
		name  string
		order types.NeighborOrder
		want  Skip
		ok    bool
	}{
		// DOWN comes before UP: (1,2) wins the tie and overshoots the goal.
		{"down first", types.DefaultNeighborOrder, Skip{}, false},
		{"up first", types.NeighborOrder{types.Up, types.Left, types.Down, types.Right},
			Skip{Direction: types.Up, Target: pt(1, 0), Step: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix, err := NewCycleIndex(grid, rotated, tt.order)
			require.NoError(t, err)
			got, ok, err := NewSkipPlanner(ix).Plan(pt(1, 1), pt(2, 1), pt(3, 3), 2)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSkipPlannerEnabled(t *testing.T) {
	sp := fourByFourPlanner(t)
	assert.True(t, sp.Enabled(1))
	assert.True(t, sp.Enabled(7))
	assert.False(t, sp.Enabled(8))
	assert.False(t, sp.Enabled(15))
}

func TestSkipPlannerOutOfGrid(t *testing.T) {
	sp := fourByFourPlanner(t)

	_, _, err := sp.Plan(pt(-1, 0), pt(0, 0), pt(1, 1), 2)
	assert.ErrorIs(t, err, ErrCellOutOfGrid)
	_, _, err = sp.Plan(pt(1, 0), pt(0, 9), pt(1, 1), 2)
	assert.ErrorIs(t, err, ErrCellOutOfGrid)
	_, _, err = sp.Plan(pt(1, 0), pt(0, 0), pt(4, 4), 2)
	assert.ErrorIs(t, err, ErrCellOutOfGrid)
}

// Every accepted shortcut must land on a grid neighbour strictly ahead of the
// head and no further than the goal, and only while the tail trails the head.
func TestSkipPlannerBoundsHoldEverywhere(t *testing.T) {
	grid := types.Grid{Width: 6, Height: 6}
	ix := newIndex(t, grid, pt(0, 0))
	sp := NewSkipPlanner(ix)
	cells := grid.Cells()

	for _, head := range cells {
		headStep, err := ix.Step(head)
		require.NoError(t, err)
		for _, tail := range cells {
			tailStep, err := ix.Step(tail)
			require.NoError(t, err)
			for _, goal := range cells {
				goalStep, err := ix.Step(goal)
				require.NoError(t, err)

				got, ok, err := sp.Plan(head, tail, goal, 2)
				require.NoError(t, err)
				if !ok {
					continue
				}
				require.Less(t, tailStep, headStep)
				require.Greater(t, got.Step, headStep+1)
				require.LessOrEqual(t, got.Step, goalStep)
				require.True(t, types.Adjacent(head, got.Target))
				require.Equal(t, got.Target, head.Add(got.Direction))
				require.Equal(t, got.Target, ix.Cell(got.Step))
			}
		}
	}
}
