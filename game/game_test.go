package game

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"snake-hamiltonian/game/hamiltonian"
	"snake-hamiltonian/game/manager"
	"snake-hamiltonian/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions(grid types.Grid, start types.Point, seed uint64, skipping bool) Options {
	return Options{
		Grid:          grid,
		Start:         start,
		Order:         types.DefaultNeighborOrder,
		Seed:          seed,
		InitialLength: 3,
		Skipping:      skipping,
		Logger:        quietLogger(),
	}
}

func TestNewGameInitialState(t *testing.T) {
	g, err := NewGame(testOptions(types.Grid{Width: 8, Height: 8}, pt(2, 0), 11, true))
	require.NoError(t, err)

	out := g.Outcome()
	assert.Equal(t, []types.Point{pt(2, 0), pt(1, 0), pt(0, 0)}, out.Body)
	assert.Equal(t, pt(2, 0), out.Head)
	assert.Equal(t, types.Right, g.GetSnake().Direction)
	assert.Equal(t, 0, g.GetSnake().Cursor)
	assert.True(t, out.HasGoal)
	assert.False(t, g.GetSnake().Occupies(out.Goal))
	assert.False(t, out.Over)
	assert.Equal(t, EndNone, out.Reason)
	assert.NotEmpty(t, g.UUID)
	assert.Equal(t, 64, g.Index().Len())
}

func TestNewGameErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"odd area", testOptions(types.Grid{Width: 3, Height: 3}, pt(0, 0), 1, true), hamiltonian.ErrOddArea},
		{"start outside", testOptions(types.Grid{Width: 4, Height: 4}, pt(5, 5), 1, true), hamiltonian.ErrStartOutOfGrid},
		{"no cycle", testOptions(types.Grid{Width: 1, Height: 4}, pt(0, 0), 1, true), hamiltonian.ErrSearchExhausted},
		{"two cells wide", Options{Grid: types.Grid{Width: 2, Height: 1}, Order: types.DefaultNeighborOrder, InitialLength: 1, Logger: quietLogger()}, hamiltonian.ErrGridTooSmall},
		{"two cells tall", Options{Grid: types.Grid{Width: 1, Height: 2}, Order: types.DefaultNeighborOrder, InitialLength: 1, Logger: quietLogger()}, hamiltonian.ErrGridTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGame(tt.opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	for _, length := range []int{0, -1, 16, 20} {
		opts := testOptions(types.Grid{Width: 4, Height: 4}, pt(0, 0), 1, true)
		opts.InitialLength = length
		_, err := NewGame(opts)
		assert.ErrorIs(t, err, ErrInvalidLength, "length %d", length)
	}
}

// requireValidBody checks that the body stays on the grid, never overlaps
// itself and is a connected chain.
func requireValidBody(t *testing.T, grid types.Grid, body []types.Point) {
	t.Helper()
	seen := make(map[types.Point]bool, len(body))
	for i, cell := range body {
		require.True(t, grid.Contains(cell), "segment %d %v off grid", i, cell)
		require.False(t, seen[cell], "segment %d %v overlaps", i, cell)
		seen[cell] = true
		if i > 0 {
			require.True(t, types.Adjacent(body[i-1], cell), "segments %d and %d apart", i-1, i)
		}
	}
}

func TestGamesAlwaysFillTheBoard(t *testing.T) {
	grids := []struct {
		grid  types.Grid
		start types.Point
	}{
		{types.Grid{Width: 4, Height: 4}, pt(0, 0)},
		{types.Grid{Width: 6, Height: 6}, pt(0, 0)},
		{types.Grid{Width: 8, Height: 8}, pt(2, 0)},
		{types.Grid{Width: 6, Height: 4}, pt(0, 0)},
	}
	for _, gc := range grids {
		for _, skipping := range []bool{true, false} {
			for seed := uint64(1); seed <= 5; seed++ {
				name := fmt.Sprintf("%dx%d skip=%v seed=%d", gc.grid.Width, gc.grid.Height, skipping, seed)
				t.Run(name, func(t *testing.T) {
					g, err := NewGame(testOptions(gc.grid, gc.start, seed, skipping))
					require.NoError(t, err)

					n := gc.grid.Area()
					limit := n * n * 2
					var out Outcome
					for !out.Over {
						out, err = g.Tick()
						require.NoError(t, err)
						require.NotEqual(t, EndSelf, out.Reason)
						require.NotEqual(t, EndWall, out.Reason)
						requireValidBody(t, gc.grid, out.Body)
						require.Equal(t, 3+out.Score, len(out.Body))
						require.Less(t, out.Tick, limit, "game did not finish")
					}

					assert.Equal(t, EndWin, out.Reason)
					assert.Len(t, out.Body, n)
					assert.Equal(t, n-3, out.Score)
					assert.False(t, out.HasGoal)
					if !skipping {
						assert.Zero(t, g.Skips())
					}
				})
			}
		}
	}
}

func TestSkippingShortensGames(t *testing.T) {
	skips := 0
	for seed := uint64(1); seed <= 5; seed++ {
		g, err := NewGame(testOptions(types.Grid{Width: 8, Height: 8}, pt(2, 0), seed, true))
		require.NoError(t, err)
		out, err := g.Run(0)
		require.NoError(t, err)
		require.Equal(t, EndWin, out.Reason)
		skips += g.Skips()
	}
	assert.Positive(t, skips)
}

func TestGameIsReproducible(t *testing.T) {
	opts := testOptions(types.Grid{Width: 6, Height: 6}, pt(0, 0), 99, true)
	a, err := NewGame(opts)
	require.NoError(t, err)
	b, err := NewGame(opts)
	require.NoError(t, err)
	assert.NotEqual(t, a.UUID, b.UUID)

	for {
		oa, err := a.Tick()
		require.NoError(t, err)
		ob, err := b.Tick()
		require.NoError(t, err)
		require.Equal(t, oa, ob)
		if oa.Over {
			break
		}
	}
}

func TestTickAfterGameOverIsNoop(t *testing.T) {
	g, err := NewGame(testOptions(types.Grid{Width: 4, Height: 4}, pt(0, 0), 3, true))
	require.NoError(t, err)

	final, err := g.Run(0)
	require.NoError(t, err)
	require.True(t, final.Over)
	require.Len(t, g.Stats().GetRuns(), 1)

	for i := 0; i < 5; i++ {
		out, err := g.Tick()
		require.NoError(t, err)
		assert.Equal(t, final, out)
	}
	assert.Len(t, g.Stats().GetRuns(), 1)
	assert.Equal(t, 13, g.Stats().GetHighScore())
}

func TestSmallestGridIsWon(t *testing.T) {
	opts := testOptions(types.Grid{Width: 2, Height: 2}, pt(0, 0), 4, true)
	opts.InitialLength = 1
	g, err := NewGame(opts)
	require.NoError(t, err)

	out, err := g.Run(0)
	require.NoError(t, err)
	assert.Equal(t, EndWin, out.Reason)
	assert.Len(t, out.Body, 4)
	assert.Len(t, g.Stats().GetRuns(), 1)
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	g, err := NewGame(testOptions(types.Grid{Width: 8, Height: 8}, pt(2, 0), 11, true))
	require.NoError(t, err)

	out, err := g.Run(5)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Tick)
	assert.Equal(t, 5, g.Steps())
	assert.False(t, out.Over)
	assert.Empty(t, g.Stats().GetRuns())
}

func TestRunRecordsToStatsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "stats.json")
	stats, err := manager.NewStateManager(file)
	require.NoError(t, err)

	opts := testOptions(types.Grid{Width: 4, Height: 4}, pt(0, 0), 5, true)
	opts.Stats = stats
	g, err := NewGame(opts)
	require.NoError(t, err)
	out, err := g.Run(0)
	require.NoError(t, err)

	reloaded, err := manager.NewStateManager(file)
	require.NoError(t, err)
	runs := reloaded.GetRuns()
	require.Len(t, runs, 1)
	assert.Equal(t, g.UUID, runs[0].UUID)
	assert.Equal(t, "board-filled", runs[0].Reason)
	assert.Equal(t, out.Score, runs[0].Score)
	assert.Equal(t, 16, runs[0].Length)
	assert.Equal(t, out.Tick, runs[0].Steps)
	assert.Equal(t, uint64(5), runs[0].Seed)
}

func TestSetFood(t *testing.T) {
	g, err := NewGame(testOptions(types.Grid{Width: 4, Height: 4}, pt(0, 0), 1, false))
	require.NoError(t, err)

	assert.False(t, g.SetFood(pt(0, 0)), "on the head")
	assert.False(t, g.SetFood(pt(1, 1)), "on the body")
	assert.False(t, g.SetFood(pt(4, 0)), "off the grid")

	require.True(t, g.SetFood(pt(1, 0)))
	food, ok := g.GetFood()
	assert.True(t, ok)
	assert.Equal(t, pt(1, 0), food)

	out, err := g.Tick()
	require.NoError(t, err)
	assert.True(t, out.Grew)
	assert.Equal(t, 1, out.Score)
	assert.NotEqual(t, pt(1, 0), out.Goal)
}

func TestEndReasonString(t *testing.T) {
	assert.Equal(t, "running", EndNone.String())
	assert.Equal(t, "out-of-bounds", EndWall.String())
	assert.Equal(t, "self-collision", EndSelf.String())
	assert.Equal(t, "board-filled", EndWin.String())
}
