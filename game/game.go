package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"snake-hamiltonian/game/entity"
	"snake-hamiltonian/game/hamiltonian"
	"snake-hamiltonian/game/manager"
	"snake-hamiltonian/game/types"

	"github.com/google/uuid"
)

var ErrInvalidLength = errors.New("initial length must leave at least one free cell")

// EndReason tells why a game stopped.
type EndReason int

const (
	EndNone EndReason = iota
	EndWall
	EndSelf
	EndWin
)

func (r EndReason) String() string {
	switch r {
	case EndWall:
		return "out-of-bounds"
	case EndSelf:
		return "self-collision"
	case EndWin:
		return "board-filled"
	default:
		return "running"
	}
}

func endReasonFor(c entity.CollisionType) EndReason {
	switch c {
	case entity.WallCollision:
		return EndWall
	case entity.SelfCollision:
		return EndSelf
	default:
		return EndNone
	}
}

// Options configures a new game.
type Options struct {
	Grid          types.Grid
	Start         types.Point
	Order         types.NeighborOrder
	Seed          uint64
	InitialLength int
	// Skipping enables shortcuts off the cycle.
	Skipping bool

	Stats  *manager.StateManager
	Logger *slog.Logger
}

// Outcome is the per-tick view handed to renderers and the game loop.
type Outcome struct {
	Tick    int
	Head    types.Point
	Body    []types.Point
	Goal    types.Point
	HasGoal bool
	Score   int
	Skipped bool
	Grew    bool
	Over    bool
	Reason  EndReason
}

type Game struct {
	UUID      string
	Grid      types.Grid
	Seed      uint64
	StartTime time.Time
	EndTime   time.Time

	index        *hamiltonian.CycleIndex
	planner      *hamiltonian.SkipPlanner
	follower     *PathFollower
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stats        *manager.StateManager
	log          *slog.Logger

	snake    *entity.Snake
	food     types.Point
	hasFood  bool
	skipping bool

	steps    int
	skips    int
	reason   EndReason
	last     StepResult
	recorded bool
}

// NewGame builds the cycle, places the snake on the cells leading into the
// start cell and spawns the first goal.
func NewGame(opts Options) (*Game, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "game"))

	began := time.Now()
	cycle, err := hamiltonian.BuildCycle(opts.Grid, opts.Start, opts.Order)
	if err != nil {
		return nil, fmt.Errorf("build cycle: %w", err)
	}
	index, err := hamiltonian.NewCycleIndex(opts.Grid, cycle, opts.Order)
	if err != nil {
		return nil, fmt.Errorf("index cycle: %w", err)
	}
	log.Info("cycle built",
		slog.Int("width", opts.Grid.Width),
		slog.Int("height", opts.Grid.Height),
		slog.String("start", opts.Start.String()),
		slog.String("order", opts.Order.String()),
		slog.Duration("took", time.Since(began)))

	n := index.Len()
	if opts.InitialLength < 1 || opts.InitialLength >= n {
		return nil, fmt.Errorf("length %d on %d cells: %w", opts.InitialLength, n, ErrInvalidLength)
	}

	// The body trails the start cell along the cycle, so the first lap is
	// already a valid walk.
	body := make([]types.Point, opts.InitialLength)
	for i := range body {
		body[i] = index.Cell(-i)
	}
	snake := entity.NewSnake(body, index.Move(n-1), 0)

	stats := opts.Stats
	if stats == nil {
		if stats, err = manager.NewStateManager(""); err != nil {
			return nil, err
		}
	}

	collisionMgr := manager.NewCollisionManager(opts.Grid)
	g := &Game{
		UUID:         uuid.New().String(),
		Grid:         opts.Grid,
		Seed:         opts.Seed,
		StartTime:    time.Now(),
		index:        index,
		planner:      hamiltonian.NewSkipPlanner(index),
		follower:     NewPathFollower(index, collisionMgr),
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(opts.Grid, opts.Seed, collisionMgr),
		stats:        stats,
		log:          log,
		snake:        snake,
		skipping:     opts.Skipping,
	}
	g.food, g.hasFood = g.foodMgr.GenerateFood(snake)
	return g, nil
}

// Tick advances the game by one move. Once the game is over Tick leaves the
// state untouched and returns the final outcome again. Errors are reserved
// for index lookups that should never miss.
func (g *Game) Tick() (Outcome, error) {
	if g.snake.GameOver {
		return g.Outcome(), nil
	}
	g.steps++

	var skip *hamiltonian.Skip
	if g.skipping && g.hasFood {
		planned, ok, err := g.planner.Plan(g.snake.GetHead(), g.snake.GetTail(), g.food, g.snake.Len())
		if err != nil {
			return g.Outcome(), fmt.Errorf("plan skip: %w", err)
		}
		if ok {
			skip = &planned
			g.skips++
		}
	}

	var goal *types.Point
	if g.hasFood {
		goal = &g.food
	}
	res, err := g.follower.Advance(g.snake, goal, skip)
	if err != nil {
		return g.Outcome(), fmt.Errorf("advance: %w", err)
	}
	g.last = res

	switch {
	case res.Reason != EndNone:
		g.hasFood = g.hasFood && !res.Grew
		g.finish(res.Reason)
	case res.Grew:
		g.food, g.hasFood = g.foodMgr.GenerateFood(g.snake)
		g.log.Debug("goal eaten",
			slog.Int("score", g.snake.Score),
			slog.Int("length", g.snake.Len()),
			slog.String("next", g.food.String()))
	}
	return g.Outcome(), nil
}

// Run ticks until the game ends or maxTicks moves were made (0 means no
// limit) and returns the last outcome.
func (g *Game) Run(maxTicks int) (Outcome, error) {
	out := g.Outcome()
	for !out.Over && (maxTicks <= 0 || g.steps < maxTicks) {
		var err error
		if out, err = g.Tick(); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (g *Game) finish(reason EndReason) {
	g.reason = reason
	g.EndTime = time.Now()
	if g.recorded {
		return
	}
	g.recorded = true

	g.log.Info("game over",
		slog.String("reason", reason.String()),
		slog.Int("score", g.snake.Score),
		slog.Int("length", g.snake.Len()),
		slog.Int("steps", g.steps),
		slog.Int("skips", g.skips))

	run := manager.RunRecord{
		UUID:      g.UUID,
		Seed:      g.Seed,
		Grid:      g.Grid,
		Score:     g.snake.Score,
		Length:    g.snake.Len(),
		Steps:     g.steps,
		Skips:     g.skips,
		Reason:    reason.String(),
		StartTime: g.StartTime,
		EndTime:   g.EndTime,
	}
	if err := g.stats.AddRun(run); err != nil {
		g.log.Warn("could not save stats", slog.String("error", err.Error()))
	}
}

// Outcome snapshots the current state.
func (g *Game) Outcome() Outcome {
	return Outcome{
		Tick:    g.steps,
		Head:    g.snake.GetHead(),
		Body:    g.snake.Snapshot(),
		Goal:    g.food,
		HasGoal: g.hasFood,
		Score:   g.snake.Score,
		Skipped: g.last.Skipped,
		Grew:    g.last.Grew,
		Over:    g.snake.GameOver,
		Reason:  g.reason,
	}
}

func (g *Game) GetSnake() *entity.Snake {
	return g.snake
}

// GetFood returns the goal cell and whether one is on the board.
func (g *Game) GetFood() (types.Point, bool) {
	return g.food, g.hasFood
}

// SetFood moves the goal. It refuses cells off the grid or under the snake.
func (g *Game) SetFood(p types.Point) bool {
	if !g.collisionMgr.ValidateSpawnPosition(p, g.snake) {
		return false
	}
	g.food, g.hasFood = p, true
	return true
}

func (g *Game) Index() *hamiltonian.CycleIndex {
	return g.index
}

func (g *Game) Stats() *manager.StateManager {
	return g.stats
}

func (g *Game) Steps() int {
	return g.steps
}

func (g *Game) Skips() int {
	return g.skips
}
