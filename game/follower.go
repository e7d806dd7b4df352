package game

import (
	"snake-hamiltonian/game/entity"
	"snake-hamiltonian/game/hamiltonian"
	"snake-hamiltonian/game/manager"
	"snake-hamiltonian/game/types"
)

// StepResult is what a single PathFollower advance did to the snake.
type StepResult struct {
	Head    types.Point
	Grew    bool
	Skipped bool
	Reason  EndReason
}

// PathFollower moves the snake one cell per tick along the cycle, or onto a
// planned shortcut when one is given.
type PathFollower struct {
	index        *hamiltonian.CycleIndex
	collisionMgr *manager.CollisionManager
}

func NewPathFollower(index *hamiltonian.CycleIndex, collisionMgr *manager.CollisionManager) *PathFollower {
	return &PathFollower{
		index:        index,
		collisionMgr: collisionMgr,
	}
}

// Advance applies one tick to snake. goal may be nil when no goal is on the
// board, in which case the snake never grows. skip, when non-nil, overrides
// the cycle move for this tick only.
func (f *PathFollower) Advance(snake *entity.Snake, goal *types.Point, skip *hamiltonian.Skip) (StepResult, error) {
	var (
		dir    types.Direction
		cursor int
	)
	if skip != nil {
		dir = skip.Direction
		cursor = skip.Step
	} else {
		dir = f.index.Move(snake.Cursor)
		cursor = (snake.Cursor + 1) % f.index.Len()
	}
	// A reversal is refused and the snake carries on with its old heading.
	snake.SetDirection(dir)

	newHead := snake.NextHead()
	res := StepResult{
		Head:    newHead,
		Grew:    f.collisionMgr.IsFoodCollision(newHead, goal),
		Skipped: skip != nil,
	}

	snake.Move(newHead)
	if res.Grew {
		snake.Score++
	} else {
		snake.RemoveTail()
	}

	switch collision := f.collisionMgr.CheckCollision(snake); collision {
	case entity.WallCollision, entity.SelfCollision:
		snake.Dead = true
		snake.GameOver = true
		snake.LastCollision = collision
		res.Reason = endReasonFor(collision)
		return res, nil
	}

	if newHead != f.index.Cell(cursor) {
		// The planned move was refused; follow the cycle from wherever we are.
		step, err := f.index.Step(newHead)
		if err != nil {
			return res, err
		}
		cursor = step
	}
	snake.Cursor = cursor

	if f.collisionMgr.IsBoardFilled(snake) {
		snake.GameOver = true
		res.Reason = EndWin
	}
	return res, nil
}
