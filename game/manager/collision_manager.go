package manager

import (
	"snake-hamiltonian/game/entity"
	"snake-hamiltonian/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision classifies the snake's head after a move has been applied
// (new head prepended, tail already dropped when not growing).
func (cm *CollisionManager) CheckCollision(snake *entity.Snake) entity.CollisionType {
	head := snake.GetHead()
	if cm.isWallCollision(head) {
		return entity.WallCollision
	}
	if cm.isSelfCollision(head, snake) {
		return entity.SelfCollision
	}
	return entity.NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// isSelfCollision checks the head against every other segment.
func (cm *CollisionManager) isSelfCollision(pos types.Point, snake *entity.Snake) bool {
	for _, part := range snake.Body[1:] {
		if pos == part {
			return true
		}
	}
	return false
}

// IsBoardFilled reports whether the body covers every cell.
func (cm *CollisionManager) IsBoardFilled(snake *entity.Snake) bool {
	return snake.Len() >= cm.grid.Area()
}

// ValidateSpawnPosition checks if a position is free for a new goal
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake *entity.Snake) bool {
	if cm.isWallCollision(pos) {
		return false
	}
	return snake == nil || !snake.Occupies(pos)
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food *types.Point) bool {
	return food != nil && pos == *food
}
