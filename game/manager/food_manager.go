package manager

import (
	"snake-hamiltonian/game/entity"
	"snake-hamiltonian/game/types"

	"golang.org/x/exp/rand"
)

// FoodManager places the goal cell. Placement is uniform over free cells and
// reproducible for a given seed.
type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
	spawned      int
}

func NewFoodManager(grid types.Grid, seed uint64, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
}

// GenerateFood picks a cell not occupied by snake. It returns false when the
// board has no free cell left.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (types.Point, bool) {
	free := make([]types.Point, 0, fm.grid.Area())
	for _, cell := range fm.grid.Cells() {
		if fm.collisionMgr.ValidateSpawnPosition(cell, snake) {
			free = append(free, cell)
		}
	}
	if len(free) == 0 {
		return types.Point{}, false
	}
	fm.spawned++
	return free[fm.rng.Intn(len(free))], true
}

// Spawned counts goals placed so far.
func (fm *FoodManager) Spawned() int {
	return fm.spawned
}
