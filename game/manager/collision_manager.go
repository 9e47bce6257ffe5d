package manager

import (
	"snake-arcade/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Evaluate classifies the head that was just prepended to body. body[0] is
// the head itself and is skipped.
func (cm *CollisionManager) Evaluate(head types.Cell, body []types.Cell) types.CollisionType {
	if cm.isWallCollision(head) {
		return types.WallCollision
	}
	if cm.isSelfCollision(head, body) {
		return types.SelfCollision
	}
	return types.NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Cell) bool {
	return !cm.grid.InBounds(pos)
}

func (cm *CollisionManager) isSelfCollision(pos types.Cell, body []types.Cell) bool {
	for i := 1; i < len(body); i++ {
		if pos == body[i] {
			return true
		}
	}
	return false
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Cell, food types.Cell) bool {
	return pos == food
}

// ValidateSpawnPosition checks if a position is free for food.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Cell, occupied []types.Cell) bool {
	if cm.isWallCollision(pos) {
		return false
	}
	for _, part := range occupied {
		if pos == part {
			return false
		}
	}
	return true
}
