package manager

import (
	"snake-classic/game/entity"
	"snake-classic/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision checks a candidate head against the walls and the current body.
// The body is the one before the move, so the cell the tail is about to leave
// still counts as occupied.
func (cm *CollisionManager) CheckCollision(pos types.Point, snake *entity.Snake) CollisionType {
	if cm.isWallCollision(pos) {
		return WallCollision
	}
	if snake.Occupies(pos) {
		return SelfCollision
	}
	return NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food types.Point) bool {
	return pos == food
}

// ValidateSpawnPosition checks if a position is free for food
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake *entity.Snake) bool {
	if cm.isWallCollision(pos) {
		return false
	}
	return !snake.Occupies(pos)
}
