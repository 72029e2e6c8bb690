package manager

import (
	"snake-classic/game/entity"
	"snake-classic/game/types"

	"golang.org/x/exp/rand"
)

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
	attempts     int
}

func NewFoodManager(grid types.Grid, rng *rand.Rand, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rng,
		collisionMgr: collisionMgr,
		attempts:     types.FoodPlacementAttempts,
	}
}

// GenerateFood picks a random cell not covered by the snake.
// Random probing is cheap while the board is mostly empty; once the probes run
// out the choice is made uniformly over the remaining free cells.
// ok is false when the snake covers the whole board.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (food types.Point, ok bool) {
	if snake.Len() >= fm.grid.Cells() {
		return types.Point{}, false
	}

	for i := 0; i < fm.attempts; i++ {
		food = types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if fm.collisionMgr.ValidateSpawnPosition(food, snake) {
			return food, true
		}
	}

	free := fm.freeCells(snake)
	if len(free) == 0 {
		return types.Point{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}

func (fm *FoodManager) freeCells(snake *entity.Snake) []types.Point {
	taken := make(map[types.Point]struct{}, snake.Len())
	for _, p := range snake.Body {
		taken[p] = struct{}{}
	}

	free := make([]types.Point, 0, fm.grid.Cells()-len(taken))
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}
	return free
}
