package manager

import (
	"testing"

	"snake-classic/game/entity"
	"snake-classic/game/types"

	"golang.org/x/exp/rand"
)

func newFoodManager(grid types.Grid, seed uint64) *FoodManager {
	return NewFoodManager(grid, rand.New(rand.NewSource(seed)), NewCollisionManager(grid))
}

func TestGenerateFoodAvoidsSnake(t *testing.T) {
	grid := types.DefaultGrid()
	snake := &entity.Snake{Body: []types.Point{{X: 10, Y: 10}, {X: 10, Y: 11}, {X: 10, Y: 12}}}

	for seed := uint64(0); seed < 200; seed++ {
		fm := newFoodManager(grid, seed)
		food, ok := fm.GenerateFood(snake)
		if !ok {
			t.Fatalf("seed %d: no food placed", seed)
		}
		if !grid.Contains(food) || snake.Occupies(food) {
			t.Fatalf("seed %d: bad food position %v", seed, food)
		}
	}
}

func TestGenerateFoodSingleFreeCell(t *testing.T) {
	grid := types.Grid{Width: 3, Height: 3}
	var body []types.Point
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 2 && y == 1 {
				continue
			}
			body = append(body, types.Point{X: x, Y: y})
		}
	}
	snake := &entity.Snake{Body: body}

	for seed := uint64(0); seed < 20; seed++ {
		fm := newFoodManager(grid, seed)
		fm.attempts = 0 // go straight to the free cell list
		food, ok := fm.GenerateFood(snake)
		if !ok || food != (types.Point{X: 2, Y: 1}) {
			t.Fatalf("seed %d: expected {2,1}, got %v ok=%v", seed, food, ok)
		}
	}
}

func TestGenerateFoodFullBoard(t *testing.T) {
	grid := types.Grid{Width: 2, Height: 2}
	snake := &entity.Snake{Body: []types.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}}

	if _, ok := newFoodManager(grid, 1).GenerateFood(snake); ok {
		t.Error("food placed on a full board")
	}
}

func TestGenerateFoodDeterministicWithSeed(t *testing.T) {
	snake := entity.NewSnake(types.StartPosition)
	a, _ := newFoodManager(types.DefaultGrid(), 99).GenerateFood(snake)
	b, _ := newFoodManager(types.DefaultGrid(), 99).GenerateFood(snake)
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}
