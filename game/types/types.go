package types

import "time"

// Point is a cell on the playing field
type Point struct {
	X, Y int
}

// Add returns p moved by delta
func (p Point) Add(delta Point) Point {
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the grid
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells in the grid
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Game constants
const (
	GridSize  = 20 // Pixel size of a tile
	TileCount = 20 // Field width and height in tiles

	PointsPerFood  = 10 // Multiplied by the current level
	LevelScoreStep = 50 // Level goes up every time the score hits a multiple of this

	InitialTickInterval = 150 * time.Millisecond
	MinTickInterval     = 80 * time.Millisecond
	TickIntervalStep    = 10 * time.Millisecond

	FoodPlacementAttempts = 64 // Random probes before falling back to the free cell list
)

// StartPosition is where the snake spawns
var StartPosition = Point{X: 10, Y: 10}

// DefaultGrid is the square field used by the game
func DefaultGrid() Grid {
	return Grid{Width: TileCount, Height: TileCount}
}
