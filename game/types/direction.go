package types

// Direction is a cardinal direction
type Direction int

const (
	None  Direction = iota // 0
	Up                     // 1
	Right                  // 2
	Down                   // 3
	Left                   // 4
)

// Delta converts a Direction into a movement vector
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1} // Y grows downwards
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 0, Y: 0}
	}
}

// Opposite returns the direction pointing the other way. None stays None.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return None
	}
}

// FromDelta maps a unit vector back to its Direction
func FromDelta(p Point) Direction {
	switch p {
	case Point{X: 0, Y: -1}:
		return Up
	case Point{X: 1, Y: 0}:
		return Right
	case Point{X: 0, Y: 1}:
		return Down
	case Point{X: -1, Y: 0}:
		return Left
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}
