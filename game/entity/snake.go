package entity

import (
	"snake-classic/game/types"
)

// Snake is the player's body, head first
type Snake struct {
	Body      []types.Point
	Direction types.Direction
}

func NewSnake(startPos types.Point) *Snake {
	return &Snake{
		Body:      []types.Point{startPos},
		Direction: types.None,
	}
}

// Move puts newHead in front of the body
func (s *Snake) Move(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment sits on p
func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the body
func (s *Snake) Clone() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}
