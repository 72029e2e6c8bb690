package game

import (
	"time"

	"snake-classic/game/types"
)

// Phase is where a game sits in its lifecycle
type Phase int

const (
	Idle      Phase = iota // No direction given yet, nothing ticks
	Running                // Ticking
	Paused                 // State frozen until resumed
	GameOver               // Wall or self collision
	BoardFull              // Snake covers every cell, nowhere to put food
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	case BoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// Ended reports a terminal phase that only a restart leaves
func (p Phase) Ended() bool {
	return p == GameOver || p == BoardFull
}

// Outcome tags the result of a single tick
type Outcome int

const (
	Continued Outcome = iota
	Ate
	Collided // game over
	Filled   // board full
)

func (o Outcome) String() string {
	switch o {
	case Continued:
		return "continued"
	case Ate:
		return "ate"
	case Collided:
		return "game_over"
	case Filled:
		return "board_full"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the game state handed to renderers
type Snapshot struct {
	Grid         types.Grid
	Snake        []types.Point // head first
	Food         types.Point
	HasFood      bool
	Direction    types.Direction
	Pending      types.Direction
	Score        int
	HighScore    int
	Level        int
	TickInterval time.Duration
	Phase        Phase
	NewHighScore bool // set once the game has ended above the previous best
}

// Running mirrors the "running" flag: a game is in progress, paused or not
func (s Snapshot) Running() bool {
	return s.Phase == Running || s.Phase == Paused
}

func (s Snapshot) Paused() bool {
	return s.Phase == Paused
}

// TickResult is what Tick hands back to the loop
type TickResult struct {
	Outcome   Outcome
	Collision string // "wall" or "self" when Outcome is Collided
	Events    []Event
}
