// Package input turns key presses and swipes into game commands.
package input

import (
	"snake-classic/game"
	"snake-classic/game/types"
)

// Key is a device independent key name, spelled like DOM key codes
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyW          Key = "KeyW"
	KeyA          Key = "KeyA"
	KeyS          Key = "KeyS"
	KeyD          Key = "KeyD"
	KeySpace      Key = "Space"
	KeyP          Key = "KeyP"
	KeyR          Key = "KeyR"
	KeyQ          Key = "KeyQ"
	KeyEscape     Key = "Escape"
)

var keyTable = map[Key]game.Command{
	KeyArrowUp:    game.DirectionCommand(types.Up),
	KeyW:          game.DirectionCommand(types.Up),
	KeyArrowDown:  game.DirectionCommand(types.Down),
	KeyS:          game.DirectionCommand(types.Down),
	KeyArrowLeft:  game.DirectionCommand(types.Left),
	KeyA:          game.DirectionCommand(types.Left),
	KeyArrowRight: game.DirectionCommand(types.Right),
	KeyD:          game.DirectionCommand(types.Right),
	KeySpace:      {Kind: game.CmdPauseOrRestart},
	KeyP:          {Kind: game.CmdPause},
	KeyR:          {Kind: game.CmdRestart},
	KeyQ:          {Kind: game.CmdQuit},
	KeyEscape:     {Kind: game.CmdQuit},
}

// FromKey maps a key to its command. Unknown keys give ok == false.
func FromKey(k Key) (game.Command, bool) {
	cmd, ok := keyTable[k]
	return cmd, ok
}

// Vec is a screen coordinate, Y grows downwards
type Vec struct {
	X, Y float64
}

// FromSwipe picks a direction from a touch gesture. The axis with the larger
// displacement wins, ties go to the vertical axis, and the sign of the
// displacement picks the way. A gesture that does not move yields nothing.
func FromSwipe(start, end Vec) (game.Command, bool) {
	dx := end.X - start.X
	dy := end.Y - start.Y

	if dx == 0 && dy == 0 {
		return game.Command{}, false
	}

	if abs(dx) > abs(dy) {
		if dx > 0 {
			return game.DirectionCommand(types.Right), true
		}
		return game.DirectionCommand(types.Left), true
	}
	if dy > 0 {
		return game.DirectionCommand(types.Down), true
	}
	return game.DirectionCommand(types.Up), true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Sender is where mapped commands go, usually a *game.Loop
type Sender interface {
	Send(game.Command) bool
}

// Mapper forwards device input to a Sender
type Mapper struct {
	out Sender

	touching   bool
	touchStart Vec
}

func NewMapper(out Sender) *Mapper {
	return &Mapper{out: out}
}

// Key forwards a key press; unknown keys are ignored
func (m *Mapper) Key(k Key) bool {
	cmd, ok := FromKey(k)
	if !ok {
		return false
	}
	return m.out.Send(cmd)
}

// TouchStart records where a swipe began
func (m *Mapper) TouchStart(p Vec) {
	m.touching = true
	m.touchStart = p
}

// TouchEnd finishes a swipe. Swipes only steer a running game; phase is the
// one from the latest snapshot the caller has seen.
func (m *Mapper) TouchEnd(p Vec, phase game.Phase) bool {
	if !m.touching {
		return false
	}
	m.touching = false
	if phase != game.Running {
		return false
	}
	cmd, ok := FromSwipe(m.touchStart, p)
	if !ok {
		return false
	}
	return m.out.Send(cmd)
}
