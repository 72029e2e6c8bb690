package window

import (
	"snake-classic/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// keys lists the keys polled each frame
var keys = []struct {
	code int32
	key  input.Key
}{
	{rl.KeyUp, input.KeyArrowUp},
	{rl.KeyDown, input.KeyArrowDown},
	{rl.KeyLeft, input.KeyArrowLeft},
	{rl.KeyRight, input.KeyArrowRight},
	{rl.KeyW, input.KeyW},
	{rl.KeyA, input.KeyA},
	{rl.KeyS, input.KeyS},
	{rl.KeyD, input.KeyD},
	{rl.KeySpace, input.KeySpace},
	{rl.KeyP, input.KeyP},
	{rl.KeyR, input.KeyR},
	{rl.KeyQ, input.KeyQ},
	{rl.KeyEscape, input.KeyEscape},
}

// PollKeys returns the keys pressed since the last frame. Must run on the
// window goroutine.
func PollKeys() []input.Key {
	var pressed []input.Key
	for _, k := range keys {
		if rl.IsKeyPressed(k.code) {
			pressed = append(pressed, k.key)
		}
	}
	return pressed
}
