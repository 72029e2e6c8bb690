package input

import "github.com/gdamore/tcell/v2"

// FromTcell names a terminal key event
func FromTcell(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyArrowUp, true
	case tcell.KeyDown:
		return KeyArrowDown, true
	case tcell.KeyLeft:
		return KeyArrowLeft, true
	case tcell.KeyRight:
		return KeyArrowRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyEscape, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return KeyW, true
		case 'a', 'A':
			return KeyA, true
		case 's', 'S':
			return KeyS, true
		case 'd', 'D':
			return KeyD, true
		case ' ':
			return KeySpace, true
		case 'p', 'P':
			return KeyP, true
		case 'r', 'R':
			return KeyR, true
		case 'q', 'Q':
			return KeyQ, true
		}
	}
	return "", false
}
