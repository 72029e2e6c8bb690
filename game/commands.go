package game

import "snake-classic/game/types"

// CommandKind identifies what a player asked for
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdDirection
	CmdPause
	CmdRestart
	CmdPauseOrRestart // pauses a game in progress, restarts otherwise
	CmdQuit
)

func (k CommandKind) String() string {
	switch k {
	case CmdDirection:
		return "direction"
	case CmdPause:
		return "pause"
	case CmdRestart:
		return "restart"
	case CmdPauseOrRestart:
		return "pause_or_restart"
	case CmdQuit:
		return "quit"
	default:
		return "none"
	}
}

// Command is a player request produced by an input device
type Command struct {
	Kind      CommandKind
	Direction types.Direction
}

func DirectionCommand(d types.Direction) Command {
	return Command{Kind: CmdDirection, Direction: d}
}

// Apply runs a command against the game, honouring the phase rules:
// directions start an idle game or steer a running one, pause only works on a
// game in progress and restart only once a game has ended or never began.
// It returns whether the command changed anything.
func (g *Game) Apply(cmd Command) (bool, []Event) {
	switch cmd.Kind {
	case CmdDirection:
		switch g.phase {
		case Idle:
			return g.Start(cmd.Direction)
		case Running:
			return g.SetPendingDirection(cmd.Direction), nil
		default:
			return false, nil
		}

	case CmdPause:
		return g.TogglePause()

	case CmdRestart:
		if g.phase == Idle || g.phase.Ended() {
			return true, g.Restart()
		}
		return false, nil

	case CmdPauseOrRestart:
		if g.phase == Running || g.phase == Paused {
			return g.TogglePause()
		}
		return true, g.Restart()
	}

	return false, nil
}
