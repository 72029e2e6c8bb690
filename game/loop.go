package game

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Renderer draws a snapshot. Draw is called from the loop goroutine and must
// not block it.
type Renderer interface {
	Draw(Snapshot)
}

const commandBuffer = 16

// Loop owns a Game and is the only goroutine that mutates it. Input reaches
// it as commands over a channel; ticks come from a timer that is re-armed
// after each step with the interval in force at that moment.
type Loop struct {
	game      *Game
	clock     Clock
	renderer  Renderer
	listeners []Listener

	commands chan Command
	timer    Timer
	ticks    uint64
}

func NewLoop(g *Game, clock Clock, renderer Renderer, listeners ...Listener) *Loop {
	if clock == nil {
		clock = NewRealClock()
	}
	return &Loop{
		game:      g,
		clock:     clock,
		renderer:  renderer,
		listeners: listeners,
		commands:  make(chan Command, commandBuffer),
	}
}

// AddListener registers a listener, must be called before Run
func (l *Loop) AddListener(listener Listener) {
	l.listeners = append(l.listeners, listener)
}

// Send queues a command. Safe from any goroutine; drops the command when the
// queue is full rather than blocking the input device.
func (l *Loop) Send(cmd Command) bool {
	select {
	case l.commands <- cmd:
		return true
	default:
		log.Debug().Stringer("command", cmd.Kind).Msg("command queue full, dropped")
		return false
	}
}

// Run drives the game until ctx is done or a quit command arrives
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopTimer()

	l.schedule()
	l.draw()

	for {
		var tick <-chan time.Time
		if l.timer != nil {
			tick = l.timer.C()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd := <-l.commands:
			if cmd.Kind == CmdQuit {
				log.Info().Int("score", l.game.Score()).Msg("quit requested")
				return nil
			}
			l.handleCommand(cmd)

		case <-tick:
			l.timer = nil
			l.step()
		}
	}
}

func (l *Loop) handleCommand(cmd Command) {
	changed, events := l.game.Apply(cmd)
	if !changed {
		return
	}
	l.dispatch(events)
	l.schedule()
	l.draw()
}

func (l *Loop) step() {
	l.ticks++
	result := l.game.Tick()
	if result.Outcome == Collided {
		log.Info().
			Str("game", l.game.UUID).
			Str("collision", result.Collision).
			Int("score", l.game.Score()).
			Int("level", l.game.Level()).
			Uint64("ticks", l.ticks).
			Msg("game over")
	}
	l.dispatch(result.Events)
	l.schedule()
	l.draw()
}

// schedule keeps exactly one timer armed while the game runs and none otherwise
func (l *Loop) schedule() {
	if l.game.Phase() != Running {
		l.stopTimer()
		return
	}
	if l.timer == nil {
		l.timer = l.clock.NewTimer(l.game.TickInterval())
	}
}

func (l *Loop) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

func (l *Loop) dispatch(events []Event) {
	for _, e := range events {
		switch ev := e.(type) {
		case LevelUp:
			log.Debug().Int("level", ev.Level).Dur("interval", l.game.TickInterval()).Msg("level up")
		case PhaseChanged:
			log.Debug().Stringer("from", ev.From).Stringer("to", ev.To).Msg("phase changed")
		}
		for _, listener := range l.listeners {
			listener.OnEvent(e)
		}
	}
}

func (l *Loop) draw() {
	if l.renderer != nil {
		l.renderer.Draw(l.game.Snapshot())
	}
}

// Ticks returns the number of steps taken. Only read it once Run has returned.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}
