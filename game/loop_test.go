package game

import (
	"context"
	"reflect"
	"testing"
	"time"

	"snake-classic/game/entity"
	"snake-classic/game/types"

	"golang.org/x/exp/rand"
)

// recordingRenderer forwards every snapshot to a buffered channel
type recordingRenderer struct {
	frames chan Snapshot
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{frames: make(chan Snapshot, 64)}
}

func (r *recordingRenderer) Draw(s Snapshot) {
	r.frames <- s
}

func (r *recordingRenderer) next(t *testing.T) Snapshot {
	t.Helper()
	select {
	case s := <-r.frames:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return Snapshot{}
	}
}

func (r *recordingRenderer) none(t *testing.T) {
	t.Helper()
	select {
	case s := <-r.frames:
		t.Fatalf("unexpected frame in phase %v", s.Phase)
	case <-time.After(50 * time.Millisecond):
	}
}

type loopHarness struct {
	game     *Game
	clock    *ManualClock
	renderer *recordingRenderer
	loop     *Loop
	events   chan Event
	done     chan error
	cancel   context.CancelFunc
}

func startLoop(t *testing.T, g *Game) *loopHarness {
	t.Helper()
	h := &loopHarness{
		game:     g,
		clock:    NewManualClock(time.Unix(0, 0)),
		renderer: newRecordingRenderer(),
		events:   make(chan Event, 64),
		done:     make(chan error, 1),
	}
	h.loop = NewLoop(g, h.clock, h.renderer, ListenerFunc(func(e Event) {
		h.events <- e
	}))

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() {
		h.done <- h.loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-h.done
	})
	return h
}

func (h *loopHarness) expectPending(t *testing.T, want ...time.Duration) {
	t.Helper()
	got := h.clock.Pending()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected pending timers %v, got %v", want, got)
	}
}

func runningGame(body []types.Point, dir types.Direction, food types.Point) *Game {
	g := NewGame(types.DefaultGrid(), rand.New(rand.NewSource(11)), nil)
	g.snake = &entity.Snake{Body: body, Direction: dir}
	g.pending = dir
	g.food = food
	g.hasFood = true
	g.phase = Running
	return g
}

func TestLoopStartsOnFirstDirection(t *testing.T) {
	g := NewGame(types.DefaultGrid(), rand.New(rand.NewSource(5)), nil)
	g.food = types.Point{X: 0, Y: 0}
	h := startLoop(t, g)

	if s := h.renderer.next(t); s.Phase != Idle {
		t.Fatalf("expected idle first frame, got %v", s.Phase)
	}
	h.expectPending(t)

	h.loop.Send(DirectionCommand(types.Right))
	if s := h.renderer.next(t); s.Phase != Running {
		t.Fatalf("expected running, got %v", s.Phase)
	}
	h.expectPending(t, 150*time.Millisecond)

	h.clock.Advance(150 * time.Millisecond)
	s := h.renderer.next(t)
	if s.Snake[0] != (types.Point{X: 11, Y: 10}) {
		t.Errorf("expected head {11,10}, got %v", s.Snake[0])
	}
	h.expectPending(t, 150*time.Millisecond)
}

func TestLoopPauseSuppressesTicks(t *testing.T) {
	g := runningGame([]types.Point{{X: 5, Y: 5}}, types.Right, types.Point{X: 0, Y: 0})
	h := startLoop(t, g)

	h.renderer.next(t)
	h.expectPending(t, 150*time.Millisecond)

	h.clock.Advance(100 * time.Millisecond)
	h.loop.Send(Command{Kind: CmdPause})
	if s := h.renderer.next(t); s.Phase != Paused {
		t.Fatalf("expected paused, got %v", s.Phase)
	}
	h.expectPending(t)

	h.clock.Advance(time.Second)
	h.renderer.none(t)

	// Resuming waits a full interval, not the remainder from before the pause
	h.loop.Send(Command{Kind: CmdPause})
	s := h.renderer.next(t)
	if s.Phase != Running {
		t.Fatalf("expected running, got %v", s.Phase)
	}
	if s.Snake[0] != (types.Point{X: 5, Y: 5}) {
		t.Errorf("snake moved while paused: %v", s.Snake[0])
	}
	h.expectPending(t, 150*time.Millisecond)
}

func TestLoopLevelUpShortensInterval(t *testing.T) {
	g := runningGame([]types.Point{{X: 5, Y: 5}}, types.Right, types.Point{X: 6, Y: 5})
	g.score = 40
	h := startLoop(t, g)

	h.renderer.next(t)
	h.clock.Advance(150 * time.Millisecond)

	s := h.renderer.next(t)
	if s.Level != 2 || s.TickInterval != 140*time.Millisecond {
		t.Fatalf("expected level 2 at 140ms, got %d at %v", s.Level, s.TickInterval)
	}
	h.expectPending(t, 140*time.Millisecond)

	var sawLevel bool
	for len(h.events) > 0 {
		if ev, ok := (<-h.events).(LevelUp); ok && ev.Level == 2 {
			sawLevel = true
		}
	}
	if !sawLevel {
		t.Error("listener did not get LevelUp")
	}
}

func TestLoopGameOverStopsTimer(t *testing.T) {
	g := runningGame([]types.Point{{X: 19, Y: 10}}, types.Right, types.Point{X: 0, Y: 0})
	h := startLoop(t, g)

	h.renderer.next(t)
	h.clock.Advance(150 * time.Millisecond)

	s := h.renderer.next(t)
	if s.Phase != GameOver {
		t.Fatalf("expected game over, got %v", s.Phase)
	}
	h.expectPending(t)

	var over bool
	for len(h.events) > 0 {
		if _, ok := (<-h.events).(GameOverEvent); ok {
			over = true
		}
	}
	if !over {
		t.Error("listener did not get GameOverEvent")
	}

	// Directions are ignored until a restart
	h.loop.Send(DirectionCommand(types.Up))
	h.renderer.none(t)

	h.loop.Send(Command{Kind: CmdPauseOrRestart})
	s = h.renderer.next(t)
	if s.Phase != Running || s.Score != 0 || s.Snake[0] != types.StartPosition {
		t.Fatalf("expected fresh running game, got %+v", s)
	}
	h.expectPending(t, 150*time.Millisecond)

	// No direction yet, the snake waits but the timer keeps going
	h.clock.Advance(150 * time.Millisecond)
	s = h.renderer.next(t)
	if s.Snake[0] != types.StartPosition {
		t.Errorf("snake moved without a direction: %v", s.Snake[0])
	}
	h.expectPending(t, 150*time.Millisecond)
}

func TestLoopQuitReturnsNil(t *testing.T) {
	g := NewGame(types.DefaultGrid(), rand.New(rand.NewSource(1)), nil)
	clock := NewManualClock(time.Unix(0, 0))
	loop := NewLoop(g, clock, nil)

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	loop.Send(Command{Kind: CmdQuit})
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on quit")
	}
}

func TestLoopCancelReturnsContextError(t *testing.T) {
	g := runningGame([]types.Point{{X: 5, Y: 5}}, types.Right, types.Point{X: 0, Y: 0})
	clock := NewManualClock(time.Unix(0, 0))
	loop := NewLoop(g, clock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on cancel")
	}
	if n := len(clock.Pending()); n != 0 {
		t.Errorf("timer left armed after Run: %d", n)
	}
}

func TestLoopSendDropsWhenFull(t *testing.T) {
	g := NewGame(types.DefaultGrid(), nil, nil)
	loop := NewLoop(g, nil, nil)

	for i := 0; i < commandBuffer; i++ {
		if !loop.Send(Command{Kind: CmdPause}) {
			t.Fatalf("send %d rejected", i)
		}
	}
	if loop.Send(Command{Kind: CmdPause}) {
		t.Error("send accepted on a full queue")
	}
}
