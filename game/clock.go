package game

import (
	"sort"
	"sync"
	"time"
)

// Timer is a one-shot timer as seen by the Loop
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Clock creates timers. RealClock is used in the game, ManualClock in tests.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// RealClock wraps the time package
type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) NewTimer(d time.Duration) Timer {
	return realTimer{time.NewTimer(d)}
}

type realTimer struct {
	t *time.Timer
}

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }

// ManualClock provides a controllable time source for testing. Timers fire
// only when Advance moves the clock past their deadline.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (m *ManualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *ManualClock) NewTimer(d time.Duration) Timer {
	m.mu.Lock()
	t := &manualTimer{
		clock:    m,
		deadline: m.now.Add(d),
		c:        make(chan time.Time, 1),
	}
	m.timers = append(m.timers, t)
	m.mu.Unlock()
	return t
}

// Pending returns the time left on timers not yet fired or stopped, shortest first
func (m *ManualClock) Pending() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]time.Duration, 0, len(m.timers))
	for _, t := range m.timers {
		out = append(out, t.deadline.Sub(m.now))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Advance moves the clock forward and fires every timer that came due
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now

	remaining := m.timers[:0]
	var due []*manualTimer
	for _, t := range m.timers {
		if !t.deadline.After(now) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	m.timers = remaining
	m.mu.Unlock()

	for _, t := range due {
		t.c <- now
	}
}

func (m *ManualClock) remove(t *manualTimer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	clock    *ManualClock
	deadline time.Time
	c        chan time.Time
}

func (t *manualTimer) C() <-chan time.Time { return t.c }

func (t *manualTimer) Stop() bool {
	return t.clock.remove(t)
}
