package ui

import (
	"fmt"
	"sync"
	"time"

	"snake-classic/game"
	"snake-classic/stats"
)

const pulseDuration = 300 * time.Millisecond

// Overlay is the banner shown over the field, if any
type Overlay struct {
	Title string
	Lines []string
}

// OverlayFor returns the banner for the snapshot's phase
func OverlayFor(s game.Snapshot) (Overlay, bool) {
	switch s.Phase {
	case game.Idle:
		return Overlay{Title: "SNAKE", Lines: []string{"Press an arrow key or WASD to start"}}, true
	case game.Paused:
		return Overlay{Title: "PAUSED", Lines: []string{"Press Space to resume"}}, true
	case game.GameOver, game.BoardFull:
		title := "GAME OVER"
		if s.Phase == game.BoardFull {
			title = "BOARD FULL"
		}
		lines := []string{fmt.Sprintf("Final score: %d", s.Score)}
		if s.NewHighScore {
			lines = append(lines, "New High Score!")
		}
		lines = append(lines, "Press Space to play again")
		return Overlay{Title: title, Lines: lines}, true
	default:
		return Overlay{}, false
	}
}

// StatusLine is the score text under the field
func StatusLine(s game.Snapshot) string {
	return fmt.Sprintf("Score: %d   High Score: %d   Level: %d", s.Score, s.HighScore, s.Level)
}

// HistoryLine summarises finished games
func HistoryLine(sum stats.Summary) string {
	return fmt.Sprintf("Games: %d   Avg: %.1f   Best: %d", sum.GamesPlayed, sum.AverageScore, sum.MaxScore)
}

// Pulse tracks the short level-up flash. It is a game.Listener.
type Pulse struct {
	mu    sync.Mutex
	until time.Time
	now   func() time.Time
}

func NewPulse() *Pulse {
	return &Pulse{now: time.Now}
}

func (p *Pulse) OnEvent(e game.Event) {
	if _, ok := e.(game.LevelUp); ok {
		p.mu.Lock()
		p.until = p.now().Add(pulseDuration)
		p.mu.Unlock()
	}
}

// Active reports whether the flash is still showing
func (p *Pulse) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now().Before(p.until)
}
