package ui

import (
	"testing"
	"time"

	"snake-classic/game"
	"snake-classic/stats"
)

func TestHSL(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    RGB
	}{
		{0, 1, 0.5, RGB{255, 0, 0}},
		{120, 1, 0.5, RGB{0, 255, 0}},
		{240, 1, 0.5, RGB{0, 0, 255}},
		{0, 0, 1, RGB{255, 255, 255}},
		{0, 0, 0, RGB{0, 0, 0}},
		{360, 1, 0.5, RGB{255, 0, 0}},
	}
	for _, tt := range tests {
		if got := HSL(tt.h, tt.s, tt.l); got != tt.want {
			t.Errorf("HSL(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
		}
	}
}

func TestSegmentColor(t *testing.T) {
	if SegmentColor(0) != HeadColor {
		t.Error("head is not the head colour")
	}
	if SegmentColor(1) == SegmentColor(10) {
		t.Error("body does not fade")
	}
	// Lightness bottoms out at 20%
	if SegmentColor(40) != HSL(250, 0.6, 0.2) {
		t.Errorf("unexpected colour for index 40: %v", SegmentColor(40))
	}
}

func TestOverlayFor(t *testing.T) {
	tests := []struct {
		name  string
		snap  game.Snapshot
		ok    bool
		title string
		lines []string
	}{
		{"idle", game.Snapshot{Phase: game.Idle}, true, "SNAKE", []string{"Press an arrow key or WASD to start"}},
		{"running", game.Snapshot{Phase: game.Running}, false, "", nil},
		{"paused", game.Snapshot{Phase: game.Paused}, true, "PAUSED", []string{"Press Space to resume"}},
		{
			"game over", game.Snapshot{Phase: game.GameOver, Score: 30}, true, "GAME OVER",
			[]string{"Final score: 30", "Press Space to play again"},
		},
		{
			"new high score", game.Snapshot{Phase: game.GameOver, Score: 90, NewHighScore: true}, true, "GAME OVER",
			[]string{"Final score: 90", "New High Score!", "Press Space to play again"},
		},
		{
			"board full", game.Snapshot{Phase: game.BoardFull, Score: 4000}, true, "BOARD FULL",
			[]string{"Final score: 4000", "Press Space to play again"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, ok := OverlayFor(tt.snap)
			if ok != tt.ok || o.Title != tt.title {
				t.Fatalf("got %q %v, want %q %v", o.Title, ok, tt.title, tt.ok)
			}
			if len(o.Lines) != len(tt.lines) {
				t.Fatalf("got lines %q, want %q", o.Lines, tt.lines)
			}
			for i := range o.Lines {
				if o.Lines[i] != tt.lines[i] {
					t.Errorf("line %d: got %q, want %q", i, o.Lines[i], tt.lines[i])
				}
			}
		})
	}
}

func TestStatusAndHistoryLines(t *testing.T) {
	got := StatusLine(game.Snapshot{Score: 60, HighScore: 120, Level: 2})
	if want := "Score: 60   High Score: 120   Level: 2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = HistoryLine(stats.Summary{GamesPlayed: 3, AverageScore: 23.333, MaxScore: 40})
	if want := "Games: 3   Avg: 23.3   Best: 40"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPulse(t *testing.T) {
	p := NewPulse()
	now := time.Unix(100, 0)
	p.now = func() time.Time { return now }

	if p.Active() {
		t.Error("active before any level up")
	}
	p.OnEvent(game.FoodEaten{Score: 10})
	if p.Active() {
		t.Error("food should not pulse")
	}

	p.OnEvent(game.LevelUp{Level: 2})
	if !p.Active() {
		t.Error("not active after level up")
	}
	now = now.Add(pulseDuration)
	if p.Active() {
		t.Error("still active after the pulse ran out")
	}
}
