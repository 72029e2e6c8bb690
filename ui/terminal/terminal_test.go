package terminal

import (
	"strings"
	"testing"

	"snake-classic/game"
	"snake-classic/game/types"
	"snake-classic/stats"
	"snake-classic/ui"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(60, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.SimulationScreen, y, width int) string {
	out := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		out = append(out, runeAt(screen, x, y))
	}
	return string(out)
}

func TestPaintField(t *testing.T) {
	screen := newScreen(t)
	r := NewRenderer(screen, stats.NewGameStats(), ui.NewPulse())

	r.Paint(game.Snapshot{
		Grid:    types.DefaultGrid(),
		Snake:   []types.Point{{X: 3, Y: 2}, {X: 2, Y: 2}},
		Food:    types.Point{X: 5, Y: 5},
		HasFood: true,
		Score:   10,
		Level:   1,
		Phase:   game.Running,
	})

	if got := runeAt(screen, 0, 0); got != tcell.RuneULCorner {
		t.Errorf("expected a corner, got %q", got)
	}
	// Cell (x, y) starts at column 1+2x, row 1+y
	if got := runeAt(screen, 7, 3); got != '█' {
		t.Errorf("expected head at column 7 row 3, got %q", got)
	}
	if got := runeAt(screen, 8, 3); got != '█' {
		t.Errorf("expected double width head, got %q", got)
	}
	if got := runeAt(screen, 11, 6); got != '●' {
		t.Errorf("expected food at column 11 row 6, got %q", got)
	}

	status := rowText(screen, 22, 40)
	if want := "Score: 10   High Score: 0   Level: 1"; status[:len(want)] != want {
		t.Errorf("unexpected status line %q", status)
	}
}

func TestPaintOverlay(t *testing.T) {
	screen := newScreen(t)
	r := NewRenderer(screen, nil, nil)

	r.Paint(game.Snapshot{
		Grid:  types.DefaultGrid(),
		Snake: []types.Point{{X: 10, Y: 10}},
		Phase: game.Paused,
	})

	found := false
	for y := 0; y < 22; y++ {
		if strings.Contains(rowText(screen, y, 42), "PAUSED") {
			found = true
		}
	}
	if !found {
		t.Error("pause banner not drawn")
	}
}

func TestDrawKeepsLatestFrame(t *testing.T) {
	r := NewRenderer(newScreen(t), nil, nil)

	r.Draw(game.Snapshot{Score: 1})
	r.Draw(game.Snapshot{Score: 2})

	select {
	case s := <-r.frames:
		if s.Score != 2 {
			t.Errorf("expected the newest frame, got score %d", s.Score)
		}
	default:
		t.Fatal("no frame queued")
	}
}
