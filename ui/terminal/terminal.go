// Package terminal is the tcell frontend. Every field cell is two terminal
// columns wide so the board looks square.
package terminal

import (
	"context"

	"snake-classic/game"
	"snake-classic/game/types"
	"snake-classic/input"
	"snake-classic/stats"
	"snake-classic/ui"

	"github.com/gdamore/tcell/v2"
)

const cellWidth = 2

// Renderer draws snapshots on a tcell screen. Draw hands the snapshot to a
// one-slot mailbox; a stale frame still waiting is replaced.
type Renderer struct {
	screen tcell.Screen
	frames chan game.Snapshot
	stats  *stats.GameStats
	pulse  *ui.Pulse
}

func NewRenderer(screen tcell.Screen, history *stats.GameStats, pulse *ui.Pulse) *Renderer {
	return &Renderer{
		screen: screen,
		frames: make(chan game.Snapshot, 1),
		stats:  history,
		pulse:  pulse,
	}
}

// Draw implements game.Renderer
func (r *Renderer) Draw(s game.Snapshot) {
	for {
		select {
		case r.frames <- s:
			return
		default:
		}
		select {
		case <-r.frames:
		default:
		}
	}
}

// Run reads keys and paints frames until ctx is done. The screen must be
// initialised; Run does not finalise it.
func (r *Renderer) Run(ctx context.Context, mapper *input.Mapper) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go r.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if k, ok := input.FromTcell(ev); ok {
					mapper.Key(k)
				}
			case *tcell.EventResize:
				r.screen.Sync()
			}

		case s := <-r.frames:
			r.Paint(s)
		}
	}
}

// Paint draws one snapshot and shows it
func (r *Renderer) Paint(s game.Snapshot) {
	r.screen.Clear()

	bg := style(ui.TextColor, ui.Background)
	border := style(ui.GridColor, ui.Background)
	if r.pulse != nil && r.pulse.Active() {
		border = style(ui.AccentTeal, ui.Background)
	}

	w := s.Grid.Width*cellWidth + 2
	h := s.Grid.Height + 2

	// Frame
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, 0, tcell.RuneHLine, nil, border)
		r.screen.SetContent(x, h-1, tcell.RuneHLine, nil, border)
	}
	for y := 0; y < h; y++ {
		r.screen.SetContent(0, y, tcell.RuneVLine, nil, border)
		r.screen.SetContent(w-1, y, tcell.RuneVLine, nil, border)
	}
	r.screen.SetContent(0, 0, tcell.RuneULCorner, nil, border)
	r.screen.SetContent(w-1, 0, tcell.RuneURCorner, nil, border)
	r.screen.SetContent(0, h-1, tcell.RuneLLCorner, nil, border)
	r.screen.SetContent(w-1, h-1, tcell.RuneLRCorner, nil, border)

	for y := 0; y < s.Grid.Height; y++ {
		for x := 0; x < s.Grid.Width; x++ {
			r.cell(types.Point{X: x, Y: y}, ' ', bg)
		}
	}

	if s.HasFood {
		r.cell(s.Food, '●', style(ui.FoodColor, ui.Background))
	}
	for i := len(s.Snake) - 1; i >= 0; i-- {
		c := ui.SegmentColor(i)
		r.cell(s.Snake[i], '█', style(c, ui.Background))
	}

	r.text(0, h, ui.StatusLine(s), bg)
	if r.stats != nil {
		r.text(0, h+1, ui.HistoryLine(r.stats.Summary()), style(ui.GridColor, ui.Background))
	}

	if o, ok := ui.OverlayFor(s); ok {
		lines := append([]string{o.Title}, o.Lines...)
		top := h/2 - len(lines)/2
		for i, line := range lines {
			st := bg
			if i == 0 {
				st = style(ui.HeadColor, ui.Background).Bold(true)
			}
			r.text((w-len([]rune(line)))/2, top+i, line, st)
		}
	}

	r.screen.Show()
}

func (r *Renderer) cell(p types.Point, ch rune, st tcell.Style) {
	x := 1 + p.X*cellWidth
	y := 1 + p.Y
	for i := 0; i < cellWidth; i++ {
		r.screen.SetContent(x+i, y, ch, nil, st)
	}
}

func (r *Renderer) text(x, y int, s string, st tcell.Style) {
	if x < 0 {
		x = 0
	}
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, st)
		x++
	}
}

func style(fg, bg ui.RGB) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
}
