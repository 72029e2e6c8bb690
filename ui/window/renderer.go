// Package window is the raylib frontend
package window

import (
	"context"
	"sync"

	"snake-classic/game"
	"snake-classic/game/types"
	"snake-classic/input"
	"snake-classic/stats"
	"snake-classic/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10 // Padding around game area
	hudHeight     = 70
)

// Renderer keeps the latest snapshot and draws it on the window thread.
// Draw only swaps the snapshot, so the game loop never waits on a frame.
type Renderer struct {
	mu     sync.Mutex
	latest game.Snapshot
	ready  bool

	stats *stats.GameStats
	pulse *ui.Pulse

	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer(history *stats.GameStats, pulse *ui.Pulse) *Renderer {
	return &Renderer{stats: history, pulse: pulse}
}

// Draw implements game.Renderer
func (r *Renderer) Draw(s game.Snapshot) {
	r.mu.Lock()
	r.latest = s
	r.ready = true
	r.mu.Unlock()
}

func (r *Renderer) snapshot() (game.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest, r.ready
}

// Run opens the window and pumps frames and input until the window closes or
// ctx is done. raylib must stay on the goroutine that called InitWindow, so
// call Run from main.
func (r *Renderer) Run(ctx context.Context, mapper *input.Mapper) {
	width := int32(types.TileCount*types.GridSize + borderPadding*2)
	height := int32(types.TileCount*types.GridSize + borderPadding*3 + hudHeight)

	rl.InitWindow(width, height, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetExitKey(0) // Escape is a game key
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		for _, k := range PollKeys() {
			mapper.Key(k)
		}

		s, ok := r.snapshot()

		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			p := rl.GetMousePosition()
			mapper.TouchStart(input.Vec{X: float64(p.X), Y: float64(p.Y)})
		}
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			p := rl.GetMousePosition()
			mapper.TouchEnd(input.Vec{X: float64(p.X), Y: float64(p.Y)}, s.Phase)
		}

		if ok {
			r.frame(s)
		}
	}
	mapper.Key(input.KeyEscape)
}

func (r *Renderer) updateDimensions(grid types.Grid) {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	availableWidth := r.screenWidth - (borderPadding * 2)
	availableHeight := r.screenHeight - (borderPadding * 3) - hudHeight

	cellW := availableWidth / int32(grid.Width)
	cellH := availableHeight / int32(grid.Height)
	r.cellSize = min(cellW, cellH)
	if r.cellSize < 1 {
		r.cellSize = 1
	}

	r.totalGridWidth = r.cellSize * int32(grid.Width)
	r.totalGridHeight = r.cellSize * int32(grid.Height)

	// Centre horizontally, keep the field at the top
	r.offsetX = (r.screenWidth - r.totalGridWidth) / 2
	r.offsetY = borderPadding
}

func (r *Renderer) frame(s game.Snapshot) {
	r.updateDimensions(s.Grid)

	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(toColor(ui.Background))

	border := toColor(ui.GridColor)
	if r.pulse != nil && r.pulse.Active() {
		border = toColor(ui.AccentTeal)
	}
	rl.DrawRectangleLines(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, border)

	r.drawGrid(s.Grid)
	r.drawSnake(s.Snake)
	if s.HasFood {
		r.drawFood(s.Food)
	}
	r.drawHUD(s)

	if o, ok := ui.OverlayFor(s); ok {
		r.drawOverlay(o)
	}
}

func (r *Renderer) drawGrid(grid types.Grid) {
	c := rl.Fade(rl.White, 0.1)
	for i := 0; i <= grid.Width; i++ {
		x := r.offsetX + int32(i)*r.cellSize
		rl.DrawLine(x, r.offsetY, x, r.offsetY+r.totalGridHeight, c)
	}
	for i := 0; i <= grid.Height; i++ {
		y := r.offsetY + int32(i)*r.cellSize
		rl.DrawLine(r.offsetX, y, r.offsetX+r.totalGridWidth, y, c)
	}
}

func (r *Renderer) drawSnake(body []types.Point) {
	inset := r.cellSize / 10
	shine := r.cellSize / 5
	for i, p := range body {
		x := r.offsetX + int32(p.X)*r.cellSize
		y := r.offsetY + int32(p.Y)*r.cellSize
		rl.DrawRectangle(x+inset, y+inset, r.cellSize-2*inset, r.cellSize-2*inset, toColor(ui.SegmentColor(i)))

		// Shine on each segment
		rl.DrawRectangle(x+shine, y+shine, r.cellSize-3*shine, r.cellSize-3*shine, rl.Fade(rl.White, 0.3))
	}
}

func (r *Renderer) drawFood(p types.Point) {
	half := float32(r.cellSize) / 2
	cx := r.offsetX + int32(p.X)*r.cellSize + int32(half)
	cy := r.offsetY + int32(p.Y)*r.cellSize + int32(half)
	rl.DrawCircle(cx, cy, half-2, toColor(ui.FoodColor))
	rl.DrawCircle(cx-3, cy-3, 3, rl.Fade(rl.White, 0.6))
}

func (r *Renderer) drawHUD(s game.Snapshot) {
	fontSize := int32(20)
	y := r.offsetY + r.totalGridHeight + borderPadding
	rl.DrawText(ui.StatusLine(s), r.offsetX, y, fontSize, toColor(ui.TextColor))

	if r.stats != nil {
		rl.DrawText(ui.HistoryLine(r.stats.Summary()), r.offsetX, y+fontSize+8, fontSize-4, rl.Gray)
	}
}

func (r *Renderer) drawOverlay(o ui.Overlay) {
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, rl.Fade(rl.Black, 0.6))

	titleSize := int32(32)
	lineSize := int32(18)
	y := r.offsetY + r.totalGridHeight/2 - titleSize - lineSize

	tw := rl.MeasureText(o.Title, titleSize)
	rl.DrawText(o.Title, r.offsetX+(r.totalGridWidth-tw)/2, y, titleSize, toColor(ui.HeadColor))
	y += titleSize + 10

	for _, line := range o.Lines {
		lw := rl.MeasureText(line, lineSize)
		rl.DrawText(line, r.offsetX+(r.totalGridWidth-lw)/2, y, lineSize, toColor(ui.TextColor))
		y += lineSize + 6
	}
}

func toColor(c ui.RGB) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
