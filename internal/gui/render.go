package gui

import (
	"github.com/charmbracelet/lipgloss"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/gridreplay/internal/logging"
	"github.com/san-kum/gridreplay/internal/render"
	"github.com/san-kum/gridreplay/internal/replay"
)

func toColor(c lipgloss.Color, log *logging.Logger) rl.Color {
	r, g, b, err := render.RGB(c)
	if err != nil {
		log.Warn("bad color", "color", string(c), "error", err)
		return rl.Magenta
	}
	return rl.NewColor(r, g, b, 255)
}

// drawBoard paints one full board: background, cells in tier order, then the grid.
func drawBoard(rec *replay.MatchRecord, turn int, p render.Params, log *logging.Logger) {
	if p.CellSize <= 0 {
		p.CellSize = render.DefaultCellSize
	}
	rl.ClearBackground(toColor(render.Background(p.DarkTheme), log))

	for _, op := range render.DrawList(rec, turn, p) {
		r := op.Rect
		w, h := int32(r.Width()), int32(r.Height())
		if w <= 0 || h <= 0 {
			continue
		}
		rl.DrawRectangle(int32(r.X0), int32(r.Y0), w, h, toColor(op.Style.Fill, log))
		if op.Style.Outline != "" {
			rl.DrawRectangleLines(int32(r.X0), int32(r.Y0), w, h, toColor(op.Style.Outline, log))
		}
	}

	grid := toColor(render.GridLineColor(p.DarkTheme), log)
	bw, bh := render.BoardSize(rec, p)
	for x := 0; x <= rec.Width; x++ {
		px := int32(x * p.CellSize)
		rl.DrawLine(px, 0, px, int32(bh), grid)
	}
	for y := 0; y <= rec.Height; y++ {
		py := int32(y * p.CellSize)
		rl.DrawLine(0, py, int32(bw), py, grid)
	}
}
