package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gridreplay/internal/render"
	"github.com/san-kum/gridreplay/internal/replay"
)

// SVG draws one turn the way the viewer does: background, cells in tier
// order with their insets and outlines, then the grid on top.
func SVG(rec *replay.MatchRecord, turn int, p render.Params) (string, error) {
	if !rec.ValidTurn(turn) {
		return "", fmt.Errorf("%w: %d not in [0, %d]", ErrTurnOutOfRange, turn, rec.LastTurn())
	}
	if p.CellSize <= 0 {
		p.CellSize = render.DefaultCellSize
	}
	width, height := render.BoardSize(rec, p)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke-width="1">
`, width, height, width, height, render.Background(p.DarkTheme)))

	for _, op := range render.DrawList(rec, turn, p) {
		r := op.Rect
		w, h := r.Width(), r.Height()
		if w <= 0 || h <= 0 {
			continue
		}
		stroke := "none"
		if op.Style.Outline != "" {
			stroke = string(op.Style.Outline)
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s"/>
`, r.X0, r.Y0, w, h, op.Style.Fill, stroke))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" d="`, render.GridLineColor(p.DarkTheme)))
	for x := 0; x <= rec.Width; x++ {
		px := float64(x*p.CellSize) + 0.5
		sb.WriteString(fmt.Sprintf("M%.1f,0 V%d ", px, height))
	}
	for y := 0; y <= rec.Height; y++ {
		py := float64(y*p.CellSize) + 0.5
		sb.WriteString(fmt.Sprintf("M0,%.1f H%d ", py, width))
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String(), nil
}
