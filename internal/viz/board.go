package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gridreplay/internal/render"
	"github.com/san-kum/gridreplay/internal/replay"
)

// cellWidth is the number of terminal columns per board cell.
const cellWidth = 2

// board is one rendered turn: a styled two-column glyph per cell.
// Hidden cells keep an empty string and draw as background.
type board struct {
	width, height int
	cells         [][]string
	background    lipgloss.Style
	grid          lipgloss.Color
}

// glyph picks a block by how far the cell is inset, so strength reads as density.
func glyph(s render.Style, p render.Params) string {
	switch {
	case s.Inset <= 0:
		return "██"
	case s.Inset >= p.DotInset():
		return "··"
	case s.Inset <= p.DotInset()/3:
		return "▓▓"
	default:
		return "▒▒"
	}
}

func cellStyle(s render.Style, p render.Params) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(s.Fill).Background(render.Background(p.DarkTheme))
	if s.Outline == render.White {
		st = st.Background(render.White).Bold(true)
	}
	return st
}

// renderBoard draws ops in list order, so later tiers win.
func renderBoard(rec *replay.MatchRecord, turn int, p render.Params) *board {
	b := &board{
		width:      rec.Width,
		height:     rec.Height,
		cells:      make([][]string, rec.Height),
		background: lipgloss.NewStyle().Background(render.Background(p.DarkTheme)),
		grid:       render.GridLineColor(p.DarkTheme),
	}
	for y := range b.cells {
		b.cells[y] = make([]string, rec.Width)
	}
	for _, op := range render.DrawList(rec, turn, p) {
		g := glyph(op.Style, p)
		if p.Mode == render.Production {
			g = "██"
		}
		b.cells[op.Y][op.X] = cellStyle(op.Style, p).Render(g)
	}
	return b
}

// View joins the rows, highlighting the cursor cell when there is one.
func (b *board) View(cursorX, cursorY int, hasCursor bool, cursor lipgloss.Style) string {
	empty := b.background.Render(strings.Repeat(" ", cellWidth))
	rows := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		var sb strings.Builder
		for x := 0; x < b.width; x++ {
			cell := b.cells[y][x]
			if cell == "" {
				cell = empty
			}
			if hasCursor && x == cursorX && y == cursorY {
				cell = cursor.Render("[]")
			}
			sb.WriteString(cell)
		}
		rows[y] = sb.String()
	}
	frame := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(b.grid)
	return frame.Render(strings.Join(rows, "\n"))
}

// cellAt maps a terminal position inside the board frame to a cell.
// The frame adds one column and one row before the first cell.
func cellAt(col, row, left, top int) (x, y int) {
	col -= left + 1
	row -= top + 1
	if col < 0 {
		return -1, row
	}
	return col / cellWidth, row
}
