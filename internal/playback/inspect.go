package playback

import (
	"fmt"
	"strconv"

	"github.com/san-kum/gridreplay/internal/replay"
)

// CellInfo describes the cell under the cursor at the current turn.
type CellInfo struct {
	Index      int
	X, Y       int
	Owner      int
	Strength   int
	Production int
	Move       replay.Direction
	HasMove    bool
}

// Status formats the info the way the status bar shows it.
func (i CellInfo) Status() string {
	owner := " "
	if i.Owner != 0 {
		owner = strconv.Itoa(i.Owner)
	}
	s := fmt.Sprintf("i: %d [%d,%d] own: %s st: %d pr: %d", i.Index, i.X, i.Y, owner, i.Strength, i.Production)
	if i.HasMove {
		s += " mv: " + i.Move.String()
	}
	return s
}

// Inspect reads (x, y) at the current turn. Out-of-bounds coordinates select nothing.
func (c *Controller) Inspect(x, y int) (CellInfo, bool) {
	if !c.rec.InBounds(x, y) {
		return CellInfo{}, false
	}
	cell := c.rec.Cell(c.turn, x, y)
	info := CellInfo{
		Index:      c.rec.Index(x, y),
		X:          x,
		Y:          y,
		Owner:      cell.Owner,
		Strength:   cell.Strength,
		Production: c.rec.Production(x, y),
	}
	info.Move, info.HasMove = c.rec.Move(c.turn, x, y)
	return info, true
}

// MoveCursor selects (x, y) and publishes its status. Leaving the board clears it.
func (c *Controller) MoveCursor(x, y int) {
	if !c.rec.InBounds(x, y) {
		c.ClearCursor()
		return
	}
	c.cursorX, c.cursorY, c.hasCursor = x, y, true
	c.refreshStatus()
}

// ClearCursor deselects and clears the status line.
func (c *Controller) ClearCursor() {
	c.hasCursor = false
	c.status.SetStatus("")
}

// Cursor returns the selected cell, if any.
func (c *Controller) Cursor() (x, y int, ok bool) {
	return c.cursorX, c.cursorY, c.hasCursor
}

func (c *Controller) refreshStatus() {
	if !c.hasCursor {
		return
	}
	info, ok := c.Inspect(c.cursorX, c.cursorY)
	if !ok {
		c.ClearCursor()
		return
	}
	c.status.SetStatus(info.Status())
}
