package metrics

import (
	"fmt"

	"github.com/san-kum/gridreplay/internal/replay"
)

// PlayerStats is what one player holds at one turn.
type PlayerStats struct {
	Cells      int `json:"cells"`
	Strength   int `json:"strength"`
	Production int `json:"production"`
}

// TurnStats indexes players by owner id; entry 0 is the neutral territory.
type TurnStats struct {
	Turn    int           `json:"turn"`
	Players []PlayerStats `json:"players"`
}

// Alive counts players other than neutral that still own a cell.
func (t TurnStats) Alive() int {
	n := 0
	for owner := 1; owner < len(t.Players); owner++ {
		if t.Players[owner].Cells > 0 {
			n++
		}
	}
	return n
}

// Leader is the player with the most cells, ties going to the lower id.
// It returns 0 when no player owns anything.
func (t TurnStats) Leader() int {
	best, leader := 0, 0
	for owner := 1; owner < len(t.Players); owner++ {
		if t.Players[owner].Cells > best {
			best, leader = t.Players[owner].Cells, owner
		}
	}
	return leader
}

// TurnOf tallies a single turn.
func TurnOf(rec *replay.MatchRecord, turn int) TurnStats {
	ts := TurnStats{Turn: turn, Players: make([]PlayerStats, rec.NumPlayers+1)}
	for y, row := range rec.Frame(turn) {
		for x, c := range row {
			p := &ts.Players[c.Owner]
			p.Cells++
			p.Strength += c.Strength
			p.Production += rec.Productions[y][x]
		}
	}
	return ts
}

// Compute tallies every turn of the replay.
func Compute(rec *replay.MatchRecord) []TurnStats {
	out := make([]TurnStats, rec.NumFrames())
	for turn := range out {
		out[turn] = TurnOf(rec, turn)
	}
	return out
}

// Field selects one column of PlayerStats.
type Field int

const (
	Cells Field = iota
	Strength
	Production
)

func (f Field) String() string {
	switch f {
	case Cells:
		return "cells"
	case Strength:
		return "strength"
	case Production:
		return "production"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

func (f Field) of(p PlayerStats) int {
	switch f {
	case Strength:
		return p.Strength
	case Production:
		return p.Production
	}
	return p.Cells
}

// Series extracts one player's field over time. Unknown players yield zeros.
func Series(stats []TurnStats, player int, f Field) []float64 {
	out := make([]float64, len(stats))
	for i, ts := range stats {
		if player >= 0 && player < len(ts.Players) {
			out[i] = float64(f.of(ts.Players[player]))
		}
	}
	return out
}
