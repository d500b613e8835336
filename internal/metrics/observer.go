package metrics

import (
	"fmt"

	"github.com/san-kum/gridreplay/internal/replay"
)

// Metric accumulates a single number while a replay is walked turn by turn.
type Metric interface {
	Name() string
	Observe(ts TurnStats)
	Value() float64
	Reset()
}

// TerritoryShare is a player's mean fraction of the board over all turns.
type TerritoryShare struct {
	name    string
	player  int
	area    int
	samples int
	total   float64
}

func NewTerritoryShare(player, area int) *TerritoryShare {
	return &TerritoryShare{name: fmt.Sprintf("p%d_share", player), player: player, area: area}
}

func (m *TerritoryShare) Name() string { return m.name }

func (m *TerritoryShare) Observe(ts TurnStats) {
	if m.area <= 0 || m.player >= len(ts.Players) {
		return
	}
	m.total += float64(ts.Players[m.player].Cells) / float64(m.area)
	m.samples++
}

func (m *TerritoryShare) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *TerritoryShare) Reset() {
	m.total = 0
	m.samples = 0
}

// PeakStrength is the largest total strength a player held on any turn.
type PeakStrength struct {
	name   string
	player int
	peak   int
}

func NewPeakStrength(player int) *PeakStrength {
	return &PeakStrength{name: fmt.Sprintf("p%d_peak_strength", player), player: player}
}

func (m *PeakStrength) Name() string { return m.name }

func (m *PeakStrength) Observe(ts TurnStats) {
	if m.player < len(ts.Players) && ts.Players[m.player].Strength > m.peak {
		m.peak = ts.Players[m.player].Strength
	}
}

func (m *PeakStrength) Value() float64 { return float64(m.peak) }

func (m *PeakStrength) Reset() { m.peak = 0 }

// Survival is the last turn on which a player still owned a cell, or -1.
type Survival struct {
	name   string
	player int
	last   int
}

func NewSurvival(player int) *Survival {
	return &Survival{name: fmt.Sprintf("p%d_last_turn", player), player: player, last: -1}
}

func (m *Survival) Name() string { return m.name }

func (m *Survival) Observe(ts TurnStats) {
	if m.player < len(ts.Players) && ts.Players[m.player].Cells > 0 {
		m.last = ts.Turn
	}
}

func (m *Survival) Value() float64 { return float64(m.last) }

func (m *Survival) Reset() { m.last = -1 }

// Standard returns the per-player metrics reported by info and stored with
// exports, where they cover turns up to the exported one.
func Standard(rec *replay.MatchRecord) []Metric {
	area := rec.Width * rec.Height
	var ms []Metric
	for p := 1; p <= rec.NumPlayers; p++ {
		ms = append(ms, NewTerritoryShare(p, area), NewPeakStrength(p), NewSurvival(p))
	}
	return ms
}

// Summarize feeds every turn to ms and collects their values by name.
func Summarize(stats []TurnStats, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for _, ts := range stats {
		for _, m := range ms {
			m.Observe(ts)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
