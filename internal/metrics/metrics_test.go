package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gridreplay/internal/replay"
)

// match is a 2x1 board over three turns. Player 1 takes the board, player 2 dies.
func match() *replay.MatchRecord {
	return &replay.MatchRecord{
		Width: 2, Height: 1, NumPlayers: 2,
		PlayerNames: []string{"one", "two"},
		Productions: [][]int{{3, 5}},
		Frames: []replay.Frame{
			{{{Owner: 1, Strength: 10}, {Owner: 2, Strength: 20}}},
			{{{Owner: 1, Strength: 30}, {Owner: 0, Strength: 0}}},
			{{{Owner: 1, Strength: 40}, {Owner: 1, Strength: 50}}},
		},
	}
}

func TestCompute(t *testing.T) {
	stats := Compute(match())
	if len(stats) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(stats))
	}

	first := stats[0]
	if first.Players[1] != (PlayerStats{Cells: 1, Strength: 10, Production: 3}) {
		t.Errorf("unexpected player 1 stats %+v", first.Players[1])
	}
	if first.Players[2] != (PlayerStats{Cells: 1, Strength: 20, Production: 5}) {
		t.Errorf("unexpected player 2 stats %+v", first.Players[2])
	}

	if stats[1].Players[0].Cells != 1 {
		t.Errorf("expected 1 neutral cell, got %d", stats[1].Players[0].Cells)
	}

	last := stats[2]
	if last.Players[1].Cells != 2 || last.Players[1].Strength != 90 || last.Players[1].Production != 8 {
		t.Errorf("unexpected final stats %+v", last.Players[1])
	}
}

func TestAliveAndLeader(t *testing.T) {
	stats := Compute(match())
	tests := []struct {
		turn, alive, leader int
	}{
		{0, 2, 1},
		{1, 1, 1},
		{2, 1, 1},
	}
	for _, tt := range tests {
		if got := stats[tt.turn].Alive(); got != tt.alive {
			t.Errorf("turn %d: expected %d alive, got %d", tt.turn, tt.alive, got)
		}
		if got := stats[tt.turn].Leader(); got != tt.leader {
			t.Errorf("turn %d: expected leader %d, got %d", tt.turn, tt.leader, got)
		}
	}

	empty := TurnStats{Players: make([]PlayerStats, 3)}
	if empty.Leader() != 0 {
		t.Errorf("expected no leader, got %d", empty.Leader())
	}
}

func TestSeries(t *testing.T) {
	stats := Compute(match())

	got := Series(stats, 1, Strength)
	want := []float64{10, 30, 90}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("turn %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	for _, v := range Series(stats, 9, Cells) {
		if v != 0 {
			t.Errorf("expected zeros for unknown player, got %v", v)
		}
	}
}

func TestSummarize(t *testing.T) {
	rec := match()
	values := Summarize(Compute(rec), Standard(rec)...)

	if math.Abs(values["p1_share"]-2.0/3.0) > 1e-9 {
		t.Errorf("expected p1 share 0.667, got %f", values["p1_share"])
	}
	if values["p2_peak_strength"] != 20 {
		t.Errorf("expected p2 peak 20, got %f", values["p2_peak_strength"])
	}
	if values["p1_last_turn"] != 2 || values["p2_last_turn"] != 0 {
		t.Errorf("unexpected survival p1=%f p2=%f", values["p1_last_turn"], values["p2_last_turn"])
	}
}

func TestSummarize_ResetsMetrics(t *testing.T) {
	rec := match()
	ms := Standard(rec)
	first := Summarize(Compute(rec), ms...)
	second := Summarize(Compute(rec), ms...)
	for name, v := range first {
		if second[name] != v {
			t.Errorf("%s: expected %f on second run, got %f", name, v, second[name])
		}
	}
}
