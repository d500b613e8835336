package playback

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gridreplay/internal/render"
	"github.com/san-kum/gridreplay/internal/replay"
)

// record builds a width x height replay with n frames. Cell (0,0) carries the
// turn number as its strength so tests can tell frames apart.
func record(n, width, height int) *replay.MatchRecord {
	rec := &replay.MatchRecord{
		Width: width, Height: height, NumPlayers: 2, PlayerNames: []string{"alpha", "beta"},
		Productions: make([][]int, height),
		Frames:      make([]replay.Frame, n),
	}
	for y := range rec.Productions {
		rec.Productions[y] = make([]int, width)
		for x := range rec.Productions[y] {
			rec.Productions[y][x] = x + y
		}
	}
	for t := range rec.Frames {
		frame := make(replay.Frame, height)
		for y := range frame {
			frame[y] = make([]replay.Cell, width)
		}
		frame[0][0] = replay.Cell{Owner: 1, Strength: t % 256}
		rec.Frames[t] = frame
	}
	return rec
}

type recordingSink struct{ lines []string }

func (s *recordingSink) SetStatus(text string) { s.lines = append(s.lines, text) }

func (s *recordingSink) last() string {
	if len(s.lines) == 0 {
		return "<none>"
	}
	return s.lines[len(s.lines)-1]
}

var _ = Describe("Controller", func() {
	var c *Controller

	BeforeEach(func() {
		c = New(record(25, 3, 2))
	})

	Describe("Navigate", func() {
		It("starts at turn zero", func() {
			Expect(c.Turn()).To(Equal(0))
			Expect(c.Title()).To(Equal("0 / 24"))
		})

		DescribeTable("keeps the turn in bounds",
			func(start, delta, want int, changed bool) {
				c.Navigate(start)
				Expect(c.Navigate(delta)).To(Equal(changed))
				Expect(c.Turn()).To(Equal(want))
				Expect(c.Turn()).To(BeNumerically(">=", 0))
				Expect(c.Turn()).To(BeNumerically("<", 25))
			},
			Entry("step forward", 0, 1, 1, true),
			Entry("step back at start", 0, -1, 0, false),
			Entry("page forward", 3, 10, 13, true),
			Entry("page back clamps", 3, -10, 0, true),
			Entry("page forward clamps", 20, 10, 24, true),
			Entry("jump to end", 5, 1000, 24, true),
			Entry("jump to start", 5, -1000, 0, true),
			Entry("huge positive delta", 5, JumpDelta, 24, true),
			Entry("huge negative delta", 5, -JumpDelta, 0, true),
			Entry("step forward at end", 24, 1, 24, false),
		)

		It("is idempotent for a zero delta", func() {
			c.Navigate(4)
			Expect(c.Navigate(0)).To(BeFalse())
			Expect(c.Turn()).To(Equal(4))
		})

		It("handles single-frame replays", func() {
			c = New(record(1, 1, 1))
			Expect(c.Navigate(1)).To(BeFalse())
			Expect(c.Navigate(-1000)).To(BeFalse())
			Expect(c.Title()).To(Equal("0 / 0"))
		})
	})

	Describe("display mode", func() {
		It("toggles between territory and production", func() {
			Expect(c.Mode()).To(Equal(Territory))
			c.ToggleDisplayMode()
			Expect(c.Mode()).To(Equal(Production))
			c.ToggleDisplayMode()
			Expect(c.Mode()).To(Equal(Territory))
		})

		It("accepts redundant sets", func() {
			Expect(c.SetDisplayMode(Territory)).To(Succeed())
			Expect(c.Mode()).To(Equal(Territory))
		})

		It("sets modes by name", func() {
			Expect(c.SetDisplayModeByName("Production")).To(Succeed())
			Expect(c.Mode()).To(Equal(Production))
		})

		It("rejects unknown modes without changing state", func() {
			err := c.SetDisplayModeByName("heatmap")
			Expect(err).To(MatchError(ErrUnknownMode))
			var cfgErr *ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Name).To(Equal("heatmap"))

			Expect(c.SetDisplayMode(DisplayMode(9))).To(MatchError(ErrUnknownMode))
			Expect(c.Mode()).To(Equal(Territory))
		})
	})

	Describe("toggles", func() {
		It("defaults to everything shown on a dark theme", func() {
			Expect(c.Toggles()).To(Equal(Toggles{ShowNeutrals: true, ShowStrength: true, DarkTheme: true}))
		})

		It("sets and flips known toggles", func() {
			Expect(c.SetToggle(ShowNeutrals, false)).To(Succeed())
			Expect(c.Toggles().ShowNeutrals).To(BeFalse())
			Expect(c.FlipToggle(DarkTheme)).To(Succeed())
			Expect(c.Toggles().DarkTheme).To(BeFalse())
			Expect(c.Params().DarkTheme).To(BeFalse())
		})

		It("rejects unknown toggles without changing state", func() {
			before := c.Toggles()
			Expect(c.SetToggle("show_fog", true)).To(MatchError(ErrUnknownToggle))
			Expect(c.FlipToggle("show_fog")).To(MatchError(ErrUnknownToggle))
			Expect(c.Toggles()).To(Equal(before))
		})
	})

	Describe("redraw tracking", func() {
		It("needs a first draw", func() {
			Expect(c.NeedsRedraw()).To(BeTrue())
		})

		It("settles after MarkRendered", func() {
			c.MarkRendered()
			Expect(c.NeedsRedraw()).To(BeFalse())
			Expect(c.NeedsRedraw()).To(BeFalse())
		})

		It("wakes up after navigation", func() {
			c.MarkRendered()
			c.Navigate(1)
			Expect(c.NeedsRedraw()).To(BeTrue())
		})

		It("does not wake up for a clamped no-op", func() {
			c.MarkRendered()
			c.Navigate(-1)
			Expect(c.NeedsRedraw()).To(BeFalse())
		})

		It("wakes up after a mode change", func() {
			c.MarkRendered()
			c.ToggleDisplayMode()
			Expect(c.NeedsRedraw()).To(BeTrue())
		})

		It("wakes up after a toggle change", func() {
			c.MarkRendered()
			Expect(c.SetToggle(ShowStrength, false)).To(Succeed())
			Expect(c.NeedsRedraw()).To(BeTrue())
		})

		It("ignores turn changes in production mode", func() {
			c.ToggleDisplayMode()
			c.MarkRendered()
			c.Navigate(5)
			Expect(c.NeedsRedraw()).To(BeFalse())
			Expect(c.Target().IsProduction()).To(BeTrue())
		})

		It("wakes up after a palette change", func() {
			c.MarkRendered()
			p := render.DefaultPalette
			p[1] = "#123456"
			c.SetPalette(p)
			Expect(c.NeedsRedraw()).To(BeTrue())
		})
	})

	Describe("snapshot", func() {
		It("returns the current turn's board", func() {
			c.Navigate(7)
			Expect(c.Snapshot()[0][0]).To(Equal(replay.Cell{Owner: 1, Strength: 7}))
		})
	})
})

var _ = Describe("Cursor inspection", func() {
	var (
		c    *Controller
		sink *recordingSink
	)

	BeforeEach(func() {
		sink = &recordingSink{}
		c = New(record(3, 3, 2), WithStatusSink(sink))
	})

	It("describes the cell under the cursor", func() {
		c.MoveCursor(0, 0)
		Expect(sink.last()).To(Equal("i: 0 [0,0] own: 1 st: 0 pr: 0"))
	})

	It("blanks the owner of neutral cells", func() {
		c.MoveCursor(2, 1)
		Expect(sink.last()).To(Equal("i: 5 [2,1] own:   st: 0 pr: 3"))
	})

	It("follows navigation", func() {
		c.MoveCursor(0, 0)
		c.Navigate(2)
		Expect(sink.last()).To(Equal("i: 0 [0,0] own: 1 st: 2 pr: 0"))
	})

	It("clears the status when the cursor leaves the board", func() {
		c.MoveCursor(1, 1)
		c.MoveCursor(3, 0)
		Expect(sink.last()).To(BeEmpty())
		_, _, ok := c.Cursor()
		Expect(ok).To(BeFalse())

		c.MoveCursor(-1, 0)
		Expect(sink.last()).To(BeEmpty())
	})

	It("reports no cell out of bounds", func() {
		_, ok := c.Inspect(0, 2)
		Expect(ok).To(BeFalse())
	})

	It("includes recorded moves", func() {
		rec := record(2, 2, 1)
		rec.Moves = [][][]replay.Direction{{{replay.North, replay.Still}}}
		c = New(rec, WithStatusSink(sink))

		c.MoveCursor(0, 0)
		Expect(sink.last()).To(HaveSuffix(" mv: north"))

		info, ok := c.Inspect(1, 0)
		Expect(ok).To(BeTrue())
		Expect(info.HasMove).To(BeTrue())
		Expect(info.Index).To(Equal(1))

		c.Navigate(1)
		Expect(sink.last()).NotTo(ContainSubstring("mv:"))
	})
})
