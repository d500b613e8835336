package playback

import (
	"fmt"
	"strings"

	"github.com/san-kum/gridreplay/internal/logging"
	"github.com/san-kum/gridreplay/internal/render"
	"github.com/san-kum/gridreplay/internal/replay"
)

// DisplayMode selects between the territory view and the production heat map.
type DisplayMode = render.Mode

const (
	Territory  = render.Territory
	Production = render.Production
)

// ParseDisplayMode accepts "territory" or "production".
func ParseDisplayMode(name string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "territory":
		return Territory, nil
	case "production":
		return Production, nil
	}
	return Territory, &ConfigurationError{Kind: "mode", Name: name, Wrapped: ErrUnknownMode}
}

// Toggle names.
const (
	ShowNeutrals = "show_neutrals"
	ShowStrength = "show_strength"
	DarkTheme    = "dark_theme"
)

// ToggleNames lists every toggle a controller accepts.
func ToggleNames() []string {
	return []string{ShowNeutrals, ShowStrength, DarkTheme}
}

// Toggles are the independent display flags.
type Toggles struct {
	ShowNeutrals bool
	ShowStrength bool
	DarkTheme    bool
}

// DefaultToggles shows everything on a dark background.
func DefaultToggles() Toggles {
	return Toggles{ShowNeutrals: true, ShowStrength: true, DarkTheme: true}
}

func (t *Toggles) field(name string) (*bool, bool) {
	switch name {
	case ShowNeutrals:
		return &t.ShowNeutrals, true
	case ShowStrength:
		return &t.ShowStrength, true
	case DarkTheme:
		return &t.DarkTheme, true
	}
	return nil, false
}

// JumpDelta moves to the first or last turn of any replay.
const JumpDelta = 1 << 30

// Navigation steps bound to the host's keys.
const (
	StepDelta = 1
	PageDelta = 10
)

// StatusSink receives the cursor status line. An empty string clears it.
type StatusSink interface {
	SetStatus(text string)
}

// StatusFunc adapts a function to StatusSink.
type StatusFunc func(text string)

func (f StatusFunc) SetStatus(text string) { f(text) }

type discardStatus struct{}

func (discardStatus) SetStatus(string) {}

// Option configures a Controller.
type Option func(*Controller)

func WithStatusSink(s StatusSink) Option {
	return func(c *Controller) { c.status = s }
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func WithToggles(t Toggles) Option {
	return func(c *Controller) { c.toggles = t }
}

func WithMode(m DisplayMode) Option {
	return func(c *Controller) {
		if m.Valid() {
			c.mode = m
		}
	}
}

// WithRenderParams sets the palette and cell size passed to the mapper.
func WithRenderParams(p render.Params) Option {
	return func(c *Controller) {
		c.palette = p.Palette
		c.cellSize = p.CellSize
	}
}

// Controller holds the mutable state of one viewing session.
type Controller struct {
	rec      *replay.MatchRecord
	turn     int
	mode     DisplayMode
	toggles  Toggles
	last     RenderKey
	palette  render.Palette
	cellSize int
	status   StatusSink
	log      *logging.Logger

	cursorX, cursorY int
	hasCursor        bool
}

// New starts a session at turn 0.
func New(rec *replay.MatchRecord, opts ...Option) *Controller {
	c := &Controller{
		rec:      rec,
		mode:     Territory,
		toggles:  DefaultToggles(),
		last:     Unrendered(),
		palette:  render.DefaultPalette,
		cellSize: render.DefaultCellSize,
		status:   discardStatus{},
		log:      logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Record() *replay.MatchRecord { return c.rec }
func (c *Controller) Turn() int                   { return c.turn }
func (c *Controller) Mode() DisplayMode           { return c.mode }
func (c *Controller) Toggles() Toggles            { return c.toggles }

// Navigate moves by delta, clamped to the replay. It reports whether the turn changed.
func (c *Controller) Navigate(delta int) bool {
	prev := c.turn
	next := prev + delta
	// overflow on huge deltas
	if delta > 0 && next < prev {
		next = c.rec.LastTurn()
	} else if delta < 0 && next > prev {
		next = 0
	}
	if next < 0 {
		next = 0
	}
	if last := c.rec.LastTurn(); next > last {
		next = last
	}
	c.turn = next
	if c.turn != prev {
		c.refreshStatus()
		return true
	}
	return false
}

// SetDisplayMode switches views; setting the current mode is a no-op.
func (c *Controller) SetDisplayMode(m DisplayMode) error {
	if !m.Valid() {
		c.log.Warn("rejected display mode", "mode", int(m))
		return &ConfigurationError{Kind: "mode", Name: m.String(), Wrapped: ErrUnknownMode}
	}
	if c.mode != m {
		c.mode = m
		c.log.Debug("display mode changed", "mode", m.String(), "turn", c.turn)
	}
	return nil
}

func (c *Controller) SetDisplayModeByName(name string) error {
	m, err := ParseDisplayMode(name)
	if err != nil {
		c.log.Warn("rejected display mode", "mode", name)
		return err
	}
	return c.SetDisplayMode(m)
}

func (c *Controller) ToggleDisplayMode() {
	if c.mode == Production {
		_ = c.SetDisplayMode(Territory)
	} else {
		_ = c.SetDisplayMode(Production)
	}
}

// SetToggle sets one display flag by name.
func (c *Controller) SetToggle(name string, value bool) error {
	f, ok := c.toggles.field(name)
	if !ok {
		c.log.Warn("rejected toggle", "toggle", name)
		return &ConfigurationError{Kind: "toggle", Name: name, Wrapped: ErrUnknownToggle}
	}
	if *f != value {
		*f = value
		c.log.Debug("toggle changed", "toggle", name, "value", value)
	}
	return nil
}

// FlipToggle inverts one display flag by name.
func (c *Controller) FlipToggle(name string) error {
	f, ok := c.toggles.field(name)
	if !ok {
		c.log.Warn("rejected toggle", "toggle", name)
		return &ConfigurationError{Kind: "toggle", Name: name, Wrapped: ErrUnknownToggle}
	}
	return c.SetToggle(name, !*f)
}

// Params is the mapper input for the current state.
func (c *Controller) Params() render.Params {
	return render.Params{
		Mode:         c.mode,
		ShowNeutrals: c.toggles.ShowNeutrals,
		ShowStrength: c.toggles.ShowStrength,
		DarkTheme:    c.toggles.DarkTheme,
		CellSize:     c.cellSize,
		Palette:      c.palette,
	}
}

// SetPalette replaces the owner colors, e.g. after a config reload.
func (c *Controller) SetPalette(p render.Palette) {
	if c.palette != p {
		c.palette = p
		c.last = Unrendered()
	}
}

// Snapshot is the board at the current turn. Callers must not modify it.
func (c *Controller) Snapshot() replay.Frame {
	return c.rec.Frame(c.turn)
}

// Title follows "{turn} / {last turn}".
func (c *Controller) Title() string {
	return fmt.Sprintf("%d / %d", c.turn, c.rec.LastTurn())
}

// Target is the render key the current state calls for.
func (c *Controller) Target() RenderKey {
	if c.mode == Production {
		return productionKey(c.toggles)
	}
	return territoryKey(c.turn, c.toggles)
}

// NeedsRedraw reports whether the target differs from what was last drawn.
func (c *Controller) NeedsRedraw() bool {
	return c.last != c.Target()
}

// MarkRendered records the current target as drawn.
func (c *Controller) MarkRendered() {
	c.last = c.Target()
}

// Invalidate forces the next NeedsRedraw to report true.
func (c *Controller) Invalidate() {
	c.last = Unrendered()
}
