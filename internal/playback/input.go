package playback

import "fmt"

// Key is a logical playback key, independent of the host's key codes.
type Key int

const (
	KeyStepBack Key = iota
	KeyStepForward
	KeyPageBack
	KeyPageForward
	KeyJumpStart
	KeyJumpEnd
	KeyToggleProduction
	numKeys
)

func (k Key) String() string {
	switch k {
	case KeyStepBack:
		return "step_back"
	case KeyStepForward:
		return "step_forward"
	case KeyPageBack:
		return "page_back"
	case KeyPageForward:
		return "page_forward"
	case KeyJumpStart:
		return "jump_start"
	case KeyJumpEnd:
		return "jump_end"
	case KeyToggleProduction:
		return "toggle_production"
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// latching keys act once per physical press.
func (k Key) latching() bool {
	return k == KeyStepBack || k == KeyStepForward || k == KeyToggleProduction
}

// navigation in tick priority order; at most one applies per tick.
var navigation = []struct {
	key   Key
	delta int
}{
	{KeyStepBack, -StepDelta},
	{KeyStepForward, StepDelta},
	{KeyPageBack, -PageDelta},
	{KeyPageForward, PageDelta},
	{KeyJumpStart, -JumpDelta},
	{KeyJumpEnd, JumpDelta},
}

// Input is the set of held keys plus a one-shot latch per latching key.
type Input struct {
	held    [numKeys]bool
	latched [numKeys]bool
}

// Press marks k held. A press on a key that is already held is an
// auto-repeat and does not latch again.
func (in *Input) Press(k Key) {
	if k < 0 || k >= numKeys || in.held[k] {
		return
	}
	in.held[k] = true
	if k.latching() {
		in.latched[k] = true
	}
}

func (in *Input) Release(k Key) {
	if k < 0 || k >= numKeys {
		return
	}
	in.held[k] = false
}

// Sync applies a polled key level, for hosts that can ask whether a key is down.
func (in *Input) Sync(k Key, down bool) {
	if down {
		in.Press(k)
	} else {
		in.Release(k)
	}
}

func (in *Input) Held(k Key) bool {
	return k >= 0 && k < numKeys && in.held[k]
}

// ReleaseAll drops every held key, e.g. when the window loses focus.
func (in *Input) ReleaseAll() {
	in.held = [numKeys]bool{}
}

// TickResult reports what a tick changed.
type TickResult struct {
	Navigated   bool
	ToggledMode bool
}

func (r TickResult) Changed() bool { return r.Navigated || r.ToggledMode }

// Tick samples the keys once. Latching keys fire from their latch, so a tap
// shorter than a tick still counts; other keys fire while held. Latches are
// cleared every tick regardless of held state.
func (in *Input) Tick(c *Controller) TickResult {
	var res TickResult

	for _, nav := range navigation {
		active := in.held[nav.key]
		if nav.key.latching() {
			active = in.latched[nav.key]
		}
		if active {
			res.Navigated = c.Navigate(nav.delta)
			break
		}
	}

	if in.latched[KeyToggleProduction] {
		c.ToggleDisplayMode()
		res.ToggledMode = true
	}

	in.latched = [numKeys]bool{}
	return res
}
