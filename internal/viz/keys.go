package viz

import (
	"time"

	"github.com/san-kum/gridreplay/internal/playback"
)

// Auto-repeat messages arrive faster than anyone taps a key.
const repeatGap = 100 * time.Millisecond

// A repeating key is released once it misses this many repeat intervals.
const quietRepeats = 3

type keyState struct {
	last      time.Time
	gap       time.Duration // before the latest message; 0 for the first
	repeating bool
	interval  time.Duration
}

// keyTracker turns the terminal's key messages into press and release
// edges. Terminals report no key-up, so a message on a held key is either
// an auto-repeat or a new tap, told apart by timing:
//   - sooner than repeatGap: auto-repeat
//   - sooner than the auto-repeat delay, or any slower gap once repeats
//     have started: a new press
//   - otherwise: the first auto-repeat
//
// The delay starts at the configured estimate and is relearned from the gap
// in front of each repeat train.
type keyTracker struct {
	states  map[playback.Key]*keyState
	delay   time.Duration
	release time.Duration
}

func newKeyTracker(delay, release time.Duration) *keyTracker {
	return &keyTracker{
		states:  make(map[playback.Key]*keyState),
		delay:   delay,
		release: release,
	}
}

func (t *keyTracker) key(k playback.Key, now time.Time, in *playback.Input) {
	s, ok := t.states[k]
	if !ok {
		in.Press(k)
		t.states[k] = &keyState{last: now}
		return
	}

	gap := now.Sub(s.last)
	switch {
	case gap < repeatGap:
		if !s.repeating && s.gap > 0 {
			t.delay = s.gap * 9 / 10
		}
		s.repeating = true
		s.interval = gap
	case s.repeating || gap < t.delay:
		in.Release(k)
		in.Press(k)
		s.repeating = false
		s.interval = 0
	}
	s.gap = gap
	s.last = now
}

// sweep releases keys whose messages stopped.
func (t *keyTracker) sweep(now time.Time, in *playback.Input) {
	for k, s := range t.states {
		quiet := t.release
		if s.repeating {
			quiet = max(quietRepeats*s.interval, repeatGap)
		}
		if now.Sub(s.last) >= quiet {
			in.Release(k)
			delete(t.states, k)
		}
	}
}

func (t *keyTracker) reset(in *playback.Input) {
	in.ReleaseAll()
	clear(t.states)
}
