// Package viz is the terminal replay viewer.
//
// The viewer is a Bubble Tea program around a [playback.Controller]. Every
// tick it releases keys the terminal stopped repeating, samples the held
// keys once, and redraws the board only when the controller reports a
// change. Board cells are two columns wide and drawn from the render
// package's draw list.
//
// # Key Bindings
//
//	←/h →/l    - Step one turn (once per press)
//	↑/k ↓/j    - Page ten turns (repeats while held)
//	z/home     - Jump to the first turn
//	x/end      - Jump to the last turn
//	p          - Toggle the production view
//	n / s / d  - Toggle neutrals, strength, dark board
//	e          - Export the turn as text
//	S          - Export the turn as SVG
//	t          - Cycle the chrome theme
//	?          - Show help
//
// # Config Reload
//
// When started with a config file, [Run] watches it and applies palette and
// display toggles as soon as the file changes.
package viz
