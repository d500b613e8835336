// Package playback is the replay state machine.
//
// A [Controller] owns the current turn, the display mode and the display
// toggles of one viewing session. Hosts feed raw key state into an [Input]
// and call [Input.Tick] at a fixed rate; the controller then reports through
// [Controller.NeedsRedraw] whether the board must be drawn again.
//
// # Key repeat
//
// Single-step keys move one turn per physical press no matter how long they
// are held. Page and jump keys keep moving on every tick while held.
//
// # Thread Safety
//
// Controller and Input are NOT thread-safe; a session is driven from a single
// event loop.
package playback
