// Package gui is the raylib window viewer.
//
// Keys are polled as levels every frame and fed to a [playback.Input];
// playback advances on the configured tick. The board is drawn into a
// render texture only when the controller reports a change.
package gui
