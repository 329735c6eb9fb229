// Package viz provides the terminal front ends of dpendulum.
//
//   - [ScanModel]: progress view for a running grid scan
//   - [PlayerModel]: Braille animation of a computed trajectory
//   - [Summary]: styled key/value panel for command output
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart playback
//	[ ]   - Step backward/forward while paused
//	Q     - Quit (cancels a running scan)
package viz
