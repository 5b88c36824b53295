// Package viz renders adsorption curves in the terminal.
//
//   - [ASCIIPlotter]: q(t) with the equilibrium reference line, via asciigraph
//   - [Theme]: chart and text colors, 5 built-in schemes
//   - [LiveModel]: Bubble Tea program revealing the sampled curve over time
//
// # Key Bindings (live view)
//
//	Space     - Pause/Resume playback
//	R         - Restart from t_start
//	Q/Esc     - Quit
package viz
