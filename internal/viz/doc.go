// Package viz renders the fire outside a GL window.
//
//   - [GlowCanvas]: a character-cell colour accumulation buffer
//   - [TerminalSurface]: a render.Surface that splats onto a GlowCanvas
//   - [Model]: the bubbletea live view used by `embersim live`
//   - [SVGSurface]: a render.Surface that writes an SVG document
//
// # Key Bindings
//
//	Up/Down       - Energy +/- 0.05
//	Left/Right    - Rotate yaw (also h/l)
//	j/k           - Rotate pitch
//	Space         - Pause/Resume
//	R             - Reset particles
//	C             - Reset camera
//	Q             - Quit
package viz
