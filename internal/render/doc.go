// Package render draws a particle system through an immediate-mode [Surface].
//
// Each frame the [Renderer] draws the burner disk, depth-sorts the live
// particles farthest first along the camera's forward vector, draws them as
// additive translucent spheres with depth writes off, and finishes with a
// faint bounding wireframe. Sorting by particle centre only is an
// approximation; it ignores radius and accumulated alpha.
//
// Surfaces exist for raylib (internal/gui), the terminal glow canvas and SVG
// (internal/viz).
package render
