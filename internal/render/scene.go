package render

import (
	"math"

	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/particles"
)

const (
	BurnerRadius   = 0.35
	BurnerSegments = 40
	BoxHalfSize    = 1.2
)

var (
	BurnerColor = RGBA{0.6, 0.6, 0.7, 0.35}
	BoxColor    = RGBA{0.6, 0.75, 1.0, 0.07}
)

// BurnerRim returns the closed rim of a horizontal disk at the burner
// height; the first and last points coincide.
func BurnerRim(radius float64, segments int) []dynamo.Vec3 {
	if segments < 3 {
		segments = 3
	}
	rim := make([]dynamo.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		rim = append(rim, dynamo.V3(math.Cos(a)*radius, particles.Burner.Y, math.Sin(a)*radius))
	}
	return rim
}

// BoxEdges returns the 12 edges of an axis-aligned cube centred on the origin.
func BoxEdges(halfSize float64) []Segment {
	s := halfSize
	v := []dynamo.Vec3{{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s}, {X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	edges := make([]Segment, 0, len(ei))
	for _, e := range ei {
		edges = append(edges, Segment{v[e[0]], v[e[1]]})
	}
	return edges
}
