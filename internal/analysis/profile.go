package analysis

import (
	"strings"

	"github.com/san-kum/embersim/internal/particles"
)

var densityRamp = []rune(" .:-=+*#%@")

// SideProfile projects live particles onto the x/y plane and draws their
// density as ASCII. The view spans [-extent, extent] on both axes.
func SideProfile(sys *particles.System, extent float64, width, height int) string {
	if sys == nil || width <= 0 || height <= 0 || extent <= 0 {
		return ""
	}

	counts := make([][]int, height)
	for i := range counts {
		counts[i] = make([]int, width)
	}

	peak := 0
	sys.Each(func(p particles.Particle) {
		col := int((p.Position.X + extent) / (2 * extent) * float64(width-1))
		row := height - 1 - int((p.Position.Y+extent)/(2*extent)*float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			return
		}
		counts[row][col]++
		peak = max(peak, counts[row][col])
	})

	var sb strings.Builder
	for _, row := range counts {
		for _, n := range row {
			idx := 0
			if peak > 0 && n > 0 {
				idx = 1 + n*(len(densityRamp)-2)/peak
			}
			sb.WriteRune(densityRamp[idx])
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
