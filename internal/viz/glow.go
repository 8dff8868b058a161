package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// glyphs orders characters by apparent ink density.
var glyphs = []rune(" .:-=+*%#@")

// GlowCanvas accumulates straight RGB light per character cell.
type GlowCanvas struct {
	Width, Height int
	Cells         []colorful.Color
	Background    colorful.Color
}

func NewGlowCanvas(w, h int) *GlowCanvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &GlowCanvas{
		Width:  w,
		Height: h,
		Cells:  make([]colorful.Color, w*h),
	}
}

func (c *GlowCanvas) Clear() {
	for i := range c.Cells {
		c.Cells[i] = c.Background
	}
}

func (c *GlowCanvas) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return colorful.Color{}
	}
	return c.Cells[y*c.Width+x]
}

// Add composites col*alpha + dst.
func (c *GlowCanvas) Add(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	d := &c.Cells[y*c.Width+x]
	d.R += col.R * alpha
	d.G += col.G * alpha
	d.B += col.B * alpha
}

// Blend composites col*alpha + dst*(1-alpha).
func (c *GlowCanvas) Blend(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	d := &c.Cells[y*c.Width+x]
	*d = d.BlendRgb(col, alpha)
}

// DrawLine plots a Bresenham line through plot.
func DrawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func luminance(col colorful.Color) float64 {
	return max(col.R, col.G, col.B)
}

func glyphFor(col colorful.Color) rune {
	l := min(luminance(col), 1)
	if l <= 0.02 {
		return ' '
	}
	idx := 1 + int(l*float64(len(glyphs)-2)+0.5)
	return glyphs[min(idx, len(glyphs)-1)]
}

// Plain renders density glyphs without colour.
func (c *GlowCanvas) Plain() string {
	var b strings.Builder
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			b.WriteRune(glyphFor(c.Cells[y*c.Width+x]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the canvas with a true-colour foreground per cell.
// Consecutive cells with the same colour share one style run.
func (c *GlowCanvas) String() string {
	var b strings.Builder
	for y := 0; y < c.Height; y++ {
		var run strings.Builder
		runHex := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runHex == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.Width; x++ {
			col := c.Cells[y*c.Width+x]
			g := glyphFor(col)
			hex := ""
			if g != ' ' {
				hex = col.Clamped().Hex()
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(g)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}
