// Package palette maps flame energy and particle age to colour.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/embersim/internal/dynamo"
)

const (
	// FadeExponent keeps most of the life bright and darkens sharply near the end.
	FadeExponent = 1.6
	// FadeDepth is how much of the brightness is gone at death.
	FadeDepth = 0.75

	AlphaSpan  = 0.18
	AlphaFloor = 0.02
)

// Palette is the three-stop ramp a particle walks through over its life.
type Palette struct {
	Hot, Mid, Tip colorful.Color
}

var (
	// Low is the energy=0 palette: deep red, orange, yellowish.
	Low = Palette{
		Hot: colorful.Color{R: 1.00, G: 0.15, B: 0.05},
		Mid: colorful.Color{R: 1.00, G: 0.55, B: 0.10},
		Tip: colorful.Color{R: 1.00, G: 0.95, B: 0.25},
	}

	// High is the energy=1 palette: blue, cyan, near white.
	High = Palette{
		Hot: colorful.Color{R: 0.10, G: 0.25, B: 1.00},
		Mid: colorful.Color{R: 0.10, G: 0.95, B: 1.00},
		Tip: colorful.Color{R: 0.90, G: 0.95, B: 1.00},
	}
)

// At blends each stop of Low and High independently by energy.
func At(energy float64) Palette {
	e := dynamo.Clamp01(energy)
	return Palette{
		Hot: Low.Hot.BlendRgb(High.Hot, e),
		Mid: Low.Mid.BlendRgb(High.Mid, e),
		Tip: Low.Tip.BlendRgb(High.Tip, e),
	}
}

// Ramp walks hot->mid over the first half of life and mid->tip over the second.
func (p Palette) Ramp(age float64) colorful.Color {
	a := dynamo.Clamp01(age)
	if a < 0.5 {
		return p.Hot.BlendRgb(p.Mid, a/0.5)
	}
	return p.Mid.BlendRgb(p.Tip, (a-0.5)/0.5)
}

// Fade is the brightness multiplier at the given age, in [1-FadeDepth, 1].
func Fade(age float64) float64 {
	return 1 - math.Pow(dynamo.Clamp01(age), FadeExponent)*FadeDepth
}

// Color is the faded flame colour for a particle. Inputs are clamped; the
// result stays within [0,1] per channel because every stop does and the fade
// only darkens.
func Color(energy, age float64) colorful.Color {
	c := At(energy).Ramp(age)
	f := Fade(age)
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Alpha is opaque-ish for fresh particles and nearly, never fully, transparent at death.
func Alpha(age float64) float64 {
	return AlphaSpan*(1-dynamo.Clamp01(age)) + AlphaFloor
}
