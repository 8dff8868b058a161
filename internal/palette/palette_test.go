package palette

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

const eps = 1e-9

func near(a, b colorful.Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol && math.Abs(a.B-b.B) <= tol
}

func TestColorWithinUnitRange(t *testing.T) {
	for ei := 0; ei <= 20; ei++ {
		for ai := 0; ai <= 50; ai++ {
			e, a := float64(ei)/20, float64(ai)/50
			c := Color(e, a)
			for _, v := range []float64{c.R, c.G, c.B} {
				if v < 0 || v > 1+eps {
					t.Fatalf("Color(%.2f, %.2f) = %+v out of range", e, a, c)
				}
			}
		}
	}
}

func TestColorAtSpawnIsHot(t *testing.T) {
	for _, e := range []float64{0, 0.25, 0.5, 1} {
		want := At(e).Hot
		if got := Color(e, 0); !near(got, want, eps) {
			t.Errorf("energy %.2f: Color(_, 0) = %+v, want %+v", e, got, want)
		}
	}
}

func TestColorAtDeathIsQuarterTip(t *testing.T) {
	for _, e := range []float64{0, 0.5, 1} {
		tip := At(e).Tip
		want := colorful.Color{R: tip.R * 0.25, G: tip.G * 0.25, B: tip.B * 0.25}
		if got := Color(e, 1); !near(got, want, 1e-9) {
			t.Errorf("energy %.2f: Color(_, 1) = %+v, want %+v", e, got, want)
		}
	}
}

func TestColorMidLife(t *testing.T) {
	// At age 0.5 both ramp segments meet at mid.
	p := At(0.3)
	f := Fade(0.5)
	want := colorful.Color{R: p.Mid.R * f, G: p.Mid.G * f, B: p.Mid.B * f}
	if got := Color(0.3, 0.5); !near(got, want, eps) {
		t.Errorf("Color(0.3, 0.5) = %+v, want %+v", got, want)
	}
}

func TestPaletteExtremes(t *testing.T) {
	if !near(At(0).Hot, Low.Hot, eps) || !near(At(1).Tip, High.Tip, eps) {
		t.Error("At should reproduce reference palettes at the extremes")
	}
	mid := At(0.5).Mid
	want := colorful.Color{R: 0.55, G: 0.75, B: 0.55}
	if !near(mid, want, 1e-9) {
		t.Errorf("At(0.5).Mid = %+v, want %+v", mid, want)
	}
}

func TestInputsAreClamped(t *testing.T) {
	if !near(Color(-3, -1), Color(0, 0), eps) {
		t.Error("negative inputs should clamp to zero")
	}
	if !near(Color(7, 2), Color(1, 1), eps) {
		t.Error("inputs above one should clamp to one")
	}
	if !near(Color(math.NaN(), 0.2), Color(0, 0.2), eps) {
		t.Error("NaN energy should clamp to zero")
	}
}

func TestFadeMonotonic(t *testing.T) {
	prev := Fade(0)
	if prev != 1 {
		t.Fatalf("Fade(0) = %v, want 1", prev)
	}
	for i := 1; i <= 100; i++ {
		f := Fade(float64(i) / 100)
		if f > prev {
			t.Fatalf("fade increased at age %.2f", float64(i)/100)
		}
		prev = f
	}
	if math.Abs(prev-0.25) > eps {
		t.Errorf("Fade(1) = %v, want 0.25", prev)
	}
}

func TestAlpha(t *testing.T) {
	tests := []struct {
		age, want float64
	}{
		{0, 0.20},
		{0.5, 0.11},
		{1, 0.02},
		{3, 0.02},
	}
	for _, tt := range tests {
		if got := Alpha(tt.age); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Alpha(%v) = %v, want %v", tt.age, got, tt.want)
		}
	}
}
