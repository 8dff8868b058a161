package gui

import (
	"testing"

	"github.com/san-kum/embersim/internal/render"
)

func TestSliderValue(t *testing.T) {
	tests := []struct {
		name   string
		mouseX float32
		want   int
	}{
		{"left edge", 100, 0},
		{"before track", 20, 0},
		{"middle", 300, 50},
		{"quarter", 200, 25},
		{"right edge", 500, 100},
		{"past track", 900, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SliderValue(tt.mouseX, 100, 400); got != tt.want {
				t.Errorf("SliderValue(%v) = %d, want %d", tt.mouseX, got, tt.want)
			}
		})
	}

	if SliderValue(50, 0, 0) != 0 {
		t.Error("zero-width track should give 0")
	}
}

func TestNudgeClamps(t *testing.T) {
	if got := nudge(0.995, 0.01); got != 1 {
		t.Errorf("nudge up past 1 = %v", got)
	}
	if got := nudge(0.005, -0.01); got != 0 {
		t.Errorf("nudge down past 0 = %v", got)
	}
}

func TestToColor(t *testing.T) {
	c := toColor(render.RGBA{R: 1, G: 0.5, B: -1, A: 2})
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Errorf("toColor = %+v", c)
	}
}

func TestEnergyTintEnds(t *testing.T) {
	low := energyTint(0)
	high := energyTint(1)
	if low.R <= low.B {
		t.Errorf("low energy tint should be warm: %+v", low)
	}
	if high.B <= high.R {
		t.Errorf("high energy tint should be cool: %+v", high)
	}
}
