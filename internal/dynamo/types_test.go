package dynamo

import (
	"math"
	"testing"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{1.5, 10.0, 0, 1.5},
		{1.5, 10.0, 1, 10.0},
		{0.985, 0.992, 0.5, 0.9885},
		{0.045, 0.030, 1, 0.030},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below", -0.3, 0},
		{"above", 1.7, 1},
		{"inside", 0.42, 0.42},
		{"nan", math.NaN(), 0},
		{"+inf", math.Inf(1), 1},
		{"-inf", math.Inf(-1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.in); got != tt.want {
				t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec3(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(-2, 0.5, 4)

	if got := a.Dot(b); got != 1*-2+2*0.5+3*4 {
		t.Errorf("dot = %v", got)
	}
	c := a.Cross(b)
	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("cross product not orthogonal: %v", c)
	}
	if n := V3(3, 0, 4).Normalize(); math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("normalize length = %v", n.Length())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
	if V3(math.NaN(), 0, 0).IsValid() {
		t.Error("NaN vector reported valid")
	}
}
