package phase

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/embersim/internal/dynamo"
)

func TestNew(t *testing.T) {
	for _, name := range append(Names, "") {
		if _, err := New(name, 1); err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
	}
	if _, err := New("sine", 1); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("unknown source error = %v", err)
	}
}

func TestTimer(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_250)
	tm := NewTimer(func() time.Time { return base })
	if got := tm.Phase(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Phase = %v, want 0.25", got)
	}
}

func TestCounterWraps(t *testing.T) {
	c := NewCounter(0.3)
	want := []float64{0, 0.3, 0.6, 0.9, 0.2}
	for i, w := range want {
		if got := c.Phase(); math.Abs(got-w) > 1e-9 {
			t.Errorf("sample %d = %v, want %v", i, got, w)
		}
	}
}

func TestNoiseRangeAndContinuity(t *testing.T) {
	n := NewNoise(42, DefaultNoiseStep)
	prev := n.Phase()
	jumps := 0
	for i := 0; i < 5000; i++ {
		v := n.Phase()
		if v < 0 || v >= 1 {
			t.Fatalf("sample %d = %v out of [0,1)", i, v)
		}
		if math.Abs(v-prev) > 0.1 {
			jumps++
		}
		prev = v
	}
	if jumps > 0 {
		t.Errorf("noise phase jumped %d times; it should vary slowly", jumps)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a, b := NewNoise(5, DefaultNoiseStep), NewNoise(5, DefaultNoiseStep)
	for i := 0; i < 100; i++ {
		if a.Phase() != b.Phase() {
			t.Fatal("same seed produced different phases")
		}
	}
}
