package audio

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/embersim/internal/dynamo"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// PopsPerParticle scales the crackle rate (pops per second) by the live
	// particle count.
	PopsPerParticle = 0.02
)

// Crackle synthesizes a fire: a lowpassed brown-noise roar whose level and
// brightness follow energy, plus short noise pops whose rate follows the
// particle population.
type Crackle struct {
	Stream *portaudio.Stream

	rng *rand.Rand

	// Roar
	brown       float64
	FilterState [2]float64

	// Pops
	popEnv   float64
	popDecay float64

	// Targets written by the host, smoothed in the callback
	mu               sync.Mutex
	targetEnergy     float64
	targetPopulation float64
	energySmooth     float64
	popSmooth        float64

	Active bool
}

func NewCrackle(seed int64) *Crackle {
	return &Crackle{
		rng:      rand.New(rand.NewSource(seed)),
		popDecay: math.Exp(-1.0 / (0.004 * SampleRate)),
	}
}

// Start opens the default output device. On error the synth stays inactive
// and the caller can continue silently.
func (a *Crackle) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.Process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("start stream: %w", err)
	}

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Crackle) Stop() {
	if !a.Active {
		return
	}
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
		a.Stream = nil
	}
	portaudio.Terminate()
	a.Active = false
}

// Update sets the loudness targets. Safe to call from the render goroutine.
func (a *Crackle) Update(energy float64, population int) {
	a.mu.Lock()
	a.targetEnergy = dynamo.Clamp01(energy)
	a.targetPopulation = math.Max(0, float64(population))
	a.mu.Unlock()
}

// lpf is a one pole low pass filter.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// Process fills a non-interleaved stereo buffer.
func (a *Crackle) Process(out [][]float32) {
	a.mu.Lock()
	targetEnergy := a.targetEnergy
	targetPop := a.targetPopulation
	a.mu.Unlock()

	// smoothed once per buffer
	a.energySmooth = a.energySmooth*0.9 + targetEnergy*0.1
	a.popSmooth = a.popSmooth*0.9 + targetPop*0.1

	dt := 1.0 / float64(SampleRate)
	cutoff := 180.0 + 1400.0*a.energySmooth
	roarGain := 0.6 + 2.4*a.energySmooth
	popProb := a.popSmooth * PopsPerParticle * dt
	popGain := 0.15 + 0.35*a.energySmooth

	if len(out) == 0 {
		return
	}
	for i := range out[0] {
		white := a.rng.Float64()*2 - 1
		a.brown = (a.brown + 0.02*white) / 1.02

		if a.rng.Float64() < popProb {
			a.popEnv = 0.5 + 0.5*a.rng.Float64()
		}
		pop := a.popEnv * (a.rng.Float64()*2 - 1)
		a.popEnv *= a.popDecay

		var outL, outR float64
		outL, a.FilterState[0] = lpf(a.brown*roarGain, cutoff, dt, a.FilterState[0])
		outR, a.FilterState[1] = lpf(a.brown*roarGain, cutoff*1.07, dt, a.FilterState[1])

		l := math.Tanh(outL + pop*popGain)
		r := math.Tanh(outR + pop*popGain*0.8)

		out[0][i] = float32(l)
		if len(out) > 1 {
			out[1][i] = float32(r)
		}
	}
}
