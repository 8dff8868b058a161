package config

import (
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"github.com/san-kum/embersim/internal/camera"
	"github.com/san-kum/embersim/internal/dynamo"
	"github.com/san-kum/embersim/internal/particles"
	"github.com/san-kum/embersim/internal/phase"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEnergy       = 0.5
	DefaultDt           = 1.0 / 120.0
	DefaultTickInterval = 8 * time.Millisecond
	DefaultWidth        = 1100
	DefaultHeight       = 750
)

type Config struct {
	Energy       float64       `yaml:"energy"`
	Dt           float64       `yaml:"dt"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Seed         int64         `yaml:"seed"`
	MaxParticles int           `yaml:"max_particles"`
	Phase        string        `yaml:"phase"`
	Camera       CameraConfig  `yaml:"camera"`
	Window       WindowConfig  `yaml:"window"`
	Audio        bool          `yaml:"audio"`
}

type CameraConfig struct {
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Energy:       DefaultEnergy,
		Dt:           DefaultDt,
		TickInterval: DefaultTickInterval,
		MaxParticles: particles.MaxParticles,
		Phase:        phase.NameNoise,
		Camera: CameraConfig{
			Pitch: camera.DefaultPitch,
			Yaw:   camera.DefaultYaw,
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// Load reads a yaml file over the defaults; fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file over base, which is modified in place.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dynamo.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case math.IsNaN(c.Energy) || c.Energy < 0 || c.Energy > 1:
		return fmt.Errorf("%w: energy %v outside [0,1]", dynamo.ErrInvalidConfig, c.Energy)
	case !(c.Dt > 0) || math.IsInf(c.Dt, 0):
		return fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrInvalidConfig, c.Dt)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive, got %v", dynamo.ErrInvalidConfig, c.TickInterval)
	case c.MaxParticles < 1:
		return fmt.Errorf("%w: max_particles must be at least 1, got %d", dynamo.ErrInvalidConfig, c.MaxParticles)
	case !slices.Contains(phase.Names, c.Phase):
		return fmt.Errorf("%w: phase %q (want one of %v)", dynamo.ErrInvalidConfig, c.Phase, phase.Names)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", dynamo.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	return nil
}

// ResolvedSeed returns Seed, or a time-based seed when Seed is zero.
func (c *Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
