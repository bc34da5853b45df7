package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"orbitsearch/internal/dynamo"
	"orbitsearch/internal/physics"
	"orbitsearch/internal/seed"
	"orbitsearch/internal/spectral"
)

const (
	DefaultModes      = 33
	DefaultFreq       = 1.0
	DefaultIterations = 500
)

type Config struct {
	System        string             `yaml:"system"`
	Params        map[string]float64 `yaml:"params"`
	Modes         int                `yaml:"modes"`
	Freq          float64            `yaml:"freq"`
	Mean          []float64          `yaml:"mean"`
	Method        string             `yaml:"method"`
	MaxIterations int                `yaml:"max_iterations"`
	Seed          SeedConfig         `yaml:"seed"`
}

// SeedConfig describes how the initial trajectory guess is built: "ellipse"
// from center and semi-axis vectors, or "flow" by integrating from x0 over
// one trial period.
type SeedConfig struct {
	Type   string    `yaml:"type"`
	Center []float64 `yaml:"center"`
	AxisA  []float64 `yaml:"axis_a"`
	AxisB  []float64 `yaml:"axis_b"`
	X0     []float64 `yaml:"x0"`
	Period float64   `yaml:"period"`
}

func DefaultConfig() *Config {
	return &Config{
		System:        "vanderpol",
		Modes:         DefaultModes,
		Freq:          DefaultFreq,
		Method:        "lbfgs",
		MaxIterations: DefaultIterations,
		Seed: SeedConfig{
			Type:   "ellipse",
			Center: []float64{0, 0},
			AxisA:  []float64{2, 0},
			AxisB:  []float64{0, -2.7},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// BuildSystem instantiates the configured system and applies any parameter
// overrides.
func (c *Config) BuildSystem() (dynamo.System, error) {
	sys, err := physics.New(c.System)
	if err != nil {
		return nil, err
	}
	if len(c.Params) > 0 {
		cfg, ok := sys.(dynamo.Configurable)
		if !ok {
			return nil, fmt.Errorf("system %q takes no parameters", c.System)
		}
		for name, value := range c.Params {
			cfg.SetParam(name, value)
		}
	}
	return sys, nil
}

// BuildSeed builds the initial trajectory guess for the configured system.
func (c *Config) BuildSeed(sys dynamo.System) (spectral.Trajectory, error) {
	modes := c.Modes
	if modes <= 0 {
		modes = DefaultModes
	}
	switch c.Seed.Type {
	case "", "ellipse":
		center := orZero(c.Seed.Center, sys.Dim())
		a := orZero(c.Seed.AxisA, sys.Dim())
		b := orZero(c.Seed.AxisB, sys.Dim())
		return seed.Ellipse(center, a, b, modes)
	case "flow":
		x0 := orZero(c.Seed.X0, sys.Dim())
		return seed.FromFlow(sys, x0, c.Seed.Period, modes)
	default:
		return spectral.Trajectory{}, fmt.Errorf("unknown seed type %q", c.Seed.Type)
	}
}

// MeanState returns the configured mean offset, defaulting to the origin.
func (c *Config) MeanState(dim int) (dynamo.State, error) {
	if c.Mean == nil {
		return make(dynamo.State, dim), nil
	}
	if len(c.Mean) != dim {
		return nil, fmt.Errorf("mean has %d entries, system has dimension %d", len(c.Mean), dim)
	}
	return dynamo.State(c.Mean).Clone(), nil
}

func orZero(v []float64, dim int) dynamo.State {
	if v == nil {
		return make(dynamo.State, dim)
	}
	return dynamo.State(v)
}
