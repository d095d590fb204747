package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bistable/internal/dynamo"
)

const (
	DefaultDt        = 1.0 / 60
	DefaultSubsteps  = 1
	DefaultDomainMin = -5.0
	DefaultDomainMax = 5.0
	DefaultSamples   = 100
	DefaultHalfWidth = 0.0025
	DefaultR         = 10.0
	DefaultH         = 0.0
	DefaultSliderMin = -10.0
	DefaultSliderMax = 10.0
	DefaultSlideStep = 0.1
	DefaultFrameRate = 60
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Integrator string        `yaml:"integrator"`
	Dt         float64       `yaml:"dt"`
	Substeps   int           `yaml:"substeps"`
	FrameRate  int           `yaml:"fps"`
	Theme      string        `yaml:"theme"`
	Initial    InitialConfig `yaml:"initial"`
	Params     dynamo.Params `yaml:"params"`
	Slider     SliderConfig  `yaml:"slider"`
	Domain     DomainConfig  `yaml:"domain"`
	Noise      NoiseConfig   `yaml:"noise"`
}

type InitialConfig struct {
	T float64 `yaml:"t"`
	X float64 `yaml:"x"`
}

type SliderConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

type DomainConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Samples int     `yaml:"samples"`
}

type NoiseConfig struct {
	Enabled   bool    `yaml:"enabled"`
	HalfWidth float64 `yaml:"half_width"`
	Seed      int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Dt:         DefaultDt,
		Substeps:   DefaultSubsteps,
		FrameRate:  DefaultFrameRate,
		Theme:      "cyberpunk",
		Params:     dynamo.Params{R: DefaultR, H: DefaultH},
		Slider: SliderConfig{
			Min:  DefaultSliderMin,
			Max:  DefaultSliderMax,
			Step: DefaultSlideStep,
		},
		Domain: DomainConfig{
			Min:     DefaultDomainMin,
			Max:     DefaultDomainMax,
			Samples: DefaultSamples,
		},
		Noise: NoiseConfig{HalfWidth: DefaultHalfWidth},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
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

// Validate checks the invariants the simulation loop relies on.
func (c *Config) Validate() error {
	switch {
	case !(c.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.Dt)
	case c.Substeps < 1:
		return fmt.Errorf("%w: substeps must be at least 1, got %d", ErrInvalidConfig, c.Substeps)
	case c.Domain.Samples < 2:
		return fmt.Errorf("%w: domain.samples must be at least 2, got %d", ErrInvalidConfig, c.Domain.Samples)
	case !(c.Domain.Max > c.Domain.Min):
		return fmt.Errorf("%w: domain.max must exceed domain.min", ErrInvalidConfig)
	case c.Noise.HalfWidth < 0:
		return fmt.Errorf("%w: noise.half_width must be non-negative", ErrInvalidConfig)
	case !(c.Slider.Max >= c.Slider.Min) || c.Slider.Step <= 0:
		return fmt.Errorf("%w: slider bounds", ErrInvalidConfig)
	case c.FrameRate <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FrameRate)
	}
	return nil
}

// Clamp limits v to the slider range and snaps it to the slider step.
func (s SliderConfig) Clamp(v float64) float64 {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	steps := (v - s.Min) / s.Step
	snapped := s.Min + float64(int64(steps+0.5))*s.Step
	if snapped > s.Max {
		snapped = s.Max
	}
	return snapped
}
