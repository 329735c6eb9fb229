package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/dpendulum/internal/dynamo"
	"github.com/san-kum/dpendulum/internal/integrators"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.001
	DefaultDuration  = 20.0
	DefaultPlotFreq  = 100
	DefaultGridSide  = 64
	DefaultTheta1    = 1.5
	DefaultTheta2    = 1.5
	DefaultRodLength = 1.0
	DefaultMass      = 1.0
	DefaultGravity   = 9.81
	DefaultDataDir   = ".dpendulum"
)

type Config struct {
	Constants dynamo.Constants `yaml:"constants"`
	Dt        float64          `yaml:"dt"`
	Duration  float64          `yaml:"duration"`
	PlotFreq  int              `yaml:"plot_freq"`
	GridSide  int              `yaml:"grid_side"`
	Scheme    string           `yaml:"scheme"`
	Workers   int              `yaml:"workers"`
	DataDir   string           `yaml:"data_dir"`
	InitState InitStateConfig  `yaml:"init_state"`
}

type InitStateConfig struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
}

func DefaultConfig() *Config {
	return &Config{
		Constants: dynamo.Constants{
			RodLength: DefaultRodLength,
			Mass:      DefaultMass,
			Gravity:   DefaultGravity,
		},
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		PlotFreq:  DefaultPlotFreq,
		GridSide:  DefaultGridSide,
		Scheme:    integrators.Symmetric.String(),
		DataDir:   DefaultDataDir,
		InitState: InitStateConfig{
			Theta1: DefaultTheta1,
			Theta2: DefaultTheta2,
		},
	}
}

// Load reads a config file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a config file on top of base. Keys missing from the file
// keep the values of base. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params derives the simulation parameters. The step count is the duration
// rounded to whole steps and TotalTime is recomputed from it.
func (c *Config) Params() (dynamo.Params, error) {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return dynamo.Params{}, &dynamo.ParamError{Field: "dt", Value: c.Dt, Reason: "must be positive and finite"}
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return dynamo.Params{}, &dynamo.ParamError{Field: "duration", Value: c.Duration, Reason: "must be positive and finite"}
	}
	if c.PlotFreq < 0 {
		return dynamo.Params{}, &dynamo.ParamError{Field: "plot_freq", Value: float64(c.PlotFreq), Reason: "must not be negative"}
	}

	steps := int(math.Round(c.Duration / c.Dt))
	p := dynamo.Params{
		StepCount:  steps,
		Dt:         c.Dt,
		TotalTime:  float64(steps) * c.Dt,
		SampleFreq: int(math.Round(1 / c.Dt)),
		PlotFreq:   c.PlotFreq,
		GridSide:   c.GridSide,
		Constants:  c.Constants,
	}
	if err := p.Validate(); err != nil {
		return dynamo.Params{}, err
	}
	return p, nil
}

// Stepper builds the stepper named by Scheme.
func (c *Config) Stepper() (integrators.Stepper, error) {
	return integrators.NewStepper(c.Scheme)
}
