package config

import (
	"sort"

	"github.com/san-kum/dpendulum/internal/dynamo"
)

var Presets = map[string]*Config{
	"classic": {
		Constants: standard, Dt: 0.001, Duration: 100.0, PlotFreq: 100, GridSide: 256,
		Scheme:    "legacy",
		DataDir:   DefaultDataDir,
		InitState: InitStateConfig{Theta1: 1.5, Theta2: 1.5},
	},
	"quick": {
		Constants: standard, Dt: 0.005, Duration: 10.0, PlotFreq: 50, GridSide: 32,
		Scheme:    "symmetric",
		DataDir:   DefaultDataDir,
		InitState: InitStateConfig{Theta1: 2.0, Theta2: 0.5},
	},
	"fine": {
		Constants: standard, Dt: 0.0002, Duration: 30.0, PlotFreq: 200, GridSide: 512,
		Scheme:    "symmetric",
		DataDir:   DefaultDataDir,
		InitState: InitStateConfig{Theta1: 3.0, Theta2: 3.0},
	},
	"moon": {
		Constants: moon, Dt: 0.001, Duration: 60.0, PlotFreq: 100, GridSide: 128,
		Scheme:    "symmetric",
		DataDir:   DefaultDataDir,
		InitState: InitStateConfig{Theta1: 1.5, Theta2: 1.5},
	},
}

var (
	standard = constants(1.0, 1.0, 9.81)
	moon     = constants(1.0, 1.0, 1.62)
)

func constants(length, mass, gravity float64) dynamo.Constants {
	return dynamo.Constants{RodLength: length, Mass: mass, Gravity: gravity}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
