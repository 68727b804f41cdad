package config

import "github.com/mverlet/spinlab/internal/lattice"

// CriticalTemperature is Onsager's exact value for the infinite 2D
// lattice at J = kB = 1.
const CriticalTemperature = 2.269

var Presets = map[string]map[string]*Config{
	lattice.Glauber: {
		"cold": {
			Dynamics: lattice.Glauber, Rows: 64, Cols: 64,
			Temperature: 1.5, Start: lattice.StartHot,
			Sweeps: 1000, Therm: 200,
		},
		"critical": {
			Dynamics: lattice.Glauber, Rows: 64, Cols: 64,
			Temperature: CriticalTemperature, Start: lattice.StartHot,
			Sweeps: 3000, Therm: 1000,
		},
		"hot": {
			Dynamics: lattice.Glauber, Rows: 64, Cols: 64,
			Temperature: 3.5, Start: lattice.StartHot,
			Sweeps: 1000, Therm: 100,
		},
		"quench": {
			Dynamics: lattice.Glauber, Rows: 128, Cols: 128,
			Temperature: 1.0, Start: lattice.StartHot,
			Sweeps: 2000, Therm: 0,
		},
	},
	lattice.Kawasaki: {
		"mixed": {
			Dynamics: lattice.Kawasaki, Rows: 64, Cols: 64,
			Temperature: 2.0, Start: lattice.StartHot,
			Sweeps: 1500, Therm: 300,
		},
		"coarsening": {
			Dynamics: lattice.Kawasaki, Rows: 128, Cols: 128,
			Temperature: 1.2, Start: lattice.StartHot,
			Sweeps: 3000, Therm: 0,
		},
	},
}

func GetPreset(dynamics, preset string) *Config {
	dynamicsPresets, ok := Presets[dynamics]
	if !ok {
		return nil
	}
	cfg, ok := dynamicsPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(dynamics string) []string {
	dynamicsPresets, ok := Presets[dynamics]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(dynamicsPresets))
	for name := range dynamicsPresets {
		names = append(names, name)
	}
	return names
}
