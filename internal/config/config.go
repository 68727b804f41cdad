package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mverlet/spinlab/internal/lattice"
	"github.com/mverlet/spinlab/internal/sim"
)

const (
	DefaultRows        = 64
	DefaultCols        = 64
	DefaultTemperature = 2.0
	DefaultEnergyJ     = 1.0
	DefaultKB          = 1.0
	DefaultSweeps      = 1000
	DefaultTherm       = 200
	DefaultSampleEvery = 1
)

type Config struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	Dynamics    string  `yaml:"dynamics"`
	Temperature float64 `yaml:"temperature"`
	EnergyJ     float64 `yaml:"energy_j"`
	KB          float64 `yaml:"k_b"`
	Start       string  `yaml:"start"`
	Seed        int64   `yaml:"seed"`
	Sweeps      int     `yaml:"sweeps"`
	Therm       int     `yaml:"therm"`
	SampleEvery int     `yaml:"sample_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:        DefaultRows,
		Cols:        DefaultCols,
		Dynamics:    lattice.Glauber,
		Temperature: DefaultTemperature,
		EnergyJ:     DefaultEnergyJ,
		KB:          DefaultKB,
		Start:       lattice.StartHot,
		Sweeps:      DefaultSweeps,
		Therm:       DefaultTherm,
		SampleEvery: DefaultSampleEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// LatticeConfig converts the run configuration into a model
// configuration.
func (c *Config) LatticeConfig() lattice.Config {
	return lattice.Config{
		Rows:        c.Rows,
		Cols:        c.Cols,
		Dynamics:    c.Dynamics,
		Temperature: c.Temperature,
		EnergyJ:     c.EnergyJ,
		KB:          c.KB,
		Start:       c.Start,
		Seed:        c.Seed,
	}
}

// SimConfig converts the run configuration into a sweep-driver
// configuration.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Sweeps:      c.Sweeps,
		Therm:       c.Therm,
		SampleEvery: c.SampleEvery,
	}
}
