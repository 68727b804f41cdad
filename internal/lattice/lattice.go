package lattice

import (
	"math"
	"time"
)

// Update rule names accepted by Config.Dynamics.
const (
	Glauber  = "glauber"
	Kawasaki = "kawasaki"
)

// Initial condition names accepted by Config.Start.
const (
	StartHot  = "hot"  // every spin drawn at random
	StartCold = "cold" // every spin +1
)

// Config describes a model to construct. Zero values fall back to the
// documented defaults.
type Config struct {
	Rows int
	Cols int

	// Dynamics selects the update rule used by Sweep. It may be left
	// empty for a model that only serves observable reads.
	Dynamics string

	// Temperature is required (> 0) for any dynamics-driven path and
	// may be left zero otherwise.
	Temperature float64

	// EnergyJ is the nearest-neighbor coupling constant. Default 1.
	EnergyJ float64

	// KB is the Boltzmann constant. Default 1.
	KB float64

	// Start selects the initial spin configuration. Default StartHot.
	Start string

	// Source overrides the model's random stream. When nil, a new
	// stream is created from Seed (or the wall clock when Seed is 0).
	Source Source
	Seed   int64
}

// Model is a 2D Ising lattice with periodic boundaries. All mutation
// goes through the update methods; observables are computed on read
// from the current grid.
type Model struct {
	rows, cols  int
	grid        [][]float64
	energyJ     float64
	kB          float64
	temperature float64
	baseExp     float64
	dynamics    string
	rng         Source
}

// New constructs a model from cfg, validating shape and thermodynamic
// parameters eagerly.
func New(cfg Config) (*Model, error) {
	if cfg.Rows < 1 || cfg.Cols < 1 {
		return nil, ErrInvalidShape
	}
	if cfg.Temperature < 0 {
		return nil, ErrInvalidTemperature
	}
	if cfg.KB < 0 {
		return nil, ErrInvalidBoltzmann
	}

	switch cfg.Dynamics {
	case "", Glauber, Kawasaki:
	default:
		return nil, ErrUnknownDynamics
	}
	if cfg.Dynamics != "" && cfg.Temperature == 0 {
		return nil, ErrInvalidTemperature
	}

	m := &Model{
		rows:        cfg.Rows,
		cols:        cfg.Cols,
		energyJ:     cfg.EnergyJ,
		kB:          cfg.KB,
		temperature: cfg.Temperature,
		dynamics:    cfg.Dynamics,
		rng:         cfg.Source,
	}
	if m.energyJ == 0 {
		m.energyJ = 1
	}
	if m.kB == 0 {
		m.kB = 1
	}
	if m.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		m.rng = newSource(seed)
	}
	if m.temperature > 0 {
		m.baseExp = math.Exp(-1 / (m.kB * m.temperature))
	}

	m.grid = make([][]float64, m.rows)
	for i := range m.grid {
		m.grid[i] = make([]float64, m.cols)
	}

	switch cfg.Start {
	case "", StartHot:
		// One uniform draw per cell, row-major, thresholded at 0.5.
		for i := range m.grid {
			for j := range m.grid[i] {
				if m.rng.Float64() >= 0.5 {
					m.grid[i][j] = 1.0
				} else {
					m.grid[i][j] = -1.0
				}
			}
		}
	case StartCold:
		for i := range m.grid {
			for j := range m.grid[i] {
				m.grid[i][j] = 1.0
			}
		}
	default:
		return nil, ErrUnknownStart
	}

	return m, nil
}

// Pbc wraps index i onto an axis of length n, mapping negative indices
// to the high end so the lattice is topologically a torus.
func Pbc(n, i int) int {
	return (i%n + n) % n
}

func (m *Model) Rows() int            { return m.rows }
func (m *Model) Cols() int            { return m.cols }
func (m *Model) EnergyJ() float64     { return m.energyJ }
func (m *Model) KB() float64          { return m.kB }
func (m *Model) Temperature() float64 { return m.temperature }
func (m *Model) Dynamics() string     { return m.dynamics }

// Grid exposes the live spin grid. Callers must treat it as read-only;
// use Snapshot for a stable copy.
func (m *Model) Grid() [][]float64 { return m.grid }

// Snapshot returns a deep copy of the current grid.
func (m *Model) Snapshot() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range m.grid {
		out[i] = make([]float64, m.cols)
		copy(out[i], m.grid[i])
	}
	return out
}

// SetTemperature changes the run temperature and recomputes the cached
// Boltzmann base. Rejects non-positive values.
func (m *Model) SetTemperature(t float64) error {
	if t <= 0 {
		return ErrInvalidTemperature
	}
	m.temperature = t
	m.baseExp = math.Exp(-1 / (m.kB * t))
	return nil
}
