package sim

import (
	"context"
	"fmt"

	"github.com/mverlet/spinlab/internal/lattice"
)

// Runner drives a lattice model through Monte Carlo sweeps, sampling
// observables and feeding metrics and observers between sweeps.
type Runner struct {
	model     *lattice.Model
	metrics   []Metric
	observers []Observer
}

func New(model *lattice.Model) *Runner {
	return &Runner{
		model:     model,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Model returns the underlying lattice for direct observable reads.
func (r *Runner) Model() *lattice.Model { return r.model }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	sampleEvery := cfg.SampleEvery
	if sampleEvery == 0 {
		sampleEvery = 1
	}

	result := &Result{
		Samples: make([]Sample, 0, cfg.Sweeps/sampleEvery+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Therm; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		if err := r.model.Sweep(); err != nil {
			return result, err
		}
	}

	for i := 0; i < cfg.Sweeps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := r.model.Sweep(); err != nil {
			return result, err
		}
		result.SweepsRun++

		energy := r.model.Energy()
		magnetism := r.model.Magnetism()

		for _, obs := range r.observers {
			obs.OnSweep(r.model.Grid(), i, energy, magnetism)
		}

		if i%sampleEvery == 0 {
			result.Samples = append(result.Samples, Sample{Sweep: i, Energy: energy, Magnetism: magnetism})
			for _, m := range r.metrics {
				m.Observe(energy, magnetism)
			}
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback performs sweeps until the callback returns false or
// the configured sweep count is reached. Thermalization and metrics do
// not apply; the callback sees every sweep.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(grid [][]float64, sweep int, energy, magnetism float64) bool) error {
	if err := r.validateConfig(cfg); err != nil {
		return err
	}

	for i := 0; i < cfg.Sweeps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := r.model.Sweep(); err != nil {
			return err
		}

		if !callback(r.model.Grid(), i, r.model.Energy(), r.model.Magnetism()) {
			return nil
		}
	}

	return nil
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Sweeps <= 0 {
		return fmt.Errorf("sweeps must be positive, got %d", cfg.Sweeps)
	}
	if cfg.Therm < 0 {
		return fmt.Errorf("thermalization sweeps must be non-negative, got %d", cfg.Therm)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample interval must be non-negative, got %d", cfg.SampleEvery)
	}
	return nil
}
