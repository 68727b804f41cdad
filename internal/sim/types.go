package sim

// Metric accumulates a statistic over sampled observables.
type Metric interface {
	Name() string
	Observe(energy, magnetism float64)
	Value() float64
	Reset()
}

// Observer is notified after every sweep, sampled or not. The grid is
// the model's live view and must not be retained across sweeps.
type Observer interface {
	OnSweep(grid [][]float64, sweep int, energy, magnetism float64)
}

// Config controls a run. Therm sweeps equilibrate the lattice before
// any sampling; after that, observables are recorded every SampleEvery
// sweeps for Sweeps sweeps.
type Config struct {
	Sweeps      int
	Therm       int
	SampleEvery int
}

// Sample is one observation of the lattice between sweeps.
type Sample struct {
	Sweep     int
	Energy    float64
	Magnetism float64
}

// Result collects the samples and final metric values of a run.
type Result struct {
	Samples   []Sample
	Metrics   map[string]float64
	SweepsRun int
}
