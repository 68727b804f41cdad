package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/mverlet/spinlab/internal/lattice"
)

type countingMetric struct {
	observations int
}

func (c *countingMetric) Name() string                      { return "observations" }
func (c *countingMetric) Observe(energy, magnetism float64) { c.observations++ }
func (c *countingMetric) Value() float64                    { return float64(c.observations) }
func (c *countingMetric) Reset()                            { c.observations = 0 }

type sweepRecorder struct {
	sweeps []int
}

func (s *sweepRecorder) OnSweep(grid [][]float64, sweep int, energy, magnetism float64) {
	s.sweeps = append(s.sweeps, sweep)
}

func newTestModel(t *testing.T) *lattice.Model {
	t.Helper()
	m, err := lattice.New(lattice.Config{
		Rows: 6, Cols: 6,
		Dynamics:    lattice.Glauber,
		Temperature: 2.0,
		Seed:        11,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRunnerRun(t *testing.T) {
	runner := New(newTestModel(t))
	metric := &countingMetric{}
	runner.AddMetric(metric)

	result, err := runner.Run(context.Background(), Config{Sweeps: 10, Therm: 5, SampleEvery: 2})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.SweepsRun != 10 {
		t.Errorf("expected 10 sweeps, got %d", result.SweepsRun)
	}
	if len(result.Samples) != 5 {
		t.Errorf("expected 5 samples, got %d", len(result.Samples))
	}
	if result.Metrics["observations"] != 5 {
		t.Errorf("expected 5 metric observations, got %v", result.Metrics["observations"])
	}

	for _, s := range result.Samples {
		if s.Magnetism < 0 || s.Magnetism > 36 {
			t.Errorf("magnetism %v outside [0, 36]", s.Magnetism)
		}
	}
}

func TestRunnerObserversSeeEverySweep(t *testing.T) {
	runner := New(newTestModel(t))
	rec := &sweepRecorder{}
	runner.AddObserver(rec)

	if _, err := runner.Run(context.Background(), Config{Sweeps: 7, SampleEvery: 3}); err != nil {
		t.Fatal(err)
	}
	if len(rec.sweeps) != 7 {
		t.Errorf("observer saw %d sweeps, want 7", len(rec.sweeps))
	}
}

func TestRunnerValidatesConfig(t *testing.T) {
	runner := New(newTestModel(t))

	if _, err := runner.Run(context.Background(), Config{Sweeps: 0}); err == nil {
		t.Error("expected error for zero sweeps")
	}
	if _, err := runner.Run(context.Background(), Config{Sweeps: 5, Therm: -1}); err == nil {
		t.Error("expected error for negative thermalization")
	}
}

func TestRunnerContextCancel(t *testing.T) {
	runner := New(newTestModel(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, Config{Sweeps: 100})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunnerNoDynamics(t *testing.T) {
	m, err := lattice.New(lattice.Config{Rows: 4, Cols: 4})
	if err != nil {
		t.Fatal(err)
	}

	_, err = New(m).Run(context.Background(), Config{Sweeps: 1})
	if !errors.Is(err, lattice.ErrNoDynamics) {
		t.Errorf("expected ErrNoDynamics, got %v", err)
	}
}

func TestRunWithCallbackEarlyStop(t *testing.T) {
	runner := New(newTestModel(t))

	calls := 0
	err := runner.RunWithCallback(context.Background(), Config{Sweeps: 50}, func(grid [][]float64, sweep int, energy, magnetism float64) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("callback ran %d times, want 3", calls)
	}
}
