package lattice

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestMetropolisAcceptsNonPositive(t *testing.T) {
	src := &scriptedSource{}
	m, err := New(Config{Rows: 3, Cols: 3, Temperature: 1.0, Source: src})
	if err != nil {
		t.Fatal(err)
	}
	src.floatDraws = 0

	for _, delta := range []float64{0, -0.5, -8, -1e9} {
		if !m.Metropolis(delta) {
			t.Errorf("Metropolis(%v) = false, want true", delta)
		}
	}
	if src.floatDraws != 0 {
		t.Errorf("non-positive deltas consumed %d draws, want 0", src.floatDraws)
	}
}

func TestMetropolisPositiveDelta(t *testing.T) {
	// kB=1, T=1: acceptance probability for delta=2 is exp(-2).
	p := math.Exp(-2)

	src := &scriptedSource{floats: []float64{p - 1e-6, p + 1e-6}}
	m, err := New(Config{Rows: 3, Cols: 3, Temperature: 1.0, Source: src})
	if err != nil {
		t.Fatal(err)
	}
	src.floatDraws = 0

	if !m.Metropolis(2) {
		t.Error("draw below exp(-2) should accept")
	}
	if m.Metropolis(2) {
		t.Error("draw above exp(-2) should reject")
	}
	if src.floatDraws != 2 {
		t.Errorf("positive deltas consumed %d draws, want 2", src.floatDraws)
	}
}

func TestMetropolisFractionalDelta(t *testing.T) {
	// base**delta must behave as a real exponent, not an integer power.
	m, err := New(Config{Rows: 2, Cols: 2, Temperature: 2.0, KB: 1.5, Source: &scriptedSource{floats: []float64{0.5}}})
	if err != nil {
		t.Fatal(err)
	}
	want := math.Exp(-0.7 / (1.5 * 2.0))
	if got := math.Pow(m.baseExp, 0.7); math.Abs(got-want) > 1e-12 {
		t.Errorf("base**0.7 = %v, want %v", got, want)
	}
}

func TestGlauberRejectedLeavesGridIdentical(t *testing.T) {
	// Aligned lattice: any flip costs +8, so a draw of 0.999 rejects.
	src := &scriptedSource{ints: []int{1, 2}, floats: []float64{0.999}}
	m, err := New(Config{Rows: 3, Cols: 3, Dynamics: Glauber, Temperature: 1.0, Start: StartCold, Source: src})
	if err != nil {
		t.Fatal(err)
	}

	before := m.Snapshot()
	if err := m.GlauberUpdate(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, m.Grid()) {
		t.Error("rejected move mutated the grid")
	}
	if src.floatDraws != 1 {
		t.Errorf("rejected uphill move consumed %d draws, want 1", src.floatDraws)
	}
}

func TestGlauberAcceptedFlipsSpin(t *testing.T) {
	src := &scriptedSource{ints: []int{1, 1}, floats: []float64{0.0}}
	m, err := New(Config{Rows: 3, Cols: 3, Dynamics: Glauber, Temperature: 1.0, Start: StartCold, Source: src})
	if err != nil {
		t.Fatal(err)
	}

	if err := m.GlauberUpdate(); err != nil {
		t.Fatal(err)
	}
	if m.Grid()[1][1] != -1.0 {
		t.Errorf("accepted flip left spin %v", m.Grid()[1][1])
	}
}

func TestGlauberDownhillSkipsDraw(t *testing.T) {
	src := &scriptedSource{ints: []int{1, 1}}
	m, err := New(Config{Rows: 3, Cols: 3, Dynamics: Glauber, Temperature: 1.0, Start: StartCold, Source: src})
	if err != nil {
		t.Fatal(err)
	}
	fillGrid(m, [][]float64{
		{1, -1, 1},
		{-1, 1, -1},
		{1, -1, 1},
	})

	if err := m.GlauberUpdate(); err != nil {
		t.Fatal(err)
	}
	if m.Grid()[1][1] != -1.0 {
		t.Error("downhill flip should always be accepted")
	}
	if src.floatDraws != 0 {
		t.Errorf("downhill move consumed %d draws, want 0", src.floatDraws)
	}
}

func TestGlauberRequiresTemperature(t *testing.T) {
	m, err := New(Config{Rows: 3, Cols: 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.GlauberUpdate(); !errors.Is(err, ErrInvalidTemperature) {
		t.Errorf("expected ErrInvalidTemperature, got %v", err)
	}
	if err := m.KawasakiUpdate(); !errors.Is(err, ErrInvalidTemperature) {
		t.Errorf("expected ErrInvalidTemperature, got %v", err)
	}
}

func TestKawasakiRedrawsOnDuplicatePair(t *testing.T) {
	// First attempt selects the same site twice; all four coordinates
	// are redrawn before the exchange between (0,1) and (1,0).
	src := &scriptedSource{ints: []int{2, 2, 2, 2, 0, 1, 1, 0}}
	m, err := New(Config{Rows: 3, Cols: 3, Dynamics: Kawasaki, Temperature: 1.0, Start: StartCold, Source: src})
	if err != nil {
		t.Fatal(err)
	}
	fillGrid(m, [][]float64{
		{1, -1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})

	if err := m.KawasakiUpdate(); err != nil {
		t.Fatal(err)
	}
	if src.ii != 8 {
		t.Errorf("consumed %d integer draws, want 8", src.ii)
	}
	if m.Grid()[0][1] != 1.0 || m.Grid()[1][0] != -1.0 {
		t.Errorf("exchange not applied: got %v and %v", m.Grid()[0][1], m.Grid()[1][0])
	}
}

func TestKawasakiEqualSpinsNoOp(t *testing.T) {
	src := &scriptedSource{ints: []int{0, 0, 1, 1}, floats: []float64{0.999}}
	m, err := New(Config{Rows: 3, Cols: 3, Dynamics: Kawasaki, Temperature: 1.0, Start: StartCold, Source: src})
	if err != nil {
		t.Fatal(err)
	}

	before := m.Snapshot()
	if err := m.KawasakiUpdate(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, m.Grid()) {
		t.Error("equal-spin exchange mutated the grid")
	}
	if src.floatDraws != 0 {
		t.Errorf("equal-spin exchange consumed %d acceptance draws, want 0", src.floatDraws)
	}
}

func TestKawasakiEnergyNoAdjacencyCorrection(t *testing.T) {
	m, err := New(Config{Rows: 3, Cols: 3, Dynamics: Kawasaki, Temperature: 1.0, Start: StartCold, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	fillGrid(m, [][]float64{
		{1, -1, 1},
		{-1, 1, -1},
		{1, -1, 1},
	})

	// Adjacent opposite sites: the delta is the plain sum of both flip
	// costs, with no shared-bond correction.
	want := 2*m.EnergyAt(1, 1) + 2*m.EnergyAt(1, 2)
	if got := m.KawasakiEnergy(1, 1, 1, 2); got != want {
		t.Errorf("KawasakiEnergy = %v, want %v", got, want)
	}
}

func TestKawasakiConservesTotalSpin(t *testing.T) {
	m, err := New(Config{Rows: 8, Cols: 8, Dynamics: Kawasaki, Temperature: 2.0, Seed: 17})
	if err != nil {
		t.Fatal(err)
	}

	sum := func() float64 {
		s := 0.0
		for _, row := range m.Grid() {
			for _, v := range row {
				s += v
			}
		}
		return s
	}

	before := sum()
	for n := 0; n < 5; n++ {
		if err := m.Sweep(); err != nil {
			t.Fatal(err)
		}
	}
	if after := sum(); after != before {
		t.Errorf("total spin changed under exchange dynamics: %v -> %v", before, after)
	}
}

func TestKawasakiSingleSite(t *testing.T) {
	m, err := New(Config{Rows: 1, Cols: 1, Dynamics: Kawasaki, Temperature: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.KawasakiUpdate(); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("expected ErrInvalidShape, got %v", err)
	}
}

func TestSweepRequiresDynamics(t *testing.T) {
	m, err := New(Config{Rows: 3, Cols: 3, Temperature: 1.0})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Sweep(); !errors.Is(err, ErrNoDynamics) {
		t.Errorf("expected ErrNoDynamics, got %v", err)
	}
}

func TestSweepPreservesSpinInvariant(t *testing.T) {
	m, err := New(Config{Rows: 8, Cols: 8, Dynamics: Glauber, Temperature: 2.269, Seed: 23})
	if err != nil {
		t.Fatal(err)
	}
	for n := 0; n < 20; n++ {
		if err := m.Sweep(); err != nil {
			t.Fatal(err)
		}
	}
	for i, row := range m.Grid() {
		for j, s := range row {
			if s != 1.0 && s != -1.0 {
				t.Fatalf("cell (%d,%d) left unit range: %v", i, j, s)
			}
		}
	}
}
