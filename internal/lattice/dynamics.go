package lattice

import "math"

// Metropolis decides whether a move with the given energy change is
// accepted. Non-positive changes are accepted without touching the
// random stream; positive changes consume exactly one uniform draw.
func (m *Model) Metropolis(delta float64) bool {
	if delta <= 0 {
		return true
	}
	// baseExp**delta == exp(-delta/(kB*T)) for any real delta.
	return m.rng.Float64() <= math.Pow(m.baseExp, delta)
}

// GlauberEnergy returns the energy change of flipping the spin at
// (i, j). The Hamiltonian is linear in the site's spin, so the change
// is twice the site's current local contribution.
func (m *Model) GlauberEnergy(i, j int) float64 {
	return 2 * m.EnergyAt(i, j)
}

// GlauberUpdate performs one single-spin-flip move: a random site is
// drawn (row first, then column), and its spin is negated if the
// Metropolis test accepts the flip.
func (m *Model) GlauberUpdate() error {
	if err := m.requireTemperature(); err != nil {
		return err
	}
	i := m.rng.Intn(m.rows)
	j := m.rng.Intn(m.cols)
	if m.Metropolis(m.GlauberEnergy(i, j)) {
		m.grid[i][j] = -m.grid[i][j]
	}
	return nil
}

// KawasakiEnergy returns the energy change used for a spin exchange
// between the two sites: the sum of both single-flip costs. No
// adjacency correction is applied when the sites share a bond.
func (m *Model) KawasakiEnergy(i1, j1, i2, j2 int) float64 {
	return 2*m.EnergyAt(i1, j1) + 2*m.EnergyAt(i2, j2)
}

// KawasakiUpdate performs one spin-exchange move. Two sites are drawn
// (four uniform integer draws in the order i1, j1, i2, j2), redrawing
// all four only when both coordinates coincide exactly. Equal spins
// make the move a no-op; opposite spins are exchanged by negating both
// when the Metropolis test accepts.
func (m *Model) KawasakiUpdate() error {
	if err := m.requireTemperature(); err != nil {
		return err
	}
	// A single-site lattice has no distinct pair to draw.
	if m.rows*m.cols < 2 {
		return ErrInvalidShape
	}
	var i1, j1, i2, j2 int
	for {
		i1 = m.rng.Intn(m.rows)
		j1 = m.rng.Intn(m.cols)
		i2 = m.rng.Intn(m.rows)
		j2 = m.rng.Intn(m.cols)
		if i1 != i2 || j1 != j2 {
			break
		}
	}
	if m.grid[i1][j1] == m.grid[i2][j2] {
		return nil
	}
	if m.Metropolis(m.KawasakiEnergy(i1, j1, i2, j2)) {
		m.grid[i1][j1] = -m.grid[i1][j1]
		m.grid[i2][j2] = -m.grid[i2][j2]
	}
	return nil
}

// Sweep performs rows*cols elementary moves of the configured
// dynamics, the natural sampling interval for observables.
func (m *Model) Sweep() error {
	var step func() error
	switch m.dynamics {
	case Glauber:
		step = m.GlauberUpdate
	case Kawasaki:
		step = m.KawasakiUpdate
	default:
		return ErrNoDynamics
	}
	for n := 0; n < m.rows*m.cols; n++ {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) requireTemperature() error {
	if m.temperature <= 0 {
		return ErrInvalidTemperature
	}
	return nil
}
