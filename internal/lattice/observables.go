package lattice

import "math"

// Magnetism returns the absolute value of the sum of all spins,
// in [0, rows*cols].
func (m *Model) Magnetism() float64 {
	sum := 0.0
	for i := range m.grid {
		for j := range m.grid[i] {
			sum += m.grid[i][j]
		}
	}
	return math.Abs(sum)
}

// Energy returns the total nearest-neighbor energy of the lattice.
// Each cell is paired with its wrapped up and left neighbors, so every
// bond is counted exactly once per axis; an all-aligned lattice of
// shape (R, C) yields -2*J*R*C.
func (m *Model) Energy() float64 {
	total := 0.0
	for i := range m.grid {
		for j := range m.grid[i] {
			total += m.grid[i][j] * (m.grid[Pbc(m.rows, i-1)][j] + m.grid[i][Pbc(m.cols, j-1)])
		}
	}
	return -m.energyJ * total
}

// EnergyAt returns the local energy contribution of site (i, j): the
// spin value times the sum of its four periodic neighbors, scaled by
// the coupling constant. Callers deriving a flip cost must account for
// the factor of two themselves (see GlauberEnergy).
func (m *Model) EnergyAt(i, j int) float64 {
	up := m.grid[Pbc(m.rows, i-1)][j]
	down := m.grid[Pbc(m.rows, i+1)][j]
	left := m.grid[i][Pbc(m.cols, j-1)]
	right := m.grid[i][Pbc(m.cols, j+1)]
	return m.energyJ * m.grid[i][j] * (up + down + left + right)
}
