package metrics

// MeanEnergy accumulates the running mean of the sampled total energy.
type MeanEnergy struct {
	name    string
	total   float64
	samples int
}

func NewMeanEnergy() *MeanEnergy {
	return &MeanEnergy{name: "mean_energy"}
}

func (m *MeanEnergy) Name() string { return m.name }

func (m *MeanEnergy) Observe(energy, magnetism float64) {
	m.total += energy
	m.samples++
}

func (m *MeanEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEnergy) Reset() {
	m.total = 0
	m.samples = 0
}

// MeanMagnetization accumulates the running mean of |M|.
type MeanMagnetization struct {
	name    string
	total   float64
	samples int
}

func NewMeanMagnetization() *MeanMagnetization {
	return &MeanMagnetization{name: "mean_magnetization"}
}

func (m *MeanMagnetization) Name() string { return m.name }

func (m *MeanMagnetization) Observe(energy, magnetism float64) {
	m.total += magnetism
	m.samples++
}

func (m *MeanMagnetization) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanMagnetization) Reset() {
	m.total = 0
	m.samples = 0
}
