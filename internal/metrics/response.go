package metrics

// SpecificHeat estimates the per-site specific heat from energy
// fluctuations: Var(E) / (kB * T^2 * N).
type SpecificHeat struct {
	name        string
	kB          float64
	temperature float64
	sites       int
	sum, sumSq  float64
	samples     int
}

func NewSpecificHeat(kB, temperature float64, sites int) *SpecificHeat {
	return &SpecificHeat{
		name:        "specific_heat",
		kB:          kB,
		temperature: temperature,
		sites:       sites,
	}
}

func (c *SpecificHeat) Name() string { return c.name }

func (c *SpecificHeat) Observe(energy, magnetism float64) {
	c.sum += energy
	c.sumSq += energy * energy
	c.samples++
}

func (c *SpecificHeat) Value() float64 {
	if c.samples == 0 || c.sites == 0 {
		return 0
	}
	n := float64(c.samples)
	mean := c.sum / n
	variance := c.sumSq/n - mean*mean
	if variance < 0 {
		variance = 0 // numerical noise on constant series
	}
	return variance / (c.kB * c.temperature * c.temperature * float64(c.sites))
}

func (c *SpecificHeat) Reset() {
	c.sum = 0
	c.sumSq = 0
	c.samples = 0
}

// Susceptibility estimates the per-site magnetic susceptibility from
// fluctuations of |M|: Var(|M|) / (kB * T * N).
type Susceptibility struct {
	name        string
	kB          float64
	temperature float64
	sites       int
	sum, sumSq  float64
	samples     int
}

func NewSusceptibility(kB, temperature float64, sites int) *Susceptibility {
	return &Susceptibility{
		name:        "susceptibility",
		kB:          kB,
		temperature: temperature,
		sites:       sites,
	}
}

func (s *Susceptibility) Name() string { return s.name }

func (s *Susceptibility) Observe(energy, magnetism float64) {
	s.sum += magnetism
	s.sumSq += magnetism * magnetism
	s.samples++
}

func (s *Susceptibility) Value() float64 {
	if s.samples == 0 || s.sites == 0 {
		return 0
	}
	n := float64(s.samples)
	mean := s.sum / n
	variance := s.sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return variance / (s.kB * s.temperature * float64(s.sites))
}

func (s *Susceptibility) Reset() {
	s.sum = 0
	s.sumSq = 0
	s.samples = 0
}
