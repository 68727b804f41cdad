package lattice

import "math/rand"

// Source is the random stream consumed by a Model. It is satisfied by
// *math/rand.Rand; tests inject scripted implementations to force
// specific accept/reject decisions.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

func newSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
