// Package lattice implements a 2D Ising spin lattice under Metropolis
// Monte Carlo dynamics.
//
// A [Model] owns a toroidal grid of spins, each exactly +1.0 or -1.0,
// together with the coupling constant, the Boltzmann constant and the
// run temperature. Two update rules are provided:
//
//   - [Model.GlauberUpdate]: single-spin-flip move
//   - [Model.KawasakiUpdate]: two-site spin-exchange move
//
// Both decide acceptance with the same Metropolis test, so one "sweep"
// ([Model.Sweep]) performs rows*cols elementary moves of the configured
// dynamics.
//
// # Reproducibility
//
// The model draws from a single sequential random stream. A fixed seed
// (or an injected [Source]) yields a bit-identical trajectory, which
// the update rules preserve by consuming draws in a fixed order and by
// skipping the acceptance draw entirely when the energy change is not
// positive.
package lattice
