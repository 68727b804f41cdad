// Package analysis provides equilibrium analysis over families of
// lattice runs.
//
// [TemperatureSweep] runs one independent model per temperature and
// records mean energy, mean magnetization, specific heat and
// susceptibility at each point. [CriticalEstimate] locates the
// susceptibility peak, a finite-size estimate of the critical
// temperature (exact infinite-lattice value: [Onsager] ≈ 2.269).
package analysis
