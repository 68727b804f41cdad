// Package viz renders lattices and observable series in the terminal:
// lipgloss-styled spin grids, asciigraph time series, and a bubbletea
// live view that advances the model one frame at a time.
package viz
