package viz

import "github.com/guptarohit/asciigraph"

const (
	plotWidth  = 80
	plotHeight = 10
)

// PlotSeries renders one observable series as an ASCII line chart.
func PlotSeries(data []float64, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// Sparkline renders a compact series for the live view sidebar.
func Sparkline(data []float64, width int) string {
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(5),
		asciigraph.Width(width),
	)
}
