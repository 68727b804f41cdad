package export

import (
	"fmt"
	"strings"
)

// GridToSVG renders a spin grid as an SVG image, one square per site.
// Up spins are drawn, down spins show the background.
func GridToSVG(grid [][]float64, cellSize float64) string {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ""
	}

	rows := len(grid)
	cols := len(grid[0])
	width := float64(cols) * cellSize
	height := float64(rows) * cellSize

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a2a"/>
<g fill="#ff66cc">
`, width, height, width, height))

	for i, row := range grid {
		for j, s := range row {
			if s <= 0 {
				continue
			}
			x := float64(j) * cellSize
			y := float64(i) * cellSize
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, x, y, cellSize, cellSize))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG renders an observable series as an SVG polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if maxV == minV {
		maxV = minV + 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, width, height, width, height, strokeColor))

	margin := 10.0
	spanX := float64(width) - 2*margin
	spanY := float64(height) - 2*margin

	for i, v := range values {
		x := margin + spanX*float64(i)/float64(len(values)-1)
		y := margin + spanY*(1-(v-minV)/(maxV-minV))
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
