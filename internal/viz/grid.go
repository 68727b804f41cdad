package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

const (
	upCell   = "██"
	downCell = "░░"
)

// RenderGrid draws the spin grid, one line per lattice row. Cells are
// two characters wide so the lattice renders roughly square.
func RenderGrid(grid [][]float64) string {
	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, s := range row {
			if s > 0 {
				b.WriteString(upStyle.Render(upCell))
			} else {
				b.WriteString(downStyle.Render(downCell))
			}
		}
	}
	return b.String()
}
