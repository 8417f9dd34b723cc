package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"choromap/internal/choropleth"
)

const swatch = "██"

func swatchOf(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(swatch)
}

// renderLegend draws the legend box. Swatch rows are listed highest bucket
// first, so the bottom label sits under the lowest swatch; a gradient is a
// vertical ramp with its top and bottom labels.
func renderLegend(l choropleth.Legend) string {
	var lines []string
	if l.Title != "" {
		lines = append(lines, titleStyle.Render(l.Title))
	}

	switch {
	case l.Gradient != nil:
		g := l.Gradient
		lines = append(lines, dimStyle.Render(g.Top))
		for i := len(g.Stops) - 1; i >= 0; i-- {
			lines = append(lines, swatchOf(g.Stops[i]))
		}
		lines = append(lines, dimStyle.Render(g.Bottom))
	case len(l.Rows) > 0:
		for i := len(l.Rows) - 1; i >= 0; i-- {
			row := l.Rows[i]
			lines = append(lines, swatchOf(row.Color)+" "+row.Label)
			if row.BottomLabel != "" {
				lines = append(lines, "   "+dimStyle.Render(row.BottomLabel))
			}
		}
	default:
		if len(lines) == 0 {
			return ""
		}
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
