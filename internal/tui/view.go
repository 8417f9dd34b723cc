package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	_, _, mapWidth, mapHeight := m.mapRect()
	contentWidth := max(10, m.width)

	// Header
	title := " choromap ─ " + m.chart.Config().ValueField + " "
	header := titleStyle.Render(title)
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	if m.showNodes {
		// Render node table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(mapWidth, max(32, colW))
		tbl := m.tbl
		tbl.SetWidth(maxW - 4)
		tbl.SetHeight(min(mapHeight-2, 20))
		nodesBox := boxStyle.Width(maxW).Render(tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, nodesBox)
	} else {
		canvas := strings.Join(renderMap(m.layer, m.view, mapWidth, mapHeight).toLines(), "\n")
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(canvas)
		if m.showLegend && m.layer.hasLeg {
			if legend := renderLegend(m.layer.legend); legend != "" {
				mapView = overlayRight(mapView, legend, mapWidth)
			}
		}
	}

	// Tooltip or inspect popup above the body
	popup := ""
	text := m.layer.tooltip
	if m.inspectPopup != "" {
		text = m.inspectPopup
	}
	if text != "" && !m.showNodes {
		box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MaxWidth(max(20, min(48, contentWidth/2))).Render(text)
		popup = lipgloss.PlaceHorizontal(contentWidth, lipgloss.Left, box)
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	// mouse coords at bottom-right
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// overlayRight replaces the right edge of the top lines of base with box.
func overlayRight(base, box string, width int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	boxW := lipgloss.Width(box)
	if boxW >= width {
		return base
	}
	for i, bl := range boxLines {
		if i >= len(baseLines) {
			break
		}
		left := truncateVisible(baseLines[i], width-boxW)
		baseLines[i] = left + bl
	}
	return strings.Join(baseLines, "\n")
}

// truncateVisible cuts s to n visible cells and pads it back to n.
func truncateVisible(s string, n int) string {
	cut := lipgloss.NewStyle().MaxWidth(n).Render(s)
	if pad := n - lipgloss.Width(cut); pad > 0 {
		cut += strings.Repeat(" ", pad)
	}
	return cut
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"Tab fields",
		"Enter map",
		"g gradient",
		"l legend",
		"a nodes",
		"i inspect",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
