package tui

import (
	"fmt"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"choromap/internal/choropleth"
)

// Layout constants shared by Update and View.
const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// mapRect returns the map origin and size for the current window.
func (m Model) mapRect() (x, y, w, h int) {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
		x = sidebarWidth + 1
	}
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	w = max(10, contentWidth-sw-1)
	return x, headerHeight, w, contentHeight
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			_, _, _, h := m.mapRect()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.showNodes {
			switch msg.String() {
			case "esc", "a":
				m.showNodes = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.view.zoom < 64 {
				m.view.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.view.zoom)
			}
		case "-", "_":
			if m.view.zoom > 0.05 {
				m.view.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.view.zoom)
			}
		case "0":
			m.view.zoom = 1.0
			m.view.offsetX, m.view.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshFields()
				_, _, _, h := m.mapRect()
				m.l.SetSize(sidebarWidth-2, h-2)
			}
			return m, nil
		case "h":
			m.helpVisible = !m.helpVisible
		case "l":
			m.showLegend = !m.showLegend
		case "g":
			layout := choropleth.LayoutGradient
			if m.chart.Config().LegendLayout == choropleth.LayoutGradient {
				layout = choropleth.LayoutSwatch
			}
			m.chart.LegendLayout(layout)
			if err := m.redraw(); err != nil {
				m.status = "draw error: " + err.Error()
			} else {
				m.status = "legend: " + string(layout)
			}
		case "a":
			m.showNodes = true
			m.refreshNodeTable()
			return m, nil
		case "i":
			m.inspectPopup, m.status = m.inspect()
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fieldItem); ok {
					m.selectField(it.name)
				}
				return m, nil
			}
		case "up":
			m.view.offsetY -= 1
		case "down":
			m.view.offsetY += 1
		case "left":
			m.view.offsetX -= 2
		case "right":
			m.view.offsetX += 2
		}
	case tea.MouseMsg:
		m.mouseMove(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// mouseMove tracks the pointer over the map and drives the hover handlers.
func (m *Model) mouseMove(x, y int) {
	ox, oy, w, h := m.mapRect()
	if x < ox || x >= ox+w || y < oy || y >= oy+h {
		m.hoverHasGeo = false
		m.layer.hover(nil)
		return
	}
	lon, lat, ok := m.view.cellToLonLat(x-ox, y-oy, w, h)
	if !ok {
		m.hoverHasGeo = false
		m.layer.hover(nil)
		return
	}
	m.hoverHasGeo = true
	m.hoverLon, m.hoverLat = lon, lat
	m.layer.hover(m.layer.nodeAt(orb.Point{lon, lat}))
}

// inspect describes the feature under the viewport center.
func (m Model) inspect() (popup, status string) {
	_, _, w, h := m.mapRect()
	lon, lat, ok := m.view.cellToLonLat(w/2, h/2, w, h)
	if !ok {
		return "", "nothing to inspect"
	}
	n := m.layer.nodeAt(orb.Point{lon, lat})
	if n == nil {
		return "", "no feature at center"
	}
	meta := []string{
		fmt.Sprintf("name: %s", m.chart.Name(n)),
		fmt.Sprintf("collection: %s", n.Collection),
		fmt.Sprintf("key: %s", n.Key),
	}
	if st, ok := m.chart.Style(n); ok {
		meta = append(meta, fmt.Sprintf("fill: %s", st.FillColor))
	}
	props := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		props = append(props, k)
	}
	sort.Strings(props)
	for _, k := range props {
		meta = append(meta, fmt.Sprintf("%s: %v", k, n.Properties[k]))
	}
	return strings.Join(meta, "\n"), "inspect " + n.Key
}
