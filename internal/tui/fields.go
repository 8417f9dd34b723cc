package tui

import (
	list "github.com/charmbracelet/bubbles/list"
)

type fieldItem struct {
	name    string
	numeric bool
}

func (f fieldItem) Title() string { return f.name }
func (f fieldItem) Description() string {
	if f.numeric {
		return "numeric"
	}
	return "text"
}
func (f fieldItem) FilterValue() string { return f.name }

// refreshFields lists the dataset columns that can be mapped, numeric
// columns first. The join column is left out.
func (m *Model) refreshFields() {
	if m.data == nil {
		return
	}
	numeric := map[string]bool{}
	for _, c := range m.data.NumericColumns() {
		numeric[c] = true
	}
	id := m.chart.Config().IDField
	var items []list.Item
	for _, pass := range []bool{true, false} {
		for _, c := range m.data.Columns {
			if c == "" || c == id || numeric[c] != pass {
				continue
			}
			items = append(items, fieldItem{name: c, numeric: pass})
		}
	}
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no mappable columns in dataset"
	}
}

// selectField maps field and redraws. The legend title follows the field
// unless it was set to something else.
func (m *Model) selectField(field string) {
	cfg := m.chart.Config()
	if cfg.LegendTitle == "" || cfg.LegendTitle == cfg.ValueField {
		m.chart.ColorLegend(field)
	}
	m.chart.Fill(field)
	if err := m.redraw(); err != nil {
		m.status = "draw error: " + err.Error()
		return
	}
	m.status = m.summary()
}
