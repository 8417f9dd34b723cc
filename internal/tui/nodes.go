package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshNodeTable rebuilds the node table from the nodes the last draw
// reported, matched or not.
func (m *Model) refreshNodeTable() {
	nodes := m.layer.reported
	if len(nodes) == 0 {
		m.showNodes = false
		m.status = "no features to list"
		return
	}
	field := m.chart.Config().ValueField
	tcols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "key", Width: 8},
		{Title: "name", Width: 24},
		{Title: field, Width: max(10, min(len(field)+2, 16))},
		{Title: "color", Width: 9},
	}
	trows := make([]table.Row, 0, len(nodes))
	for i, n := range nodes {
		value, color := "", ""
		if v, ok := n.Value(); ok {
			value = m.chart.FormatValue(v)
		}
		if st, ok := m.chart.Style(n); ok {
			color = st.FillColor
		}
		trows = append(trows, table.Row{fmt.Sprintf("%d", i+1), n.Key, m.chart.Name(n), value, color})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}
