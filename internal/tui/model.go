package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"

	"choromap/internal/choropleth"
	"choromap/internal/dataset"
	"choromap/internal/geom"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	showLegend  bool

	view viewport

	status string

	// Chart and its sources
	chart *choropleth.Chart
	topo  *geom.Topology
	data  *dataset.Table
	layer *mapLayer
	drawn *choropleth.Layer

	// value field picker
	l list.Model

	// inspect popup
	inspectPopup string

	// hover state
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// node table
	showNodes bool
	tbl       table.Model
}

// New joins data onto topo through chart and draws the first frame. The
// chart's legend callback is taken over to feed the node table.
func New(chart *choropleth.Chart, topo *geom.Topology, data *dataset.Table) (Model, error) {
	m := Model{
		helpVisible: true,
		showLegend:  true,
		view:        viewport{zoom: 1.0},
		status:      "choromap ready",
		chart:       chart,
		topo:        topo,
		data:        data,
		layer:       newMapLayer(),
	}
	layer := m.layer
	chart.OnLegend(func(nodes []*choropleth.Node) { layer.reported = nodes })

	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Fields"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// node table setup (columns follow the mapped field)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	if err := m.redraw(); err != nil {
		return Model{}, err
	}
	m.refreshFields()
	if bb, ok := geom.BoundOf(features(chart.Nodes())); ok {
		m.view.bbox = bb
	}
	m.status = m.summary()
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

// redraw reruns the join and the draw.
func (m *Model) redraw() error {
	var records []choropleth.Record
	if m.data != nil {
		records = m.data.Records
	}
	if err := m.chart.Data(records, m.topo); err != nil {
		return eris.Wrap(err, "tui: data")
	}
	drawn, err := m.chart.Draw(m.layer)
	if err != nil {
		return eris.Wrap(err, "tui: draw")
	}
	m.drawn = drawn
	if m.showNodes {
		m.refreshNodeTable()
	}
	return nil
}

func (m Model) summary() string {
	if m.drawn == nil {
		return ""
	}
	return fmt.Sprintf("mapping %s  bound=%d omitted=%d", m.chart.Config().ValueField, len(m.drawn.Rendered), len(m.drawn.Omitted))
}

func features(nodes []*choropleth.Node) []*geojson.Feature {
	out := make([]*geojson.Feature, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Feature)
	}
	return out
}
