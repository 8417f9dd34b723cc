package choropleth

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestChart_TwoRecordScenario(t *testing.T) {
	records := []Record{
		{"code": "A", "pop": 10},
		{"code": "B", "pop": 90},
	}
	c := newChart().ID("code").Fill("pop")
	require.NoError(t, c.Data(records, topology(collection("states", "A", "B"))))

	assert.Equal(t, Extent{Min: 10, Max: 90, Valid: true}, c.Extent())

	nodes := c.Nodes()
	require.Len(t, nodes, 2)
	styleA, ok := c.Style(nodes[0])
	require.True(t, ok)
	assert.Equal(t, DefaultPalette[0], styleA.FillColor)
	styleB, ok := c.Style(nodes[1])
	require.True(t, ok)
	assert.Equal(t, DefaultPalette[4], styleB.FillColor)

	legend := c.Legend()
	require.Len(t, legend.Rows, 5)
	labels := make([]string, 0, 5)
	for _, row := range legend.Rows {
		labels = append(labels, row.Label)
	}
	assert.Equal(t, []string{"26", "42", "58", "74", "90"}, labels)
	assert.Equal(t, "10", legend.Rows[0].BottomLabel)
	for _, row := range legend.Rows[1:] {
		assert.Empty(t, row.BottomLabel)
	}
}

func TestChart_StyleDefaults(t *testing.T) {
	c := newChart().ID("code").Fill("pop")
	require.NoError(t, c.Data([]Record{{"code": "A", "pop": 1}}, topology(collection("s", "A"))))

	s, ok := c.Style(c.Nodes()[0])
	require.True(t, ok)
	assert.InDelta(t, 0.7, s.FillOpacity, 1e-9)
	assert.Equal(t, "#555555", s.BorderColor)
	assert.InDelta(t, 1.0, s.BorderWeight, 1e-9)
	assert.InDelta(t, 0.5, s.BorderOpacity, 1e-9)

	c.Opacity(0.3)
	s, ok = c.Style(c.Nodes()[0])
	require.True(t, ok)
	assert.InDelta(t, 0.3, s.FillOpacity, 1e-9)
}

func TestChart_DataReplacesPreviousState(t *testing.T) {
	topo := topology(collection("states", "A", "B"))
	c := newChart().ID("code").Fill("pop")

	require.NoError(t, c.Data([]Record{{"code": "A", "pop": 10}, {"code": "B", "pop": 90}}, topo))
	first := c.Nodes()

	require.NoError(t, c.Data([]Record{{"code": "A", "pop": 5}}, topo))
	assert.Equal(t, Extent{Min: 5, Max: 5, Valid: true}, c.Extent())

	nodes := c.Nodes()
	require.Len(t, nodes, 2)
	assert.NotSame(t, first[0], nodes[0])
	v, ok := nodes[0].Value()
	require.True(t, ok)
	assert.Equal(t, 5, v)
	_, ok = nodes[1].Value()
	assert.False(t, ok, "B lost its record and must not keep the old value")

	// the topology itself is never written to
	for _, f := range topo.Collections[0].Features {
		_, has := f.Properties["pop"]
		assert.False(t, has)
	}
}

func TestChart_DataMissingConfiguration(t *testing.T) {
	topo := topology(collection("s", "A"))
	tests := []struct {
		name  string
		chart *Chart
		topo  bool
	}{
		{name: "no id field", chart: newChart().Fill("pop"), topo: true},
		{name: "no value field", chart: newChart().ID("code"), topo: true},
		{name: "no topology", chart: newChart().ID("code").Fill("pop"), topo: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.topo {
				err = tt.chart.Data(nil, topo)
			} else {
				err = tt.chart.Data(nil, nil)
			}
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrMissingConfiguration))
			assert.Nil(t, tt.chart.Nodes())
		})
	}
}

func TestChart_UnknownCollectionKeepsPreviousState(t *testing.T) {
	topo := topology(collection("states", "A"))
	c := newChart().ID("code").Fill("pop")
	require.NoError(t, c.Data([]Record{{"code": "A", "pop": 3}}, topo))

	c.Collections("states", "municipios")
	err := c.Data([]Record{{"code": "A", "pop": 4}}, topo)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownCollection))
	assert.Equal(t, Extent{Min: 3, Max: 3, Valid: true}, c.Extent())
}

func TestChart_ColorsReplacesScale(t *testing.T) {
	c := newChart()

	palette := []string{"#000000", "#ffffff"}
	c.Colors(palette)
	q, ok := c.Scale().(*Quantize)
	require.True(t, ok)
	assert.Equal(t, palette, q.Range())

	c.Colors(func(v any) string { return "#123456" })
	assert.Equal(t, KindFunc, c.Scale().Kind())
	color, ok := c.Scale().ColorAt(1)
	require.True(t, ok)
	assert.Equal(t, "#123456", color)

	// a palette after a custom function installs a fresh quantize scale
	c.Colors([]string{"#111111", "#222222", "#333333"})
	q, ok = c.Scale().(*Quantize)
	require.True(t, ok)
	assert.Len(t, q.Range(), 3)

	c.Colors(NewOrdinal(CategoricalPalette))
	assert.Equal(t, KindOrdinal, c.Scale().Kind())
}

func TestChart_InvalidColorInputIsIgnored(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := New(WithLogger(zap.New(core)))
	before := c.Scale()

	c.Colors(42)
	c.Colors([]string{})
	c.Colors(nil)

	assert.Same(t, before, c.Scale())
	assert.Equal(t, 3, logs.FilterMessage("choropleth: ignoring color input").Len())
}

func TestChart_TypedNilScaleIsIgnored(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := New(WithLogger(zap.New(core))).ID("code").Fill("pop")
	before := c.Scale()

	var q *Quantize
	var o *Ordinal
	c.Colors(q).Colors(o)
	assert.Same(t, before, c.Scale())
	assert.Equal(t, 2, logs.FilterMessage("choropleth: ignoring color input").Len())

	require.NoError(t, c.Data([]Record{{"code": "A", "pop": 5}}, topology(collection("s", "A"))))
	layer, err := c.Draw(&recorder{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, keys(layer.Rendered))
}

func TestChart_LastSetterWins(t *testing.T) {
	c := newChart().ID("a").ID("code").Fill("x").Fill("pop").ColorLegend("one").ColorLegend("two")
	cfg := c.Config()
	assert.Equal(t, "code", cfg.IDField)
	assert.Equal(t, "pop", cfg.ValueField)
	assert.Equal(t, "two", cfg.LegendTitle)
}

func TestChart_FilterAppliedBeforeJoin(t *testing.T) {
	records := []Record{
		{"code": "A", "pop": 10, "year": 2020},
		{"code": "A", "pop": 20, "year": 2021},
		{"code": "B", "pop": 500, "year": 2020},
	}
	c := newChart().ID("code").Fill("pop").Filter(func(r Record) bool { return r["year"] == 2021 })
	require.NoError(t, c.Data(records, topology(collection("s", "A", "B"))))

	assert.Equal(t, Extent{Min: 20, Max: 20, Valid: true}, c.Extent())
	assert.Len(t, c.Records(), 1)
	v, ok := c.Nodes()[0].Value()
	require.True(t, ok)
	assert.Equal(t, 20, v)
	assert.False(t, c.Nodes()[1].Bound())
}

func TestChart_OrdinalDomainSeededFromNodes(t *testing.T) {
	records := []Record{
		{"code": "A", "party": "verde"},
		{"code": "B", "party": "azul"},
		{"code": "C", "party": "verde"},
	}
	c := newChart().ID("code").Fill("party").Colors(NewOrdinal([]string{"#00ff00", "#0000ff"}))
	require.NoError(t, c.Data(records, topology(collection("s", "C", "B", "A"))))

	o := c.Scale().(*Ordinal)
	assert.Equal(t, []string{"verde", "azul"}, o.Domain())

	// a second load starts from an empty implicit domain
	require.NoError(t, c.Data([]Record{{"code": "A", "party": "rojo"}}, topology(collection("s", "A"))))
	assert.Equal(t, []string{"rojo"}, o.Domain())
}

func TestChart_NoNumericValuesResetsDomain(t *testing.T) {
	c := newChart().ID("code").Fill("pop")
	require.NoError(t, c.Data([]Record{{"code": "A", "pop": 10}, {"code": "B", "pop": 30}}, topology(collection("s", "A", "B"))))
	require.NoError(t, c.Data([]Record{{"code": "A", "pop": "n/a"}}, topology(collection("s", "A"))))

	assert.False(t, c.Extent().Valid)
	lo, hi := c.Scale().(*Quantize).Domain()
	assert.Equal(t, [2]float64{0, 1}, [2]float64{lo, hi})
	_, ok := c.Style(c.Nodes()[0])
	assert.False(t, ok, "non-numeric value cannot be colored by a quantize scale")
}

func TestChart_ChartsAreIndependent(t *testing.T) {
	a := newChart().Colors([]string{"#000000", "#ffffff"})
	b := newChart()
	assert.Equal(t, DefaultPalette, b.Scale().(*Quantize).Range())
	assert.Len(t, a.Scale().(*Quantize).Range(), 2)
}
