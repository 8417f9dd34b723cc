package choropleth

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choromap/internal/geom"
)

func TestNormalize_Selection(t *testing.T) {
	topo := topology(
		collection("states", "A", "B"),
		collection("municipios", "M1"),
	)

	tests := []struct {
		name     string
		selected []string
		want     []string
	}{
		{name: "all in document order", selected: nil, want: []string{"A", "B", "M1"}},
		{name: "single collection", selected: []string{"municipios"}, want: []string{"M1"}},
		{name: "list order wins", selected: []string{"municipios", "states"}, want: []string{"M1", "A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Normalize(topo, tt.selected, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(nodes))
		})
	}
}

func TestNormalize_UnknownCollection(t *testing.T) {
	_, err := Normalize(topology(collection("states", "A")), []string{"states", "missing"}, nil)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUnknownCollection))
	assert.Contains(t, err.Error(), "missing")
}

func TestNormalize_NilTopology(t *testing.T) {
	_, err := Normalize(nil, nil, nil)
	assert.True(t, eris.Is(err, ErrMissingConfiguration))
}

func TestNormalize_IDParsers(t *testing.T) {
	c := &collectionBuilder{name: "estados"}
	c.add(1, map[string]any{"cve_ent": "09"})
	c.add(12, map[string]any{})
	topo := topology(c.build())

	nodes, err := Normalize(topo, nil, PropertyID("cve_ent"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09", ""}, keys(nodes))

	nodes, err = Normalize(topo, nil, PaddedID(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "12"}, keys(nodes))

	nodes, err = Normalize(topo, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "12"}, keys(nodes))
}

func TestJoin_FirstMatchWins(t *testing.T) {
	nodes, err := Normalize(topology(collection("s", "A")), nil, nil)
	require.NoError(t, err)

	res := Join([]Record{
		{"code": "A", "pop": 1},
		{"code": "A", "pop": 2},
	}, nodes, "code", "pop", nil)

	assert.Equal(t, 1, res.Bound)
	v, ok := nodes[0].Value()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, Extent{Min: 1, Max: 2, Valid: true}, res.Extent)
}

func TestJoin_KeyCanonicalization(t *testing.T) {
	nodes, err := Normalize(topology(collection("s", "7", 8.0, " 9 ")), nil, nil)
	require.NoError(t, err)

	res := Join([]Record{
		{"id": 7, "v": 1},
		{"id": "8", "v": 2},
		{"id": json.Number("9"), "v": 3},
	}, nodes, "id", "v", nil)

	assert.Equal(t, 3, res.Bound)
	for _, n := range nodes {
		assert.True(t, n.Bound(), "node %q should bind", n.Key)
	}
}

func TestJoin_ExtentCoversUnmatchedRecords(t *testing.T) {
	nodes, err := Normalize(topology(collection("s", "A")), nil, nil)
	require.NoError(t, err)

	res := Join([]Record{
		{"code": "A", "pop": 50},
		{"code": "Z", "pop": -4},
		{"code": "Y", "pop": 900},
		{"code": "X", "pop": "sin dato"},
		{"code": "W"},
	}, nodes, "code", "pop", nil)

	assert.Equal(t, Extent{Min: -4, Max: 900, Valid: true}, res.Extent)
	assert.Equal(t, 1, res.Bound)
}

func TestJoin_UnmatchedDropsStaleProperty(t *testing.T) {
	c := &collectionBuilder{name: "s"}
	c.add("A", map[string]any{"pop": 123})
	nodes, err := Normalize(topology(c.build()), nil, nil)
	require.NoError(t, err)

	Join([]Record{{"code": "B", "pop": 1}}, nodes, "code", "pop", nil)
	_, ok := nodes[0].Value()
	assert.False(t, ok)
	assert.False(t, nodes[0].Bound())
}

func TestJoin_EmptyKeysNeverMatch(t *testing.T) {
	nodes, err := Normalize(topology(collection("s", nil)), nil, nil)
	require.NoError(t, err)
	res := Join([]Record{{"code": "", "pop": 1}, {"pop": 2}}, nodes, "code", "pop", nil)
	assert.Zero(t, res.Bound)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{in: 3, want: 3, ok: true},
		{in: int64(-2), want: -2, ok: true},
		{in: float32(1.5), want: 1.5, ok: true},
		{in: " 4.25 ", want: 4.25, ok: true},
		{in: json.Number("12"), want: 12, ok: true},
		{in: "", ok: false},
		{in: "abc", ok: false},
		{in: "NaN", ok: false},
		{in: nil, ok: false},
		{in: true, ok: false},
	}
	for _, tt := range tests {
		got, ok := Number(tt.in)
		assert.Equal(t, tt.ok, ok, "input %#v", tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9)
		}
	}
}

type collectionBuilder struct {
	name     string
	features []*geojson.Feature
}

func (b *collectionBuilder) add(id any, props map[string]any) {
	b.features = append(b.features, feature(id, props))
}

func (b *collectionBuilder) build() *geom.Collection {
	return &geom.Collection{Name: b.name, Features: b.features}
}
