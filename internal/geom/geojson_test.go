package geom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_FeatureCollection(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[
	  {"type":"Feature","id":"A","properties":{"name":"Norte"},
	   "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
	  {"type":"Feature","id":"B","properties":null,
	   "geometry":{"type":"Point","coordinates":[4,5]}}
	]}`
	topo, err := Decode("estados", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"estados"}, topo.Names())
	coll, _ := topo.Collection("estados")
	require.Len(t, coll.Features, 2)
	assert.Equal(t, "Norte", coll.Features[0].Properties["name"])
	assert.NotNil(t, coll.Features[1].Properties)

	bbox, ok := BoundOf(coll.Features)
	require.True(t, ok)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 5}, bbox)
}

func TestDecode_SingleFeature(t *testing.T) {
	doc := `{"type":"Feature","id":1,"properties":{},"geometry":{"type":"Point","coordinates":[1,2]}}`
	topo, err := Decode("one", []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, topo.Len())
}

func TestDecode_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"invalid":     `[1,2]`,
		"no type":     `{"features":[]}`,
		"unsupported": `{"type":"Polygon","coordinates":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode("x", []byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	topoPath := filepath.Join(dir, "mx.topojson")
	require.NoError(t, os.WriteFile(topoPath, []byte(testTopology), 0644))
	topo, err := Load(topoPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, topo.Names())

	geoPath := filepath.Join(dir, "municipios.geojson")
	require.NoError(t, os.WriteFile(geoPath, []byte(`{"type":"FeatureCollection","features":[]}`), 0644))
	topo, err = Load(geoPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"municipios"}, topo.Names())

	_, err = Load(filepath.Join(dir, "map.kml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestTopology_AddReplacesInPlace(t *testing.T) {
	topo := &Topology{}
	topo.Add(&Collection{Name: "a"})
	topo.Add(&Collection{Name: "b"})
	topo.Add(&Collection{Name: "a", Features: nil})
	assert.Equal(t, []string{"a", "b"}, topo.Names())

	_, ok := topo.Collection("c")
	assert.False(t, ok)
}

func TestBoundOf_Empty(t *testing.T) {
	_, ok := BoundOf(nil)
	assert.False(t, ok)
	assert.False(t, BBox{}.Valid())
}
