package geom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeShapefile creates a polygon shapefile with a CVE attribute column.
func writeShapefile(t *testing.T, path string) {
	t.Helper()
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("CVE", 4),
		shp.StringField("NOMBRE", 16),
	}))

	// clockwise outer ring with a counter-clockwise hole
	withHole := shp.Polygon(*shp.NewPolyLine([][]shp.Point{
		{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}, {X: 0, Y: 0}},
		{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}, {X: 1, Y: 1}},
	}))
	plain := shp.Polygon(*shp.NewPolyLine([][]shp.Point{
		{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 6, Y: 1}, {X: 6, Y: 0}, {X: 5, Y: 0}},
	}))
	w.Write(&withHole)
	w.Write(&plain)

	require.NoError(t, w.WriteAttribute(0, 0, "01"))
	require.NoError(t, w.WriteAttribute(0, 1, "Aguascalientes"))
	require.NoError(t, w.WriteAttribute(1, 0, "02"))
	require.NoError(t, w.WriteAttribute(1, 1, "Baja"))
	w.Close()
}

func TestLoadShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entidades.shp")
	writeShapefile(t, path)

	topo, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"entidades"}, topo.Names())

	coll, _ := topo.Collection("entidades")
	require.Len(t, coll.Features, 2)

	first := coll.Features[0]
	assert.Equal(t, 0, first.ID)
	assert.Equal(t, "01", first.Properties["CVE"])
	assert.Equal(t, "Aguascalientes", first.Properties["NOMBRE"])
	poly, ok := first.Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, poly, 2, "hole kept with its outer ring")

	second := coll.Features[1]
	assert.Equal(t, "Baja", second.Properties["NOMBRE"])
	assert.IsType(t, orb.Polygon{}, second.Geometry)
}

func TestLoadShapefile_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entidades.shp")
	writeShapefile(t, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, info.Size()-20))

	_, err = LoadShapefile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read shapefile")
}

func TestLoadShapefile_Missing(t *testing.T) {
	_, err := LoadShapefile(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}

func TestRingsToPolygons(t *testing.T) {
	cw := []orb.Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}
	cw2 := []orb.Point{{2, 0}, {2, 1}, {3, 1}, {3, 0}, {2, 0}}

	g := ringsToPolygons([][]orb.Point{cw, cw2})
	mp, ok := g.(orb.MultiPolygon)
	require.True(t, ok)
	assert.Len(t, mp, 2)

	assert.Nil(t, ringsToPolygons([][]orb.Point{{{0, 0}, {1, 1}}}))
}
