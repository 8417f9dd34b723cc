package geom

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// LoadShapefile reads a shapefile and its DBF attributes into a single
// collection. The record number is the native feature id; attribute
// values are kept as trimmed strings.
func LoadShapefile(path string) (*Topology, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geom: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	coll := &Collection{Name: baseName(path)}
	var skipped int
	for reader.Next() {
		n, shape := reader.Shape()
		g := shapeGeometry(shape)
		if g == nil {
			skipped++
			continue
		}
		f := geojson.NewFeature(g)
		f.ID = n
		for i, name := range names {
			val := strings.TrimRight(reader.Attribute(i), "\x00")
			f.Properties[name] = strings.TrimSpace(val)
		}
		coll.Features = append(coll.Features, f)
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrapf(err, "geom: read shapefile %s", path)
	}

	if skipped > 0 {
		zap.L().Debug("geom: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return &Topology{Collections: []*Collection{coll}}, nil
}

func shapeGeometry(shape shp.Shape) orb.Geometry {
	switch s := shape.(type) {
	case *shp.Point:
		return orb.Point{s.X, s.Y}
	case *shp.PolyLine:
		parts := splitParts(s.Parts, s.Points)
		mls := make(orb.MultiLineString, 0, len(parts))
		for _, p := range parts {
			mls = append(mls, orb.LineString(p))
		}
		if len(mls) == 1 {
			return mls[0]
		}
		return mls
	case *shp.Polygon:
		return ringsToPolygons(splitParts(s.Parts, s.Points))
	}
	return nil
}

func splitParts(parts []int32, points []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(points) {
			continue
		}
		pts := make([]orb.Point, 0, end-start)
		for _, p := range points[start:end] {
			pts = append(pts, orb.Point{p.X, p.Y})
		}
		out = append(out, pts)
	}
	return out
}

// ringsToPolygons groups shapefile rings: clockwise rings open a new
// polygon, counter-clockwise rings are holes of the polygon before them.
func ringsToPolygons(rings [][]orb.Point) orb.Geometry {
	var mp orb.MultiPolygon
	for _, pts := range rings {
		if len(pts) < 3 {
			continue
		}
		ring := orb.Ring(pts)
		if ring.Orientation() == orb.CCW && len(mp) > 0 {
			last := len(mp) - 1
			mp[last] = append(mp[last], ring)
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}
	switch len(mp) {
	case 0:
		return nil
	case 1:
		return mp[0]
	}
	return mp
}
