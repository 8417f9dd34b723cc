package geom

import (
	"bytes"
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
)

type topoDoc struct {
	Type      string          `json:"type"`
	Transform *topoTransform  `json:"transform"`
	Arcs      [][][]float64   `json:"arcs"`
	Objects   json.RawMessage `json:"objects"`
}

type topoTransform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topoObject struct {
	Type        string          `json:"type"`
	ID          any             `json:"id"`
	Properties  map[string]any  `json:"properties"`
	Arcs        json.RawMessage `json:"arcs"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometries  []topoObject    `json:"geometries"`
}

// DecodeTopology parses a TopoJSON document. Every entry of "objects"
// becomes a collection; a GeometryCollection object yields one feature per
// member geometry, any other object yields a single feature.
func DecodeTopology(data []byte) (*Topology, error) {
	var doc topoDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "geom: decode topology")
	}
	if doc.Type != "Topology" {
		return nil, eris.Errorf("geom: not a topology document (type %q)", doc.Type)
	}
	names, objects, err := orderedObjects(doc.Objects)
	if err != nil {
		return nil, err
	}

	d := &arcDecoder{arcs: decodeArcs(doc.Arcs, doc.Transform), tf: doc.Transform}
	topo := &Topology{}
	for _, name := range names {
		obj := objects[name]
		coll := &Collection{Name: name}
		if obj.Type == "GeometryCollection" {
			for _, member := range obj.Geometries {
				f, err := d.feature(member)
				if err != nil {
					return nil, eris.Wrapf(err, "geom: object %q", name)
				}
				coll.Features = append(coll.Features, f)
			}
		} else {
			f, err := d.feature(obj)
			if err != nil {
				return nil, eris.Wrapf(err, "geom: object %q", name)
			}
			coll.Features = append(coll.Features, f)
		}
		topo.Add(coll)
	}
	return topo, nil
}

// orderedObjects walks the objects member token by token so collection
// order follows the document rather than map iteration.
func orderedObjects(raw json.RawMessage) ([]string, map[string]topoObject, error) {
	objects := map[string]topoObject{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, objects, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, eris.Wrap(err, "geom: read objects")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, eris.New("geom: topology objects must be an object")
	}
	var names []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, eris.Wrap(err, "geom: read object name")
		}
		name, _ := tok.(string)
		var obj topoObject
		if err := dec.Decode(&obj); err != nil {
			return nil, nil, eris.Wrapf(err, "geom: decode object %q", name)
		}
		if _, seen := objects[name]; !seen {
			names = append(names, name)
		}
		objects[name] = obj
	}
	return names, objects, nil
}

// decodeArcs resolves delta-encoded, quantized arcs into absolute positions.
func decodeArcs(arcs [][][]float64, tf *topoTransform) [][]orb.Point {
	out := make([][]orb.Point, len(arcs))
	for i, arc := range arcs {
		pts := make([]orb.Point, 0, len(arc))
		var x, y float64
		for _, p := range arc {
			if len(p) < 2 {
				continue
			}
			if tf == nil {
				pts = append(pts, orb.Point{p[0], p[1]})
				continue
			}
			x += p[0]
			y += p[1]
			pts = append(pts, orb.Point{x*tf.Scale[0] + tf.Translate[0], y*tf.Scale[1] + tf.Translate[1]})
		}
		out[i] = pts
	}
	return out
}

type arcDecoder struct {
	arcs [][]orb.Point
	tf   *topoTransform
}

func (d *arcDecoder) feature(obj topoObject) (*geojson.Feature, error) {
	g, err := d.geometry(obj)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(g)
	f.ID = obj.ID
	for k, v := range obj.Properties {
		f.Properties[k] = v
	}
	return f, nil
}

func (d *arcDecoder) geometry(obj topoObject) (orb.Geometry, error) {
	switch obj.Type {
	case "", "null":
		return nil, nil
	case "Point":
		var c []float64
		if err := json.Unmarshal(obj.Coordinates, &c); err != nil {
			return nil, eris.Wrap(err, "point coordinates")
		}
		p, ok := d.position(c)
		if !ok {
			return nil, eris.New("point: short coordinates")
		}
		return p, nil
	case "MultiPoint":
		var cs [][]float64
		if err := json.Unmarshal(obj.Coordinates, &cs); err != nil {
			return nil, eris.Wrap(err, "multipoint coordinates")
		}
		mp := make(orb.MultiPoint, 0, len(cs))
		for _, c := range cs {
			if p, ok := d.position(c); ok {
				mp = append(mp, p)
			}
		}
		return mp, nil
	case "LineString":
		var refs []int
		if err := json.Unmarshal(obj.Arcs, &refs); err != nil {
			return nil, eris.Wrap(err, "linestring arcs")
		}
		pts, err := d.line(refs)
		if err != nil {
			return nil, err
		}
		return orb.LineString(pts), nil
	case "MultiLineString":
		var refs [][]int
		if err := json.Unmarshal(obj.Arcs, &refs); err != nil {
			return nil, eris.Wrap(err, "multilinestring arcs")
		}
		mls := make(orb.MultiLineString, 0, len(refs))
		for _, r := range refs {
			pts, err := d.line(r)
			if err != nil {
				return nil, err
			}
			mls = append(mls, orb.LineString(pts))
		}
		return mls, nil
	case "Polygon":
		var refs [][]int
		if err := json.Unmarshal(obj.Arcs, &refs); err != nil {
			return nil, eris.Wrap(err, "polygon arcs")
		}
		return d.polygon(refs)
	case "MultiPolygon":
		var refs [][][]int
		if err := json.Unmarshal(obj.Arcs, &refs); err != nil {
			return nil, eris.Wrap(err, "multipolygon arcs")
		}
		mp := make(orb.MultiPolygon, 0, len(refs))
		for _, r := range refs {
			poly, err := d.polygon(r)
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		return mp, nil
	case "GeometryCollection":
		gc := make(orb.Collection, 0, len(obj.Geometries))
		for _, member := range obj.Geometries {
			g, err := d.geometry(member)
			if err != nil {
				return nil, err
			}
			if g != nil {
				gc = append(gc, g)
			}
		}
		return gc, nil
	}
	return nil, eris.Errorf("unsupported topology geometry type %q", obj.Type)
}

// position applies the transform to a standalone (non-delta) coordinate.
func (d *arcDecoder) position(c []float64) (orb.Point, bool) {
	if len(c) < 2 {
		return orb.Point{}, false
	}
	if d.tf == nil {
		return orb.Point{c[0], c[1]}, true
	}
	return orb.Point{c[0]*d.tf.Scale[0] + d.tf.Translate[0], c[1]*d.tf.Scale[1] + d.tf.Translate[1]}, true
}

func (d *arcDecoder) polygon(refs [][]int) (orb.Polygon, error) {
	poly := make(orb.Polygon, 0, len(refs))
	for _, r := range refs {
		pts, err := d.line(r)
		if err != nil {
			return nil, err
		}
		poly = append(poly, orb.Ring(pts))
	}
	return poly, nil
}

// line stitches arcs end to end, dropping the shared first point of every
// arc after the first. A negative reference ^i walks arc i backwards.
func (d *arcDecoder) line(refs []int) ([]orb.Point, error) {
	var pts []orb.Point
	for _, ref := range refs {
		idx, reverse := ref, false
		if ref < 0 {
			idx, reverse = ^ref, true
		}
		if idx >= len(d.arcs) {
			return nil, eris.Errorf("arc index %d out of range (%d arcs)", ref, len(d.arcs))
		}
		arc := d.arcs[idx]
		if reverse {
			rev := make([]orb.Point, len(arc))
			for i, p := range arc {
				rev[len(arc)-1-i] = p
			}
			arc = rev
		}
		if len(pts) > 0 && len(arc) > 0 {
			arc = arc[1:]
		}
		pts = append(pts, arc...)
	}
	return pts, nil
}
