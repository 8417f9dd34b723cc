package choropleth

import (
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"

	"choromap/internal/geom"
)

// IDParser derives a join key from a feature. ok=false leaves the feature
// without a key, so it never binds.
type IDParser func(f *geojson.Feature) (key string, ok bool)

// PropertyID reads the join key from a feature property.
func PropertyID(name string) IDParser {
	return func(f *geojson.Feature) (string, bool) {
		v, ok := f.Properties[name]
		if !ok {
			return "", false
		}
		k := Key(v)
		return k, k != ""
	}
}

// PaddedID left-pads numeric native ids with zeros to width, so geometry
// id 1 joins records keyed "01".
func PaddedID(width int) IDParser {
	return func(f *geojson.Feature) (string, bool) {
		k := Key(f.ID)
		if k == "" {
			return "", false
		}
		if n := width - len(k); n > 0 {
			k = strings.Repeat("0", n) + k
		}
		return k, true
	}
}

// Node is one feature of the join result. Properties is a private copy of
// the feature's property bag so repeated joins never see stale values.
type Node struct {
	Collection string
	Feature    *geojson.Feature
	Key        string
	Properties geojson.Properties
	Record     Record

	field string
}

// Value returns the bound value, if any.
func (n *Node) Value() (any, bool) {
	if n.field == "" {
		return nil, false
	}
	v, ok := n.Properties[n.field]
	return v, ok
}

// Bound reports whether a record matched this node.
func (n *Node) Bound() bool { return n.Record != nil }

// Normalize flattens the selected collections into nodes. An empty
// selection takes every collection in document order; a named collection
// the topology lacks is an error.
func Normalize(topo *geom.Topology, selected []string, parse IDParser) ([]*Node, error) {
	if topo == nil {
		return nil, eris.Wrap(ErrMissingConfiguration, "topology")
	}
	colls := topo.Collections
	if len(selected) > 0 {
		colls = make([]*geom.Collection, 0, len(selected))
		for _, name := range selected {
			c, ok := topo.Collection(name)
			if !ok {
				return nil, eris.Wrapf(ErrUnknownCollection, "collection %q (have %s)", name, strings.Join(topo.Names(), ", "))
			}
			colls = append(colls, c)
		}
	}

	var nodes []*Node
	for _, c := range colls {
		for _, f := range c.Features {
			if f == nil {
				continue
			}
			n := &Node{
				Collection: c.Name,
				Feature:    f,
				Properties: make(geojson.Properties, len(f.Properties)+1),
			}
			for k, v := range f.Properties {
				n.Properties[k] = v
			}
			if parse != nil {
				n.Key, _ = parse(f)
			} else {
				n.Key = Key(f.ID)
			}
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}
