package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a positive area.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// FromBound converts an orb bound into a BBox.
func FromBound(b orb.Bound) BBox {
	return BBox{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}

// Collection is a named group of features inside a topology document.
type Collection struct {
	Name     string
	Features []*geojson.Feature
}

// Topology is a document of named feature collections. Collections keep
// the order in which the source document declared them.
type Topology struct {
	Collections []*Collection
}

// Add appends a collection, replacing any existing one with the same name
// in place.
func (t *Topology) Add(c *Collection) {
	for i, existing := range t.Collections {
		if existing.Name == c.Name {
			t.Collections[i] = c
			return
		}
	}
	t.Collections = append(t.Collections, c)
}

// Collection looks up a collection by name.
func (t *Topology) Collection(name string) (*Collection, bool) {
	for _, c := range t.Collections {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Names returns the collection names in document order.
func (t *Topology) Names() []string {
	names := make([]string, 0, len(t.Collections))
	for _, c := range t.Collections {
		names = append(names, c.Name)
	}
	return names
}

// Len returns the number of features across all collections.
func (t *Topology) Len() int {
	n := 0
	for _, c := range t.Collections {
		n += len(c.Features)
	}
	return n
}

// BoundOf returns the union bound of the given features, skipping
// features without geometry.
func BoundOf(features []*geojson.Feature) (BBox, bool) {
	var (
		b  orb.Bound
		ok bool
	)
	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		fb := f.Geometry.Bound()
		if !ok {
			b, ok = fb, true
			continue
		}
		b = b.Union(fb)
	}
	if !ok {
		return BBox{}, false
	}
	return FromBound(b), true
}
