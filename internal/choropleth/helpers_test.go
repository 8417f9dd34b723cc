package choropleth

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"choromap/internal/geom"
)

func square(x, y float64) orb.Polygon {
	return orb.Polygon{orb.Ring{{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y}}}
}

func feature(id any, props map[string]any) *geojson.Feature {
	f := geojson.NewFeature(square(0, 0))
	f.ID = id
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

func collection(name string, ids ...any) *geom.Collection {
	c := &geom.Collection{Name: name}
	for _, id := range ids {
		c.Features = append(c.Features, feature(id, map[string]any{"name": "Region " + Key(id)}))
	}
	return c
}

func topology(colls ...*geom.Collection) *geom.Topology {
	return &geom.Topology{Collections: colls}
}

func newChart() *Chart {
	return New(WithLogger(zap.NewNop()))
}

func keys(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Key)
	}
	return out
}

// recorder is an in-memory Renderer.
type recorder struct {
	cleared  int
	nodes    []*Node
	removed  []*Node
	legend   Legend
	style    StyleFunc
	handlers Handlers
	tooltip  string
	hovered  *Node
}

func (r *recorder) Clear() {
	r.cleared++
	r.nodes = nil
	r.removed = nil
	r.legend = Legend{}
	r.tooltip = ""
	r.hovered = nil
}

func (r *recorder) AddFeatureLayer(nodes []*Node, style StyleFunc, h Handlers) {
	r.nodes = append(r.nodes, nodes...)
	r.style = style
	r.handlers = h
}

func (r *recorder) RemoveFeature(n *Node) {
	r.removed = append(r.removed, n)
	kept := r.nodes[:0]
	for _, existing := range r.nodes {
		if existing != n {
			kept = append(kept, existing)
		}
	}
	r.nodes = kept
}

func (r *recorder) SetLegend(l Legend) { r.legend = l }

func (r *recorder) ShowTooltip(n *Node, text string) {
	r.hovered = n
	r.tooltip = text
}

func (r *recorder) HideTooltip(n *Node) {
	if r.hovered == n {
		r.hovered = nil
		r.tooltip = ""
	}
}
