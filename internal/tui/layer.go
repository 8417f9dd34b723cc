package tui

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"choromap/internal/choropleth"
)

// mapLayer is the terminal side of a chart draw. It implements
// choropleth.Renderer and keeps everything the view needs between frames;
// the Model holds it by pointer so bubbletea's value copies share it.
type mapLayer struct {
	nodes    []*choropleth.Node
	style    choropleth.StyleFunc
	handlers choropleth.Handlers
	legend   choropleth.Legend
	hasLeg   bool

	hovered *choropleth.Node
	tipNode *choropleth.Node
	tooltip string

	// all nodes of the last draw, bound or not, as reported to OnLegend
	reported []*choropleth.Node
}

var _ choropleth.Renderer = (*mapLayer)(nil)

func newMapLayer() *mapLayer { return &mapLayer{} }

func (l *mapLayer) Clear() {
	l.nodes = nil
	l.style = nil
	l.handlers = choropleth.Handlers{}
	l.legend = choropleth.Legend{}
	l.hasLeg = false
	l.hovered = nil
	l.tipNode = nil
	l.tooltip = ""
}

func (l *mapLayer) AddFeatureLayer(nodes []*choropleth.Node, style choropleth.StyleFunc, h choropleth.Handlers) {
	l.nodes = append(l.nodes, nodes...)
	l.style = style
	l.handlers = h
}

func (l *mapLayer) RemoveFeature(n *choropleth.Node) {
	kept := l.nodes[:0]
	for _, existing := range l.nodes {
		if existing != n {
			kept = append(kept, existing)
		}
	}
	l.nodes = kept
	if l.hovered == n {
		l.hovered = nil
	}
}

func (l *mapLayer) SetLegend(leg choropleth.Legend) {
	l.legend = leg
	l.hasLeg = true
}

func (l *mapLayer) ShowTooltip(n *choropleth.Node, text string) {
	l.tipNode = n
	l.tooltip = text
}

func (l *mapLayer) HideTooltip(n *choropleth.Node) {
	if l.tipNode == n {
		l.tipNode = nil
		l.tooltip = ""
	}
}

// nodeAt returns the topmost drawn feature containing p.
func (l *mapLayer) nodeAt(p orb.Point) *choropleth.Node {
	for i := len(l.nodes) - 1; i >= 0; i-- {
		if contains(l.nodes[i].Feature.Geometry, p) {
			return l.nodes[i]
		}
	}
	return nil
}

func contains(g orb.Geometry, p orb.Point) bool {
	switch t := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(t, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(t, p)
	case orb.Collection:
		for _, sub := range t {
			if contains(sub, p) {
				return true
			}
		}
	}
	return false
}

// hover moves the pointer to n, which may be nil. Exit for the previous
// feature always fires before Enter for the next one.
func (l *mapLayer) hover(n *choropleth.Node) {
	if n == l.hovered {
		return
	}
	if l.hovered != nil && l.handlers.Exit != nil {
		l.handlers.Exit(l.hovered)
	}
	l.hovered = n
	if n != nil && l.handlers.Enter != nil {
		l.handlers.Enter(n)
	}
}
