package choropleth

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

type StyleFunc func(*Node) (Style, bool)

// Handlers are the hover callbacks registered for every feature. Enter
// always precedes the Exit of the same feature.
type Handlers struct {
	Enter func(*Node)
	Exit  func(*Node)
}

// Renderer is the map surface a chart draws onto. The chart never touches
// viewport state (center, bounds, zoom); that belongs to the renderer.
type Renderer interface {
	// Clear removes every feature, tooltip and legend drawn so far.
	Clear()
	AddFeatureLayer(nodes []*Node, style StyleFunc, h Handlers)
	RemoveFeature(n *Node)
	SetLegend(l Legend)
	ShowTooltip(n *Node, text string)
	HideTooltip(n *Node)
}

// Layer describes what a draw produced.
type Layer struct {
	Rendered []*Node
	Omitted  []*Node
	Legend   Legend
}

// Draw tears down r and rebuilds it from the current join: every node is
// added, then nodes without a colorable value are removed. The built-in
// legend is set on r and OnLegend, if configured, receives the full node
// list.
func (c *Chart) Draw(r Renderer) (*Layer, error) {
	if r == nil {
		return nil, eris.Wrap(ErrMissingConfiguration, "choropleth: renderer")
	}
	if !c.loaded {
		return nil, eris.Wrap(ErrMissingConfiguration, "choropleth: draw before data")
	}

	r.Clear()
	r.AddFeatureLayer(c.nodes, c.Style, c.handlers(r))

	layer := &Layer{}
	for _, n := range c.nodes {
		if _, ok := c.Style(n); !ok {
			r.RemoveFeature(n)
			layer.Omitted = append(layer.Omitted, n)
			continue
		}
		layer.Rendered = append(layer.Rendered, n)
	}

	layer.Legend = c.Legend()
	r.SetLegend(layer.Legend)
	if c.cfg.OnLegend != nil {
		c.cfg.OnLegend(c.nodes)
	}

	c.log.Debug("choropleth: drawn",
		zap.Int("rendered", len(layer.Rendered)),
		zap.Int("omitted", len(layer.Omitted)),
	)
	return layer, nil
}

func (c *Chart) handlers(r Renderer) Handlers {
	h := Handlers{
		Enter: func(n *Node) { r.ShowTooltip(n, c.TooltipText(n)) },
		Exit:  func(n *Node) { r.HideTooltip(n) },
	}
	if c.cfg.OnEnter != nil {
		h.Enter = c.cfg.OnEnter
	}
	if c.cfg.OnExit != nil {
		h.Exit = c.cfg.OnExit
	}
	return h
}
