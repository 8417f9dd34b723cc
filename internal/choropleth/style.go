package choropleth

import (
	"fmt"

	"go.uber.org/zap"
)

// Style is the paint applied to one rendered feature.
type Style struct {
	FillColor     string
	FillOpacity   float64
	BorderColor   string
	BorderWeight  float64
	BorderOpacity float64
}

// Style returns the feature style for n. ok is false when n has no bound
// value or the active scale cannot color it; such features are omitted
// from the rendered layer rather than painted a neutral color.
func (c *Chart) Style(n *Node) (Style, bool) {
	v, ok := n.Value()
	if !ok || noData(v) {
		return Style{}, false
	}
	color, ok := c.scale.ColorAt(v)
	if !ok {
		c.log.Debug("choropleth: value not colorable, omitting feature",
			zap.String("key", n.Key),
			zap.Any("value", v),
		)
		return Style{}, false
	}
	opacity := c.cfg.Opacity
	if opacity <= 0 {
		opacity = DefaultOpacity
	}
	return Style{
		FillColor:     color,
		FillOpacity:   opacity,
		BorderColor:   BorderColor,
		BorderWeight:  BorderWeight,
		BorderOpacity: BorderOpacity,
	}, true
}

// Name returns the display name of n: the configured name property, then
// the common name properties, then the join key.
func (c *Chart) Name(n *Node) string {
	for _, prop := range []string{c.cfg.NameProperty, "name", "NAME", "nombre"} {
		if prop == "" {
			continue
		}
		if v, ok := n.Properties[prop]; ok && !blank(v) {
			return fmt.Sprint(v)
		}
	}
	return n.Key
}

// FormatValue renders a bound value the way legend labels are rendered.
func (c *Chart) FormatValue(v any) string {
	if f, ok := Number(v); ok {
		return c.cfg.formatter()(f)
	}
	return fmt.Sprint(v)
}

// TooltipText is the hover text for n, "{name}: {value}" unless a
// tooltip formatter is configured.
func (c *Chart) TooltipText(n *Node) string {
	if c.cfg.Tooltip != nil {
		return c.cfg.Tooltip(n)
	}
	v, _ := n.Value()
	return c.Name(n) + ": " + c.FormatValue(v)
}
