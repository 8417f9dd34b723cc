package config

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"choromap/internal/choropleth"
)

// NewChart builds a chart from the map and chart sections. Data is not
// loaded; the caller still runs Data and Draw.
func (c *Config) NewChart(log *zap.Logger) (*choropleth.Chart, error) {
	ch := choropleth.New(choropleth.WithLogger(log)).
		ID(c.Chart.IDField).
		Fill(c.Chart.ValueField).
		Opacity(c.Chart.Opacity).
		ColorLegend(c.Chart.Legend.Title).
		LegendLayout(choropleth.LegendLayout(c.Chart.Legend.Layout)).
		GradientSteps(c.Chart.Legend.Steps).
		Collections(c.Map.Collections...).
		NameProperty(c.Map.NameProperty)

	switch c.Chart.Scale {
	case "", "quantize":
		if len(c.Chart.Palette) > 0 {
			ch.Colors(c.Chart.Palette)
		}
	case "ordinal":
		palette := c.Chart.Palette
		if len(palette) == 0 {
			palette = choropleth.CategoricalPalette
		}
		ch.Colors(choropleth.NewOrdinal(palette, c.Chart.Categories...))
	default:
		return nil, eris.Errorf("config: unknown scale %q", c.Chart.Scale)
	}

	if c.Chart.Legend.Locale != "" {
		tag, err := language.Parse(c.Chart.Legend.Locale)
		if err != nil {
			return nil, eris.Wrapf(err, "config: legend locale %q", c.Chart.Legend.Locale)
		}
		ch.Locale(tag)
	}
	for title, limit := range c.Chart.Legend.Caps {
		ch.LabelCap(title, limit)
	}

	switch {
	case c.Map.IDProperty != "":
		ch.GeometryID(choropleth.PropertyID(c.Map.IDProperty))
	case c.Map.PadID > 0:
		ch.GeometryID(choropleth.PaddedID(c.Map.PadID))
	}
	return ch, nil
}
