package choropleth

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// LegendRow is one swatch. Rows are ordered from the lowest bucket to the
// highest; only the lowest row carries BottomLabel.
type LegendRow struct {
	Color       string  `json:"color" yaml:"color"`
	Low         float64 `json:"low" yaml:"low"`
	High        float64 `json:"high" yaml:"high"`
	Label       string  `json:"label" yaml:"label"`
	BottomLabel string  `json:"bottom_label,omitempty" yaml:"bottom_label,omitempty"`
}

// Gradient is a continuous ramp, Stops ordered from min to max.
type Gradient struct {
	Stops  []string `json:"stops" yaml:"stops"`
	Top    string   `json:"top" yaml:"top"`
	Bottom string   `json:"bottom" yaml:"bottom"`
}

type Legend struct {
	Title    string       `json:"title" yaml:"title"`
	Layout   LegendLayout `json:"layout" yaml:"layout"`
	Scale    string       `json:"scale" yaml:"scale"`
	Rows     []LegendRow  `json:"rows,omitempty" yaml:"rows,omitempty"`
	Gradient *Gradient    `json:"gradient,omitempty" yaml:"gradient,omitempty"`
}

// Legend derives the legend from the scale as it is now. Every call builds
// a fresh value; nothing is patched from an earlier legend.
func (c *Chart) Legend() Legend {
	l := Legend{
		Title:  c.cfg.LegendTitle,
		Layout: c.cfg.LegendLayout,
		Scale:  c.scale.Kind().String(),
	}
	if l.Layout == "" {
		l.Layout = LayoutSwatch
	}
	format := c.cfg.formatter()

	switch s := c.scale.(type) {
	case *Quantize:
		lo, hi := s.Domain()
		if l.Layout == LayoutGradient {
			l.Gradient = &Gradient{
				Stops:  interpolate(s.Range(), c.gradientSteps()),
				Top:    format(c.display(math.Ceil(hi))),
				Bottom: format(math.Floor(lo)),
			}
			return l
		}
		for i, color := range s.colors {
			bLo, bHi := s.bucketBounds(i)
			row := LegendRow{Color: color, Low: bLo, High: bHi, Label: format(c.display(bHi))}
			if i == 0 {
				row.BottomLabel = format(lo)
			}
			l.Rows = append(l.Rows, row)
		}
	case *Ordinal:
		l.Layout = LayoutSwatch
		colors := s.Range()
		if len(colors) == 0 {
			return l
		}
		for i, cat := range s.Domain() {
			l.Rows = append(l.Rows, LegendRow{Color: colors[i%len(colors)], Label: cat})
		}
	default:
		if l.Layout == LayoutGradient && c.extent.Valid {
			l.Gradient = &Gradient{
				Stops:  c.sample(c.gradientSteps()),
				Top:    format(c.display(math.Ceil(c.extent.Max))),
				Bottom: format(math.Floor(c.extent.Min)),
			}
		}
	}
	return l
}

func (c *Chart) display(v float64) float64 {
	if limit, ok := c.cfg.labelCap(); ok && v > limit {
		return limit
	}
	return v
}

func (c *Chart) gradientSteps() int {
	if c.cfg.GradientSteps < 2 {
		return 2
	}
	return c.cfg.GradientSteps
}

// sample evaluates the active scale at evenly spaced points of the extent.
func (c *Chart) sample(steps int) []string {
	stops := make([]string, 0, steps)
	span := c.extent.Max - c.extent.Min
	for i := 0; i < steps; i++ {
		v := c.extent.Min + span*float64(i)/float64(steps-1)
		if color, ok := c.scale.ColorAt(v); ok {
			stops = append(stops, color)
		}
	}
	return stops
}

// interpolate spreads steps colors across the palette stops, blending
// neighbours in CIE-Lab. Unparseable palette entries are kept as is.
func interpolate(palette []string, steps int) []string {
	if len(palette) < 2 {
		return append([]string(nil), palette...)
	}
	parsed := make([]colorful.Color, len(palette))
	for i, p := range palette {
		col, err := colorful.Hex(p)
		if err != nil {
			return append([]string(nil), palette...)
		}
		parsed[i] = col
	}
	out := make([]string, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1) * float64(len(parsed)-1)
		lo := int(math.Floor(t))
		switch frac := t - float64(lo); {
		case lo >= len(parsed)-1:
			out[i] = parsed[len(parsed)-1].Hex()
		case frac < 1e-9:
			out[i] = parsed[lo].Hex()
		default:
			out[i] = parsed[lo].BlendLab(parsed[lo+1], frac).Clamped().Hex()
		}
	}
	return out
}
