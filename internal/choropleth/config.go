package choropleth

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Style constants for every rendered feature border.
const (
	DefaultOpacity = 0.7
	BorderColor    = "#555555"
	BorderWeight   = 1.0
	BorderOpacity  = 0.5
)

type LegendLayout string

const (
	LayoutSwatch   LegendLayout = "swatch"
	LayoutGradient LegendLayout = "gradient"
)

// DefaultLabelCaps caps displayed legend bounds per legend title:
// percentages never display above 100.
var DefaultLabelCaps = map[string]float64{"Porcentaje": 100}

// Config holds the chart-wide settings. It is filled through the Chart
// setters; the zero value of every optional field means "use the default".
type Config struct {
	IDField    string
	ValueField string

	// GeometryID overrides the feature's native id as join key.
	GeometryID IDParser
	// Collections selects topology collections; empty means all.
	Collections []string
	// Filter is applied to records, in order, before the join.
	Filter func(Record) bool

	Opacity float64

	LegendTitle     string
	LegendFormatter func(float64) string
	LegendLayout    LegendLayout
	LabelCaps       map[string]float64
	GradientSteps   int
	Locale          language.Tag

	// NameProperty names the feature property shown in tooltips.
	NameProperty string
	Tooltip      func(*Node) string
	// OnLegend receives the full node list, bound or not, on every draw.
	OnLegend func([]*Node)
	OnEnter  func(*Node)
	OnExit   func(*Node)
}

// DefaultConfig returns the settings a new chart starts with.
func DefaultConfig() Config {
	caps := make(map[string]float64, len(DefaultLabelCaps))
	for k, v := range DefaultLabelCaps {
		caps[k] = v
	}
	return Config{
		Opacity:       DefaultOpacity,
		LegendLayout:  LayoutSwatch,
		LabelCaps:     caps,
		GradientSteps: 10,
		Locale:        language.MustParse("es-MX"),
		NameProperty:  "name",
	}
}

// LocaleFormatter formats legend numbers for tag with at most two
// fraction digits.
func LocaleFormatter(tag language.Tag) func(float64) string {
	p := message.NewPrinter(tag)
	return func(v float64) string {
		return p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
	}
}

func (c Config) formatter() func(float64) string {
	if c.LegendFormatter != nil {
		return c.LegendFormatter
	}
	return LocaleFormatter(c.Locale)
}

// labelCap returns the display cap for the current legend title. Titles
// loaded from config files arrive lowercased, so an exact match is tried
// before a case-insensitive one.
func (c Config) labelCap() (float64, bool) {
	if v, ok := c.LabelCaps[c.LegendTitle]; ok {
		return v, true
	}
	for title, v := range c.LabelCaps {
		if strings.EqualFold(title, c.LegendTitle) {
			return v, true
		}
	}
	return 0, false
}
