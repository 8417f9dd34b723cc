package choropleth

import (
	"fmt"
	"reflect"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"choromap/internal/geom"
)

// Chart binds a dataset to a topology and colors the result. A chart is
// owned by a single goroutine; it holds no package-level state, so any
// number of charts can coexist.
type Chart struct {
	cfg   Config
	scale Scale
	log   *zap.Logger

	loaded  bool
	nodes   []*Node
	records []Record
	extent  Extent
}

type Option func(*Chart)

// WithLogger sets the chart logger. The default is zap.L().
func WithLogger(l *zap.Logger) Option {
	return func(c *Chart) { c.log = l }
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(c *Chart) { c.cfg = cfg }
}

// New returns a chart with the default red quantize scale.
func New(opts ...Option) *Chart {
	c := &Chart{
		cfg:   DefaultConfig(),
		scale: NewQuantize(DefaultPalette),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = zap.L()
	}
	return c
}

// ID sets the tabular column used as join key.
func (c *Chart) ID(field string) *Chart {
	c.cfg.IDField = field
	return c
}

// Fill sets the column holding the mapped value.
func (c *Chart) Fill(field string) *Chart {
	c.cfg.ValueField = field
	return c
}

func (c *Chart) Opacity(v float64) *Chart {
	c.cfg.Opacity = v
	return c
}

// Colors installs the color input. A []string palette replaces the range
// of the active quantize or ordinal scale (a custom function is replaced by
// a quantize scale); a func(any) string or ColorFunc becomes a custom scale;
// a Scale is used as is. Any other input is logged and ignored.
func (c *Chart) Colors(input any) *Chart {
	switch v := input.(type) {
	case []string:
		if len(v) == 0 {
			return c.invalidScale(input)
		}
		switch s := c.scale.(type) {
		case *Quantize:
			s.SetRange(v)
		case *Ordinal:
			s.SetRange(v)
		default:
			q := NewQuantize(v)
			if c.extent.Valid {
				q.SetDomain(c.extent.Min, c.extent.Max)
			}
			c.scale = q
		}
	case ColorFunc:
		if v == nil {
			return c.invalidScale(input)
		}
		c.scale = v
	case func(any) string:
		if v == nil {
			return c.invalidScale(input)
		}
		c.scale = ColorFunc(v)
	case Scale:
		if v == nil || nilPointer(v) {
			return c.invalidScale(input)
		}
		c.scale = v
	default:
		return c.invalidScale(input)
	}
	return c
}

func nilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func (c *Chart) invalidScale(input any) *Chart {
	c.log.Warn("choropleth: ignoring color input",
		zap.Error(ErrInvalidScaleInput),
		zap.String("type", fmt.Sprintf("%T", input)),
		zap.Stringer("kept", c.scale.Kind()),
	)
	return c
}

// ColorLegend sets the legend title.
func (c *Chart) ColorLegend(title string) *Chart {
	c.cfg.LegendTitle = title
	return c
}

func (c *Chart) LegendFormat(fn func(float64) string) *Chart {
	c.cfg.LegendFormatter = fn
	return c
}

func (c *Chart) LegendLayout(l LegendLayout) *Chart {
	c.cfg.LegendLayout = l
	return c
}

// GradientSteps sets how many stops a gradient legend carries.
func (c *Chart) GradientSteps(n int) *Chart {
	c.cfg.GradientSteps = n
	return c
}

// LabelCap caps the displayed legend bounds whenever the legend title is
// title.
func (c *Chart) LabelCap(title string, limit float64) *Chart {
	if c.cfg.LabelCaps == nil {
		c.cfg.LabelCaps = map[string]float64{}
	}
	c.cfg.LabelCaps[title] = limit
	return c
}

func (c *Chart) Locale(tag language.Tag) *Chart {
	c.cfg.Locale = tag
	return c
}

func (c *Chart) Filter(keep func(Record) bool) *Chart {
	c.cfg.Filter = keep
	return c
}

// Collections selects the topology collections that take part in the
// join. No names selects all of them.
func (c *Chart) Collections(names ...string) *Chart {
	c.cfg.Collections = append([]string(nil), names...)
	return c
}

func (c *Chart) GeometryID(parse IDParser) *Chart {
	c.cfg.GeometryID = parse
	return c
}

func (c *Chart) NameProperty(name string) *Chart {
	c.cfg.NameProperty = name
	return c
}

func (c *Chart) Tooltip(fn func(*Node) string) *Chart {
	c.cfg.Tooltip = fn
	return c
}

func (c *Chart) OnLegend(fn func([]*Node)) *Chart {
	c.cfg.OnLegend = fn
	return c
}

// OnHover replaces the default show/hide tooltip handlers.
func (c *Chart) OnHover(enter, exit func(*Node)) *Chart {
	c.cfg.OnEnter = enter
	c.cfg.OnExit = exit
	return c
}

// Config returns a copy of the current configuration.
func (c *Chart) Config() Config { return c.cfg }

// Scale returns the active color scale.
func (c *Chart) Scale() Scale { return c.scale }

// Nodes returns the node list of the last successful Data call.
func (c *Chart) Nodes() []*Node { return c.nodes }

// Records returns the filtered records of the last successful Data call.
func (c *Chart) Records() []Record { return c.records }

// Extent returns the value extent of the last successful Data call.
func (c *Chart) Extent() Extent { return c.extent }

// Data normalizes topo, joins records onto it and updates the scale
// domain. It replaces everything computed by a previous call; on error the
// previous state is left untouched.
func (c *Chart) Data(records []Record, topo *geom.Topology) error {
	if topo == nil {
		return eris.Wrap(ErrMissingConfiguration, "choropleth: topology source")
	}
	if c.cfg.IDField == "" {
		return eris.Wrap(ErrMissingConfiguration, "choropleth: id field")
	}
	if c.cfg.ValueField == "" {
		return eris.Wrap(ErrMissingConfiguration, "choropleth: value field")
	}

	nodes, err := Normalize(topo, c.cfg.Collections, c.cfg.GeometryID)
	if err != nil {
		return eris.Wrap(err, "choropleth: normalize")
	}
	res := Join(records, nodes, c.cfg.IDField, c.cfg.ValueField, c.cfg.Filter)

	c.nodes = res.Nodes
	c.records = res.Records
	c.extent = res.Extent
	c.loaded = true
	c.updateDomain()

	c.log.Debug("choropleth: joined",
		zap.String("id_field", c.cfg.IDField),
		zap.String("value_field", c.cfg.ValueField),
		zap.Int("records", len(res.Records)),
		zap.Int("features", len(res.Nodes)),
		zap.Int("bound", res.Bound),
		zap.Float64("min", res.Extent.Min),
		zap.Float64("max", res.Extent.Max),
	)
	return nil
}

func (c *Chart) updateDomain() {
	switch s := c.scale.(type) {
	case *Quantize:
		if !c.extent.Valid {
			c.log.Warn("choropleth: no numeric values, resetting domain",
				zap.String("value_field", c.cfg.ValueField))
			s.SetDomain(0, 1)
			return
		}
		s.SetDomain(c.extent.Min, c.extent.Max)
	case *Ordinal:
		s.Reset()
		for _, n := range c.nodes {
			if v, ok := n.Value(); ok && !noData(v) {
				s.ColorAt(v)
			}
		}
	}
}
