package choropleth

import "sort"

// DefaultPalette is the 5-step red sequential palette used when no colors
// are configured.
var DefaultPalette = []string{"#fee5d9", "#fcae91", "#fb6a4a", "#de2d26", "#a50f15"}

// CategoricalPalette is Paul Tol's qualitative palette, the default range
// for ordinal scales.
var CategoricalPalette = []string{
	"#4477AA", "#EE6677", "#228833", "#CCBB44", "#66CCEE",
	"#AA3377", "#BBBBBB", "#EE8866", "#44BB99", "#FFAABB",
}

type ScaleKind int

const (
	KindQuantize ScaleKind = iota
	KindOrdinal
	KindFunc
)

func (k ScaleKind) String() string {
	switch k {
	case KindQuantize:
		return "quantize"
	case KindOrdinal:
		return "ordinal"
	case KindFunc:
		return "func"
	}
	return "unknown"
}

// Scale maps a bound value to a fill color. ok is false when the value
// cannot be colored, in which case the feature is omitted.
type Scale interface {
	Kind() ScaleKind
	ColorAt(v any) (color string, ok bool)
}

// Quantize splits a continuous domain into len(range) equal-width buckets.
type Quantize struct {
	x0, x1     float64
	colors     []string
	thresholds []float64
}

// NewQuantize returns a quantize scale over [0, 1].
func NewQuantize(palette []string) *Quantize {
	q := &Quantize{x0: 0, x1: 1}
	q.SetRange(palette)
	return q
}

func (q *Quantize) Kind() ScaleKind { return KindQuantize }

func (q *Quantize) SetDomain(lo, hi float64) {
	q.x0, q.x1 = lo, hi
	q.rescale()
}

func (q *Quantize) Domain() (lo, hi float64) { return q.x0, q.x1 }

func (q *Quantize) SetRange(palette []string) {
	q.colors = append([]string(nil), palette...)
	q.rescale()
}

func (q *Quantize) Range() []string { return append([]string(nil), q.colors...) }

// Thresholds returns the len(range)-1 inner bucket boundaries.
func (q *Quantize) Thresholds() []float64 { return append([]float64(nil), q.thresholds...) }

func (q *Quantize) rescale() {
	m := len(q.colors) - 1
	if m < 0 {
		m = 0
	}
	q.thresholds = make([]float64, m)
	for i := 0; i < m; i++ {
		q.thresholds[i] = (float64(i+1)*q.x1 - float64(i-m)*q.x0) / float64(m+1)
	}
}

// Bucket returns the palette index for v. Values outside the domain clamp
// to the first or last bucket; a value on a boundary belongs to the upper
// bucket.
func (q *Quantize) Bucket(v float64) int {
	return sort.Search(len(q.thresholds), func(i int) bool { return q.thresholds[i] > v })
}

func (q *Quantize) ColorAt(v any) (string, bool) {
	if len(q.colors) == 0 {
		return "", false
	}
	f, ok := Number(v)
	if !ok {
		return "", false
	}
	return q.colors[q.Bucket(f)], true
}

// InvertExtent returns the [lo, hi) bounds of the bucket painted with
// color. The last bucket also contains the domain maximum.
func (q *Quantize) InvertExtent(color string) (lo, hi float64, ok bool) {
	for i, c := range q.colors {
		if c == color {
			lo, hi = q.bucketBounds(i)
			return lo, hi, true
		}
	}
	return 0, 0, false
}

func (q *Quantize) bucketBounds(i int) (float64, float64) {
	m := len(q.thresholds)
	switch {
	case m == 0:
		return q.x0, q.x1
	case i < 1:
		return q.x0, q.thresholds[0]
	case i >= m:
		return q.thresholds[m-1], q.x1
	}
	return q.thresholds[i-1], q.thresholds[i]
}

// Ordinal assigns palette colors to categories in the order they are first
// seen, cycling when there are more categories than colors. A fixed domain
// colors only its own categories.
type Ordinal struct {
	colors []string
	domain []string
	index  map[string]int
	fixed  bool
}

// NewOrdinal returns an ordinal scale. When categories are given the domain
// is fixed to them.
func NewOrdinal(palette []string, categories ...string) *Ordinal {
	o := &Ordinal{colors: append([]string(nil), palette...), index: map[string]int{}}
	for _, c := range categories {
		o.add(Key(c))
	}
	o.fixed = len(categories) > 0
	return o
}

func (o *Ordinal) Kind() ScaleKind { return KindOrdinal }

func (o *Ordinal) SetRange(palette []string) { o.colors = append([]string(nil), palette...) }

func (o *Ordinal) Range() []string { return append([]string(nil), o.colors...) }

func (o *Ordinal) Domain() []string { return append([]string(nil), o.domain...) }

// Fixed reports whether the domain was configured up front.
func (o *Ordinal) Fixed() bool { return o.fixed }

// Reset forgets the implicit domain. Fixed domains are kept.
func (o *Ordinal) Reset() {
	if o.fixed {
		return
	}
	o.domain = nil
	o.index = map[string]int{}
}

func (o *Ordinal) add(k string) int {
	if i, ok := o.index[k]; ok {
		return i
	}
	o.index[k] = len(o.domain)
	o.domain = append(o.domain, k)
	return len(o.domain) - 1
}

func (o *Ordinal) ColorAt(v any) (string, bool) {
	if len(o.colors) == 0 {
		return "", false
	}
	k := Key(v)
	if k == "" {
		return "", false
	}
	i, ok := o.index[k]
	if !ok {
		if o.fixed {
			return "", false
		}
		i = o.add(k)
	}
	return o.colors[i%len(o.colors)], true
}

// ColorFunc is a caller supplied scale. An empty color omits the feature.
type ColorFunc func(v any) string

func (f ColorFunc) Kind() ScaleKind { return KindFunc }

func (f ColorFunc) ColorAt(v any) (string, bool) {
	c := f(v)
	return c, c != ""
}
