package tui

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"

	"choromap/internal/choropleth"
	"choromap/internal/geom"
)

// viewport maps lon/lat onto the cell grid: the bbox is stretched over the
// canvas, zoomed around its center and panned by whole cells.
type viewport struct {
	bbox    geom.BBox
	zoom    float64
	offsetX int
	offsetY int
}

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (v viewport) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !v.bbox.Valid() {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-v.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-v.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/v.zoom
	ny := 0.5 + (zy-0.5)/v.zoom
	lon := v.bbox.MinX + nx*(v.bbox.MaxX-v.bbox.MinX)
	lat := v.bbox.MinY + ny*(v.bbox.MaxY-v.bbox.MinY)
	return lon, lat, true
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (v viewport) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !v.bbox.Valid() {
		return 0, 0, false
	}
	nx := (lon - v.bbox.MinX) / (v.bbox.MaxX - v.bbox.MinX)
	ny := (lat - v.bbox.MinY) / (v.bbox.MaxY - v.bbox.MinY)
	zx := 0.5 + (nx-0.5)*v.zoom
	zy := 0.5 + (ny-0.5)*v.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + v.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + v.offsetY*4
	return sx, sy, true
}

func (v viewport) projectRing(r orb.Ring, w, h int) [][2]int {
	out := make([][2]int, 0, len(r))
	for _, p := range r {
		mx, my, ok := v.screenXYMicro(p[0], p[1], w, h)
		if !ok {
			continue
		}
		out = append(out, [2]int{mx, my})
	}
	return out
}

// renderMap paints every feature still in the layer: fills first, then
// borders, then the hovered outline on top.
func renderMap(l *mapLayer, v viewport, w, h int) *brailleBuf {
	br := newBrailleBuf(w, h)
	if l.style == nil || !v.bbox.Valid() {
		return br
	}

	type painted struct {
		node   *choropleth.Node
		rings  [][][2]int
		border string
	}
	var drawn []painted
	for _, n := range l.nodes {
		st, ok := l.style(n)
		if !ok {
			continue
		}
		fill := blend(st.FillColor, st.FillOpacity)
		p := painted{node: n, border: blend(st.BorderColor, st.BorderOpacity)}
		for _, poly := range polygons(n.Feature.Geometry) {
			var rings [][][2]int
			for _, ring := range poly {
				if pr := v.projectRing(ring, w, h); len(pr) >= 3 {
					rings = append(rings, pr)
				}
			}
			fillRings(br, rings, fill)
			p.rings = append(p.rings, rings...)
		}
		for _, ls := range lineStrings(n.Feature.Geometry) {
			pr := v.projectRing(orb.Ring(ls), w, h)
			for i := 1; i < len(pr); i++ {
				drawLineMicro(pr[i-1][0], pr[i-1][1], pr[i][0], pr[i][1], func(x, y int) { br.paint(x, y, fill) })
			}
		}
		drawn = append(drawn, p)
	}

	var hovered *painted
	for i := range drawn {
		if drawn[i].node == l.hovered {
			hovered = &drawn[i]
			continue
		}
		strokeRings(br, drawn[i].rings, drawn[i].border, false)
	}
	if hovered != nil {
		strokeRings(br, hovered.rings, hoverColor, true)
	}
	return br
}

// fillRings fills the polygon formed by rings with the even-odd rule per
// micro scanline, so holes stay empty.
func fillRings(br *brailleBuf, rings [][][2]int, color string) {
	if len(rings) == 0 {
		return
	}
	hMic := br.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for _, ring := range rings {
			for i := 0; i < len(ring); i++ {
				a := ring[i]
				b := ring[(i+1)%len(ring)]
				if a[1] == b[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], b[1]
				x0, x1 := a[0], b[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				br.paint(xMic, yMic, color)
			}
		}
	}
}

func strokeRings(br *brailleBuf, rings [][][2]int, color string, force bool) {
	for _, r := range rings {
		for i := 0; i < len(r); i++ {
			a := r[i]
			b := r[(i+1)%len(r)]
			drawLineMicro(a[0], a[1], b[0], b[1], func(x, y int) { br.stroke(x, y, color, force) })
		}
	}
}

func polygons(g orb.Geometry) []orb.Polygon {
	switch t := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{t}
	case orb.MultiPolygon:
		return t
	case orb.Collection:
		var out []orb.Polygon
		for _, sub := range t {
			out = append(out, polygons(sub)...)
		}
		return out
	}
	return nil
}

func lineStrings(g orb.Geometry) []orb.LineString {
	switch t := g.(type) {
	case orb.LineString:
		return []orb.LineString{t}
	case orb.MultiLineString:
		return t
	case orb.Collection:
		var out []orb.LineString
		for _, sub := range t {
			out = append(out, lineStrings(sub)...)
		}
		return out
	}
	return nil
}

// blend composes color over the canvas background at the given opacity.
// Colors go-colorful cannot parse are returned as is.
func blend(color string, opacity float64) string {
	fg, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	bg, err := colorful.Hex(canvasBg)
	if err != nil {
		return color
	}
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	return bg.BlendRgb(fg, opacity).Clamped().Hex()
}
