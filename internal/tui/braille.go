package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// brailleBuf is a cell grid where every cell holds a 2x4 braille dot mask
// and one foreground color.
type brailleBuf struct {
	w, h  int        // in cells
	m     [][]uint8  // per-cell 8-bit mask
	color [][]string // per-cell hex color, "" = default foreground
	fixed [][]bool   // cells whose color must not be overwritten
}

func newBrailleBuf(w, h int) *brailleBuf {
	b := &brailleBuf{w: w, h: h}
	b.m = make([][]uint8, h)
	b.color = make([][]string, h)
	b.fixed = make([][]bool, h)
	for i := range b.m {
		b.m[i] = make([]uint8, w)
		b.color[i] = make([]string, w)
		b.fixed[i] = make([]bool, w)
	}
	return b
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func (b *brailleBuf) cell(mx, my int) (cx, cy int, bit uint8, ok bool) {
	if mx < 0 || my < 0 {
		return 0, 0, 0, false
	}
	cx, cy = mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return 0, 0, 0, false
	}
	return cx, cy, dotBits[mx%2][my%4], true
}

// paint sets a micro-pixel and colors its cell. The last painter wins
// unless the cell was claimed with stroke.
func (b *brailleBuf) paint(mx, my int, color string) {
	cx, cy, bit, ok := b.cell(mx, my)
	if !ok {
		return
	}
	b.m[cy][cx] |= bit
	if !b.fixed[cy][cx] {
		b.color[cy][cx] = color
	}
}

// stroke paints a pixel only coloring cells nothing has colored yet, or
// every cell it touches when force is set.
func (b *brailleBuf) stroke(mx, my int, color string, force bool) {
	cx, cy, bit, ok := b.cell(mx, my)
	if !ok {
		return
	}
	b.m[cy][cx] |= bit
	switch {
	case force:
		b.color[cy][cx] = color
		b.fixed[cy][cx] = true
	case b.color[cy][cx] == "":
		b.color[cy][cx] = color
	}
}

// drawLineMicro walks a line on the microgrid using Bresenham and calls
// plot for every pixel.
func drawLineMicro(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *brailleBuf) glyph(x, y int) rune {
	if mask := b.m[y][x]; mask != 0 {
		return rune(0x2800 + int(mask))
	}
	return ' '
}

// toLines renders the grid, emitting one styled run per stretch of cells
// sharing a color.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var (
			sb    strings.Builder
			run   []rune
			color string
		)
		flush := func() {
			if len(run) == 0 {
				return
			}
			if color == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			c := b.color[y][x]
			if b.m[y][x] == 0 {
				c = ""
			}
			if c != color {
				flush()
				color = c
			}
			run = append(run, b.glyph(x, y))
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

// plain renders the dot masks without color.
func (b *brailleBuf) plain() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			row[x] = b.glyph(x, y)
		}
		out[y] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
