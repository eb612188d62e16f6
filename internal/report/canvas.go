package report

import (
	"math"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

const brailleBlank = 0x2800

// dot bit for each (row, col) cell inside a 2x4 braille glyph
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// canvas is a braille grid of cols x rows glyphs, addressed in dots:
// (2*cols) x (4*rows).
type canvas struct {
	cols, rows int
	grid       [][]rune
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, grid: make([][]rune, rows)}
	for i := range c.grid {
		c.grid[i] = []rune(strings.Repeat(string(rune(brailleBlank)), cols))
	}
	return c
}

func (c *canvas) dots() (w, h int) { return 2 * c.cols, 4 * c.rows }

func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.grid[row][col] |= dotBits[y%4][x%2]
}

// line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// OrbitPreview draws the x-y projection of every body's path on a
// cols x rows braille canvas, centered on the bounding box with equal
// scale on both axes.
func OrbitPreview(result *dynamo.Result, cols, rows int) string {
	if result == nil || result.Samples == 0 || result.Bodies() == 0 || cols < 1 || rows < 1 {
		return ""
	}
	frames := result.Positions[:result.Samples]

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, frame := range frames {
		for _, p := range frame {
			minX, maxX = math.Min(minX, p.X()), math.Max(maxX, p.X())
			minY, maxY = math.Min(minY, p.Y()), math.Max(maxY, p.Y())
		}
	}
	rng := math.Max(maxX-minX, maxY-minY)
	if rng == 0 || math.IsNaN(rng) || math.IsInf(rng, 0) {
		rng = 1
	}

	c := newCanvas(cols, rows)
	w, h := c.dots()
	scale := float64(min(w, h)-1) / rng
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	project := func(x, y float64) (int, int) {
		return w/2 + int(math.Round((x-cx)*scale)),
			h/2 - int(math.Round((y-cy)*scale))
	}

	for b := 0; b < result.Bodies(); b++ {
		px, py := project(frames[0][b].X(), frames[0][b].Y())
		c.set(px, py)
		for _, frame := range frames[1:] {
			x, y := project(frame[b].X(), frame[b].Y())
			c.line(px, py, x, y)
			px, py = x, y
		}
	}
	return c.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
