package viz

import (
	"math"
	"strings"

	"github.com/san-kum/bistable/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas spans (Width*2) x (Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps world coordinates onto the canvas.
type Viewport struct {
	XMin, XMax, YMin, YMax float64
}

// FitViewport spans xs horizontally and ys plus zero vertically, with a small
// margin so the curve does not touch the frame.
func FitViewport(xs, ys []float64) Viewport {
	vp := Viewport{XMin: -1, XMax: 1, YMin: 0, YMax: 0}
	if len(xs) > 0 {
		vp.XMin, vp.XMax = xs[0], xs[len(xs)-1]
	}
	for _, y := range ys {
		if !dynamo.Finite(y) {
			continue
		}
		vp.YMin = math.Min(vp.YMin, y)
		vp.YMax = math.Max(vp.YMax, y)
	}
	if vp.YMax-vp.YMin < 1e-9 {
		vp.YMin, vp.YMax = -1, 1
	}
	pad := 0.05 * (vp.YMax - vp.YMin)
	vp.YMin -= pad
	vp.YMax += pad
	return vp
}

func (c *Canvas) project(vp Viewport, x, y float64) (int, int, bool) {
	if !dynamo.Finite(x, y) {
		return 0, 0, false
	}
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	px := (x - vp.XMin) / (vp.XMax - vp.XMin) * w
	py := (vp.YMax - y) / (vp.YMax - vp.YMin) * h
	if px < -w || px > 2*w || py < -h || py > 2*h {
		return 0, 0, false
	}
	return int(math.Round(px)), int(math.Round(py)), true
}

// DrawSeries draws the polyline through (xs[i], ys[i]), breaking it at
// non-finite or far off-screen points.
func (c *Canvas) DrawSeries(vp Viewport, xs, ys []float64) {
	havePrev := false
	var px, py int
	for i := range xs {
		if i >= len(ys) {
			break
		}
		x, y, ok := c.project(vp, xs[i], ys[i])
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// DrawMarker draws a filled 3x3 sub-pixel block centred on (x, y).
func (c *Canvas) DrawMarker(vp Viewport, x, y float64) bool {
	cx, cy, ok := c.project(vp, x, y)
	if !ok {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(cx+dx, cy+dy)
		}
	}
	return true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
