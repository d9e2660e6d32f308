package tui

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/playground/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	// Scale is the number of surface pixels per braille dot.
	Scale = 4
	// litThreshold is the intensity at which a dot is drawn.
	litThreshold = 0.1
	glowBands    = 4
)

var background = colorful.Color{R: 17.0 / 255, G: 24.0 / 255, B: 39.0 / 255}

type dot struct {
	v float64
	c colorful.Color
}

// Canvas is a braille surface. Every cell holds 2x4 dots, each with its own
// intensity and colour. Filling a rect darkens the dots it covers by the
// fill's alpha, which is how the loop's overlay turns into fading trails.
type Canvas struct {
	Width, Height int
	dots          []dot
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize changes the cell grid, keeping the dots that still fit.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if w == c.Width && h == c.Height {
		return
	}
	dots := make([]dot, w*2*h*4)
	for y := 0; y < min(h, c.Height)*4; y++ {
		for x := 0; x < min(w, c.Width)*2; x++ {
			dots[y*w*2+x] = c.dots[y*c.Width*2+x]
		}
	}
	c.Width, c.Height, c.dots = w, h, dots
}

func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = dot{}
	}
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.Width * 2 * Scale), float64(c.Height * 4 * Scale)
}

// Intensity returns the dot at sub-pixel (x, y), or 0 outside the grid.
func (c *Canvas) Intensity(x, y int) float64 {
	if d := c.at(x, y); d != nil {
		return d.v
	}
	return 0
}

func (c *Canvas) at(x, y int) *dot {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return nil
	}
	return &c.dots[y*c.Width*2+x]
}

// light composites a colour of the given alpha over the dot.
func (c *Canvas) light(x, y int, col color.NRGBA, alpha float64) {
	d := c.at(x, y)
	if d == nil || alpha <= 0 {
		return
	}
	fg := colorful.Color{R: float64(col.R) / 255, G: float64(col.G) / 255, B: float64(col.B) / 255}
	if d.v == 0 {
		d.c = fg
	} else {
		d.c = d.c.BlendRgb(fg, alpha)
	}
	d.v = 1 - (1-d.v)*(1-alpha)
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	keep := 1 - float64(col.A)/255
	x0, y0 := clampDot(x, c.Width*2), clampDot(y, c.Height*4)
	x1, y1 := clampDot(x+w, c.Width*2), clampDot(y+h, c.Height*4)
	for sy := y0; sy < y1; sy++ {
		for sx := x0; sx < x1; sx++ {
			d := &c.dots[sy*c.Width*2+sx]
			d.v *= keep
			if d.v < 1e-3 {
				d.v = 0
			}
		}
	}
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	c.disc(cx, cy, r, col, float64(col.A)/255)
}

func (c *Canvas) FillRadial(cx, cy, r float64, stops []dynamo.GradientStop) {
	for _, b := range dynamo.Bands(stops, glowBands) {
		c.disc(cx, cy, r*b.Radius, b.Color, float64(b.Color.A)/255)
	}
}

// disc lights every dot whose centre lies within r of (cx, cy). A disc smaller
// than one dot still lights the dot under its centre.
func (c *Canvas) disc(cx, cy, r float64, col color.NRGBA, alpha float64) {
	sx, sy := cx/Scale, cy/Scale
	sr := r / Scale
	if sr < 0.5 {
		c.light(int(math.Floor(sx)), int(math.Floor(sy)), col, alpha)
		return
	}
	for y := int(math.Floor(sy - sr)); y <= int(math.Ceil(sy+sr)); y++ {
		for x := int(math.Floor(sx - sr)); x <= int(math.Ceil(sx+sr)); x++ {
			dx, dy := float64(x)+0.5-sx, float64(y)+0.5-sy
			if dx*dx+dy*dy <= sr*sr {
				c.light(x, y, col, alpha)
			}
		}
	}
}

// StrokeLine draws a line using Bresenham's algorithm. Width is ignored; a
// braille dot is already wider than any link.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, _ float64, col color.NRGBA) {
	ax, ay := int(math.Floor(x0/Scale)), int(math.Floor(y0/Scale))
	bx, by := int(math.Floor(x1/Scale)), int(math.Floor(y1/Scale))
	alpha := float64(col.A) / 255

	dx := absInt(bx - ax)
	dy := absInt(by - ay)
	sx := -1
	if ax < bx {
		sx = 1
	}
	sy := -1
	if ay < by {
		sy = 1
	}
	err := dx - dy

	for {
		c.light(ax, ay, col, alpha)
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

// Cell returns the braille rune for a cell and the colour of its brightest
// dot, dimmed toward the background by that dot's intensity.
func (c *Canvas) Cell(col, row int) (rune, colorful.Color) {
	r := rune(0x2800)
	var best dot
	for sy := 0; sy < 4; sy++ {
		for sx := 0; sx < 2; sx++ {
			d := c.dots[(row*4+sy)*c.Width*2+col*2+sx]
			if d.v < litThreshold {
				continue
			}
			r |= pixelMap[sy][sx]
			if d.v > best.v {
				best = d
			}
		}
	}
	return r, background.BlendLab(best.c, best.v).Clamped()
}

// String renders the grid, one styled run per change of colour.
func (c *Canvas) String() string {
	var sb strings.Builder
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		runHex := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runHex == "" {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runHex)).Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < c.Width; col++ {
			r, clr := c.Cell(col, row)
			hex := ""
			if r != 0x2800 {
				hex = clr.Hex()
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(r)
		}
		flush()
		if row < c.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func clampDot(v float64, n int) int {
	i := int(math.Floor(v / Scale))
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
