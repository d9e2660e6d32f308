// Package raster paints the simulation into an in-memory RGBA image using the
// golang.org/x/image/vector rasteriser. It backs headless runs and tests.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/san-kum/playground/internal/dynamo"
)

// GlowBands is the number of discs used to approximate a radial gradient.
const GlowBands = 12

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Surface is an in-memory dynamo.Surface backed by an RGBA image. Shapes are
// anti-aliased and composited with Porter-Duff over.
type Surface struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

func New(width, height int) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Surface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Resize replaces the backing image, keeping the overlapping pixels.
func (s *Surface) Resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	next := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(next, next.Bounds(), s.img, image.Point{}, draw.Src)
	s.img = next
}

// Clear replaces every pixel with c.
func (s *Surface) Clear(c color.NRGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// At returns the pixel at (x, y) as non-premultiplied colour.
func (s *Surface) At(x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(s.img.At(x, y)).(color.NRGBA)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(s.img.Bounds())
	if r.Empty() || c.A == 0 {
		return
	}
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	s.fill(cx-r, cy-r, cx+r, cy+r, c, func(ox, oy float64) {
		circlePath(s.z, cx-ox, cy-oy, r)
	})
}

// FillRadial stacks GlowBands discs whose alphas sum to the gradient.
func (s *Surface) FillRadial(cx, cy, r float64, stops []dynamo.GradientStop) {
	if r <= 0 {
		return
	}
	for _, b := range dynamo.Bands(stops, GlowBands) {
		s.FillCircle(cx, cy, r*b.Radius, b.Color)
	}
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 || c.A == 0 {
		return
	}
	// half-width normal
	nx, ny := -dy/l*width/2, dx/l*width/2
	pad := width / 2
	s.fill(math.Min(x0, x1)-pad, math.Min(y0, y1)-pad, math.Max(x0, x1)+pad, math.Max(y0, y1)+pad, c,
		func(ox, oy float64) {
			s.z.MoveTo(float32(x0+nx-ox), float32(y0+ny-oy))
			s.z.LineTo(float32(x1+nx-ox), float32(y1+ny-oy))
			s.z.LineTo(float32(x1-nx-ox), float32(y1-ny-oy))
			s.z.LineTo(float32(x0-nx-ox), float32(y0-ny-oy))
			s.z.ClosePath()
		})
}

// fill rasterises the path built by path, translated so the clipped bounding
// box starts at the origin, and composites c over it.
func (s *Surface) fill(minX, minY, maxX, maxY float64, c color.NRGBA, path func(ox, oy float64)) {
	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	s.z.Reset(r.Dx(), r.Dy())
	s.z.DrawOp = draw.Over
	path(float64(r.Min.X), float64(r.Min.Y))
	s.z.Draw(s.img, r, image.NewUniform(c), image.Point{})
}

func circlePath(z *vector.Rasterizer, cx, cy, r float64) {
	k := r * kappa
	pt := func(x, y float64) (float32, float32) { return float32(x), float32(y) }

	z.MoveTo(pt(cx+r, cy))
	cubic(z, cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	cubic(z, cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	cubic(z, cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	cubic(z, cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

func cubic(z *vector.Rasterizer, bx, by, cx, cy, dx, dy float64) {
	z.CubeTo(float32(bx), float32(by), float32(cx), float32(cy), float32(dx), float32(dy))
}
