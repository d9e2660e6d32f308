package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/playground/internal/dynamo"
)

const glowBands = 8

// surface paints onto an offscreen image that is never cleared, so the
// loop's overlay leaves trails behind.
type surface struct {
	img *ebiten.Image
}

func (s *surface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

func (s *surface) FillRadial(cx, cy, r float64, stops []dynamo.GradientStop) {
	for _, b := range dynamo.Bands(stops, glowBands) {
		vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r*b.Radius), b.Color, true)
	}
}

func (s *surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}
