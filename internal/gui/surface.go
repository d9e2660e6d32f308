package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/playground/internal/dynamo"
)

// GlowBands is the number of discs used to approximate a particle's glow.
const GlowBands = 8

// canvas paints through raylib's immediate-mode calls. It must only be used
// between BeginTextureMode and EndTextureMode on the trail texture.
type canvas struct {
	w, h float64
}

func (c *canvas) Size() (float64, float64) { return c.w, c.h }

func (c *canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), toColor(col))
}

func (c *canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	rl.DrawCircleV(vec(cx, cy), float32(r), toColor(col))
}

func (c *canvas) FillRadial(cx, cy, r float64, stops []dynamo.GradientStop) {
	for _, b := range dynamo.Bands(stops, GlowBands) {
		rl.DrawCircleV(vec(cx, cy), float32(r*b.Radius), toColor(b.Color))
	}
}

func (c *canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	rl.DrawLineEx(vec(x0, y0), vec(x1, y1), float32(width), toColor(col))
}

func toColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func vec(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(x), float32(y))
}
