package dynamo

import (
	"fmt"
	"image/color"
	"math"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Neg() Vec2            { return Vec2{-v.X, -v.Y} }

func (v Vec2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

type Bounds struct {
	Width, Height float64
}

// Contains reports whether p lies in the closed rectangle [0,Width]x[0,Height].
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

func (b Bounds) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidSurface, b.Width, b.Height)
	}
	return nil
}

type Pointer struct {
	X, Y   float64
	Active bool
}

func (p Pointer) Pos() Vec2 { return Vec2{p.X, p.Y} }

// Slider ranges for the user-tunable settings.
const (
	MinCount         = 50
	MaxCount         = 300
	MinPointerRadius = 50.0
	MaxPointerRadius = 300.0

	DefaultCount         = 150
	DefaultPointerRadius = 150.0
)

type Settings struct {
	// Count is the population a reset fills to. It does not resize the live
	// collection.
	Count int
	// PointerRadius is the reach of the pointer repulsion field.
	PointerRadius float64
	// Links enables pairwise forces and their connecting lines.
	Links bool
}

func DefaultSettings() Settings {
	return Settings{
		Count:         DefaultCount,
		PointerRadius: DefaultPointerRadius,
		Links:         true,
	}
}

// Validate reports the first setting outside its slider range.
func (s Settings) Validate() error {
	if s.Count < MinCount || s.Count > MaxCount {
		return &ParameterError{Name: "count", Value: float64(s.Count), Min: MinCount, Max: MaxCount}
	}
	if s.PointerRadius < MinPointerRadius || s.PointerRadius > MaxPointerRadius || math.IsNaN(s.PointerRadius) {
		return &ParameterError{Name: "pointer_radius", Value: s.PointerRadius, Min: MinPointerRadius, Max: MaxPointerRadius}
	}
	return nil
}

// Clamp pins every setting into its slider range.
func (s Settings) Clamp() Settings {
	if s.Count < MinCount {
		s.Count = MinCount
	}
	if s.Count > MaxCount {
		s.Count = MaxCount
	}
	if math.IsNaN(s.PointerRadius) || s.PointerRadius < MinPointerRadius {
		s.PointerRadius = MinPointerRadius
	}
	if s.PointerRadius > MaxPointerRadius {
		s.PointerRadius = MaxPointerRadius
	}
	return s
}

// GradientStop is one colour stop of a radial gradient, Offset in [0,1].
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// Surface is everything the simulation needs from a host to paint a frame.
// Colours are non-premultiplied; alpha 0 is fully transparent.
type Surface interface {
	Size() (w, h float64)
	FillRect(x, y, w, h float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	FillRadial(cx, cy, r float64, stops []GradientStop)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}
