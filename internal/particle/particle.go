package particle

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/playground/internal/dynamo"
)

const (
	// Restitution scales the reflected velocity component on a wall hit.
	Restitution = 0.9
	// Friction is applied to both velocity components every step.
	Friction = 0.99

	MinRadius   = 1.0
	RadiusRange = 3.0
	MinOpacity  = 0.5
	// GlowScale is the glow radius as a multiple of the core radius.
	GlowScale = 3.0
	// CoreLift brightens the core disc relative to the glow.
	CoreLift = 0.20
)

// HSL is a palette entry; S and L are fractions in [0,1].
type HSL struct {
	H, S, L float64
}

// NRGBA converts the colour with the given alpha in [0,1].
func (c HSL) NRGBA(alpha float64) color.NRGBA {
	r, g, b := colorful.Hsl(c.H, c.S, c.L).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

// Lighten returns the colour with lightness raised by dl, capped at 1.
func (c HSL) Lighten(dl float64) HSL {
	c.L = math.Min(1, c.L+dl)
	return c
}

func alphaByte(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(math.Round(a * 255))
}

// Palette is the fixed set of colours a particle is born with.
var Palette = []HSL{
	{H: 180, S: 1.00, L: 0.50}, // cyan
	{H: 280, S: 0.85, L: 0.60}, // purple
	{H: 140, S: 1.00, L: 0.50}, // green
	{H: 320, S: 1.00, L: 0.60}, // pink
	{H: 55, S: 1.00, L: 0.60},  // yellow
	{H: 210, S: 1.00, L: 0.60}, // blue
}

// Particle is one dot in the field, with its own size, mass and colour.
type Particle struct {
	ID      uint64
	Pos     dynamo.Vec2
	Vel     dynamo.Vec2
	Radius  float64
	Mass    float64 // equal to Radius; no force law reads it
	Color   HSL
	Opacity float64
}

// New draws a particle at pos with random velocity in [-1,1) per axis,
// radius in [1,4), opacity in [0.5,1) and a palette colour.
func New(id uint64, pos dynamo.Vec2, rng *rand.Rand) Particle {
	radius := rng.Float64()*RadiusRange + MinRadius
	return Particle{
		ID:      id,
		Pos:     pos,
		Vel:     dynamo.Vec2{X: (rng.Float64() - 0.5) * 2, Y: (rng.Float64() - 0.5) * 2},
		Radius:  radius,
		Mass:    radius,
		Color:   Palette[rng.Intn(len(Palette))],
		Opacity: rng.Float64()*(1-MinOpacity) + MinOpacity,
	}
}

// Integrate advances the particle one frame inside b. A wall crossing
// reflects the matching velocity component with Restitution and clamps the
// position onto the wall; friction is applied afterwards regardless.
func (p *Particle) Integrate(b dynamo.Bounds) {
	p.Pos = p.Pos.Add(p.Vel)

	if p.Pos.X < 0 || p.Pos.X > b.Width {
		p.Vel.X *= -Restitution
		p.Pos.X = clamp(p.Pos.X, 0, b.Width)
	}
	if p.Pos.Y < 0 || p.Pos.Y > b.Height {
		p.Vel.Y *= -Restitution
		p.Pos.Y = clamp(p.Pos.Y, 0, b.Height)
	}

	p.Vel = p.Vel.Scale(Friction)
}

// ApplyForce adds f straight onto the velocity (unit mass).
func (p *Particle) ApplyForce(f dynamo.Vec2) {
	p.Vel = p.Vel.Add(f)
}

// KineticEnergy uses Mass, unlike the force laws.
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * (p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y)
}

// Render paints the glow then the brighter core at the current position.
func (p *Particle) Render(s dynamo.Surface) {
	s.FillRadial(p.Pos.X, p.Pos.Y, p.Radius*GlowScale, p.GlowStops())
	s.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, p.Color.Lighten(CoreLift).NRGBA(p.Opacity))
}

// GlowStops fades from full opacity at the centre to zero at the rim.
func (p *Particle) GlowStops() []dynamo.GradientStop {
	return []dynamo.GradientStop{
		{Offset: 0, Color: p.Color.NRGBA(p.Opacity)},
		{Offset: 0.5, Color: p.Color.NRGBA(p.Opacity * 0.3)},
		{Offset: 1, Color: p.Color.NRGBA(0)},
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
