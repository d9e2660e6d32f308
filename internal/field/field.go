package field

import (
	"image/color"
	"math"

	"github.com/san-kum/playground/internal/dynamo"
)

const (
	// InteractionRadius is the reach of the pairwise law.
	InteractionRadius = 80.0
	// PairStrength scales the pairwise falloff.
	PairStrength = 0.01
	// Repulsion applies inside half the interaction radius, Attraction beyond.
	Repulsion  = -1.0
	Attraction = 0.5
	// LinkAlpha is the opacity a link approaches as the pair distance shrinks.
	LinkAlpha = 0.15
	// LinkWidth is the stroke width of a link line.
	LinkWidth = 0.5
	// PointerStrength scales the pointer falloff.
	PointerStrength = 0.5
)

// LinkHue is the colour of every connection line.
var LinkHue = color.NRGBA{R: 0, G: 255, B: 255}

// Distance is the Euclidean distance between a and b.
func Distance(a, b dynamo.Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Pair is the outcome of the pairwise law for one unordered pair.
type Pair struct {
	// Force acts on the first particle; the second receives its negation.
	Force dynamo.Vec2
	// Link is the opacity of the line joining the pair.
	Link float64
	Dist float64
}

// Pairwise evaluates the stylised short-range repulsion / long-range
// attraction between particles at a and b. ok is false for coincident
// particles and for pairs at or beyond InteractionRadius.
func Pairwise(a, b dynamo.Vec2) (Pair, bool) {
	d := Distance(a, b)
	if d >= InteractionRadius || d == 0 {
		return Pair{}, false
	}

	force := (InteractionRadius - d) / InteractionRadius * PairStrength * Modifier(d)
	dir := dynamo.Vec2{X: (b.X - a.X) / d, Y: (b.Y - a.Y) / d}

	return Pair{
		Force: dir.Scale(force),
		Link:  (1 - d/InteractionRadius) * LinkAlpha,
		Dist:  d,
	}, true
}

// Modifier flips sign at half the interaction radius.
func Modifier(d float64) float64 {
	if d < InteractionRadius/2 {
		return Repulsion
	}
	return Attraction
}

// Pointer evaluates the repulsive pointer field on a particle at p. The
// force falls off linearly from PointerStrength at the pointer to zero at
// radius. A particle exactly under the pointer is pushed along +x.
func Pointer(ptr, p dynamo.Vec2, radius float64) (dynamo.Vec2, bool) {
	d := Distance(ptr, p)
	if d >= radius {
		return dynamo.Vec2{}, false
	}

	force := (radius - d) / radius * PointerStrength
	if d == 0 {
		return dynamo.Vec2{X: force}, true
	}
	return dynamo.Vec2{X: (p.X - ptr.X) / d * force, Y: (p.Y - ptr.Y) / d * force}, true
}

// LinkColor returns the line colour for the given link opacity.
func LinkColor(alpha float64) color.NRGBA {
	c := LinkHue
	c.A = uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))
	return c
}
