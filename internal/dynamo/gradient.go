package dynamo

import (
	"image/color"
	"math"
)

// GradientAt samples a radial gradient at t in [0,1], interpolating linearly
// between the surrounding stops. Stops must be sorted by Offset.
func GradientAt(stops []GradientStop, t float64) color.NRGBA {
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
	}
	return stops[len(stops)-1].Color
}

func lerpColor(a, b color.NRGBA, f float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Band is one disc of a stacked approximation of a radial gradient.
type Band struct {
	Radius float64 // fraction of the gradient radius
	Color  color.NRGBA
}

// Bands approximates a radial gradient with n concentric discs for hosts that
// can only fill solid circles. Drawn outermost first, the stacked alphas add
// up to the gradient's alpha at each ring.
func Bands(stops []GradientStop, n int) []Band {
	if n < 1 {
		n = 1
	}
	out := make([]Band, 0, n)
	for k := n; k >= 1; k-- {
		outer := float64(k) / float64(n)
		inner := float64(k-1) / float64(n)
		c := GradientAt(stops, inner)
		da := int(c.A) - int(GradientAt(stops, outer).A)
		if da <= 0 {
			continue
		}
		c.A = uint8(da)
		out = append(out, Band{Radius: outer, Color: c})
	}
	return out
}
