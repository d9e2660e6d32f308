package metrics

import (
	"github.com/san-kum/playground/internal/sim"
)

// Energy tracks the total kinetic energy of the field, using each
// particle's mass.
type Energy struct {
	name    string
	current float64
	peak    float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *sim.World) {
	e.current = Kinetic(w)
	if e.current > e.peak {
		e.peak = e.current
	}
}

// Value is the energy at the last observed step.
func (e *Energy) Value() float64 { return e.current }

// Peak is the highest energy observed since the last reset.
func (e *Energy) Peak() float64 { return e.peak }

func (e *Energy) Reset() {
	e.current = 0
	e.peak = 0
}

// Kinetic sums ½·m·|v|² over the world.
func Kinetic(w *sim.World) float64 {
	total := 0.0
	ps := w.Particles()
	for i := range ps {
		total += ps[i].KineticEnergy()
	}
	return total
}

// Population reports the live particle count.
type Population struct {
	n int
}

func NewPopulation() *Population { return &Population{} }

func (p *Population) Name() string         { return "population" }
func (p *Population) Observe(w *sim.World) { p.n = w.Len() }
func (p *Population) Value() float64       { return float64(p.n) }
func (p *Population) Reset()               { p.n = 0 }

// Links averages the number of interacting pairs per step.
type Links struct {
	total   int
	samples int
}

func NewLinks() *Links { return &Links{} }

func (l *Links) Name() string { return "links" }

func (l *Links) Observe(w *sim.World) {
	l.total += w.Links()
	l.samples++
}

func (l *Links) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.total) / float64(l.samples)
}

func (l *Links) Reset() {
	l.total = 0
	l.samples = 0
}
