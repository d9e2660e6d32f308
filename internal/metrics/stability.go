package metrics

import (
	"github.com/san-kum/playground/internal/sim"
)

// Stability is the fraction of observed steps in which no particle moved
// faster than threshold. A settled field approaches 1.
type Stability struct {
	threshold float64
	unsettled int
	steps     int
	fastest   float64
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(w *sim.World) {
	s.steps++
	top := 0.0
	ps := w.Particles()
	for i := range ps {
		top = max(top, ps[i].Vel.Norm())
	}
	if top > s.threshold {
		s.unsettled++
	}
	s.fastest = max(s.fastest, top)
}

func (s *Stability) Value() float64 {
	if s.steps == 0 {
		return 1
	}
	return 1 - float64(s.unsettled)/float64(s.steps)
}

// Fastest is the highest particle speed seen since the last reset.
func (s *Stability) Fastest() float64 { return s.fastest }

func (s *Stability) Reset() {
	*s = Stability{threshold: s.threshold}
}
