package sim

import (
	"github.com/san-kum/playground/internal/dynamo"
	"github.com/san-kum/playground/internal/field"
)

// Stepper advances a World by one display frame.
type Stepper struct {
	metrics   []Metric
	observers []Observer
	steps     int
}

func NewStepper() *Stepper {
	return &Stepper{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Stepper) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Stepper) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Stepper) Steps() int             { return s.steps }

func (s *Stepper) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// ResetMetrics clears every metric and the step counter.
func (s *Stepper) ResetMetrics() {
	s.steps = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Step applies the pointer field, then the pairwise field, then integrates
// and renders every particle. All forces are computed from the positions
// at the start of the step. surf may be nil, in which case nothing is drawn.
func (s *Stepper) Step(w *World, surf dynamo.Surface) StepStats {
	stats := StepStats{Step: s.steps, Particles: len(w.particles)}

	if w.pointer.Active {
		stats.Pushed = applyPointer(w)
	}
	if w.settings.Links {
		stats.Links = applyPairs(w, surf)
	}
	w.links = stats.Links

	for i := range w.particles {
		p := &w.particles[i]
		p.Integrate(w.bounds)
		if surf != nil {
			p.Render(surf)
		}
	}

	s.steps++
	for _, m := range s.metrics {
		m.Observe(w)
	}
	for _, o := range s.observers {
		o.OnStep(w, stats)
	}
	return stats
}

// Draw paints the current state without advancing it: links (when enabled)
// then particles.
func (s *Stepper) Draw(w *World, surf dynamo.Surface) {
	if surf == nil {
		return
	}
	if w.settings.Links {
		ps := w.particles
		for i := 0; i < len(ps); i++ {
			for j := i + 1; j < len(ps); j++ {
				if pr, ok := field.Pairwise(ps[i].Pos, ps[j].Pos); ok {
					drawLink(surf, ps[i].Pos, ps[j].Pos, pr.Link)
				}
			}
		}
	}
	for i := range w.particles {
		w.particles[i].Render(surf)
	}
}

func applyPointer(w *World) int {
	ptr := w.pointer.Pos()
	n := 0
	for i := range w.particles {
		p := &w.particles[i]
		if f, ok := field.Pointer(ptr, p.Pos, w.settings.PointerRadius); ok {
			p.ApplyForce(f)
			n++
		}
	}
	return n
}

// applyPairs visits every unordered pair i<j in creation order. Forces are
// applied as the pairs are visited, so later pairs see updated velocities
// but never updated positions.
func applyPairs(w *World, surf dynamo.Surface) int {
	ps := w.particles
	links := 0
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			pr, ok := field.Pairwise(ps[i].Pos, ps[j].Pos)
			if !ok {
				continue
			}
			links++
			if surf != nil {
				drawLink(surf, ps[i].Pos, ps[j].Pos, pr.Link)
			}
			ps[i].ApplyForce(pr.Force)
			ps[j].ApplyForce(pr.Force.Neg())
		}
	}
	return links
}

func drawLink(surf dynamo.Surface, a, b dynamo.Vec2, alpha float64) {
	surf.StrokeLine(a.X, a.Y, b.X, b.Y, field.LinkWidth, field.LinkColor(alpha))
}
