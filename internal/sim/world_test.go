package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/playground/internal/dynamo"
	"github.com/san-kum/playground/internal/particle"
	"github.com/san-kum/playground/internal/sim"
)

var screen = dynamo.Bounds{Width: 800, Height: 600}

// empty returns a world with no particles so tests can place their own.
func empty(s dynamo.Settings) *sim.World {
	s.Count = 0
	return sim.NewWorld(screen, s, 1)
}

func still(x, y float64) particle.Particle {
	return particle.Particle{Pos: dynamo.Vec2{X: x, Y: y}, Radius: 2, Mass: 2, Color: particle.Palette[0], Opacity: 1}
}

var _ = Describe("World", func() {
	var w *sim.World

	BeforeEach(func() {
		w = sim.NewWorld(screen, dynamo.DefaultSettings(), 42)
	})

	Describe("Reset", func() {
		It("fills to exactly Count particles inside the bounds", func() {
			Expect(w.Len()).To(Equal(dynamo.DefaultCount))
			for _, p := range w.Particles() {
				Expect(screen.Contains(p.Pos)).To(BeTrue())
			}
		})

		It("discards spawned particles and uses the current Count", func() {
			w.Spawn(100, 100)
			w.SetSettings(dynamo.Settings{Count: 60, PointerRadius: 100})
			Expect(w.Len()).To(BeNumerically(">", dynamo.DefaultCount))

			w.Reset()
			Expect(w.Len()).To(Equal(60))
		})

		It("does not change the population when only settings change", func() {
			w.SetSettings(dynamo.Settings{Count: 300, PointerRadius: 100})
			Expect(w.Len()).To(Equal(dynamo.DefaultCount))
		})
	})

	Describe("Spawn", func() {
		It("adds a cluster of 10 to 15 particles around the click", func() {
			before := w.Len()
			n := w.Spawn(400, 300)

			Expect(n).To(BeNumerically(">=", sim.ClusterMin))
			Expect(n).To(BeNumerically("<=", sim.ClusterMax))
			Expect(w.Len()).To(Equal(before + n))

			for _, p := range w.Particles()[before:] {
				Expect(p.Pos.X).To(BeNumerically("~", 400, 25))
				Expect(p.Pos.Y).To(BeNumerically("~", 300, 25))
			}
		})

		It("accepts clicks outside the bounds", func() {
			before := w.Len()
			n := w.Spawn(-100, 900)
			Expect(w.Len()).To(Equal(before + n))
		})

		It("ignores non-finite clicks", func() {
			before := w.Len()
			Expect(w.Spawn(math.NaN(), 300)).To(Equal(0))
			Expect(w.Spawn(400, math.Inf(1))).To(Equal(0))
			Expect(w.Len()).To(Equal(before))
		})

		It("never exceeds the cap and keeps the newest particles", func() {
			total := w.Len()
			for i := 0; i < 60; i++ {
				total += w.Spawn(float64(i*10), 300)
				Expect(w.Len()).To(BeNumerically("<=", sim.MaxParticles))
			}
			Expect(w.Len()).To(Equal(sim.MaxParticles))

			ps := w.Particles()
			Expect(ps[0].ID).To(Equal(uint64(total - sim.MaxParticles)))
			Expect(ps[len(ps)-1].ID).To(Equal(uint64(total - 1)))
			for i := 1; i < len(ps); i++ {
				Expect(ps[i].ID).To(Equal(ps[i-1].ID + 1))
			}
		})
	})

	Describe("Resize", func() {
		It("updates bounds without reflowing particles", func() {
			before := append([]particle.Particle(nil), w.Particles()...)
			w.Resize(200, 100)

			Expect(w.Bounds()).To(Equal(dynamo.Bounds{Width: 200, Height: 100}))
			Expect(w.Particles()).To(Equal(before))
		})
	})

	Describe("Pointer", func() {
		It("activates on move and keeps the position on release", func() {
			w.MovePointer(10, 20)
			Expect(w.Pointer()).To(Equal(dynamo.Pointer{X: 10, Y: 20, Active: true}))

			w.ReleasePointer()
			Expect(w.Pointer()).To(Equal(dynamo.Pointer{X: 10, Y: 20, Active: false}))
		})

		It("ignores non-finite moves", func() {
			w.MovePointer(10, 20)
			w.MovePointer(math.NaN(), 5)
			Expect(w.Pointer()).To(Equal(dynamo.Pointer{X: 10, Y: 20, Active: true}))
		})
	})
})

var _ = Describe("Stepper", func() {
	var st *sim.Stepper

	BeforeEach(func() {
		st = sim.NewStepper()
	})

	It("keeps every particle inside the bounds after each step", func() {
		w := sim.NewWorld(screen, dynamo.Settings{Count: 300, PointerRadius: 300, Links: true}, 3)
		for i := 0; i < 40; i++ {
			w.Spawn(float64(i*20), float64(i*15))
		}
		w.MovePointer(400, 300)

		for step := 0; step < 200; step++ {
			st.Step(w, nil)
			for _, p := range w.Particles() {
				Expect(screen.Contains(p.Pos)).To(BeTrue(), "step %d particle %d at %v", step, p.ID, p.Pos)
			}
		}
	})

	It("bleeds speed every step when no force acts", func() {
		w := sim.NewWorld(screen, dynamo.Settings{Count: 200, PointerRadius: 150, Links: false}, 5)
		speeds := func() []float64 {
			out := make([]float64, w.Len())
			for i, p := range w.Particles() {
				out[i] = p.Vel.Norm()
			}
			return out
		}

		prev := speeds()
		for step := 0; step < 300; step++ {
			st.Step(w, nil)
			cur := speeds()
			for i := range cur {
				if prev[i] == 0 {
					Expect(cur[i]).To(BeZero())
				} else {
					Expect(cur[i]).To(BeNumerically("<", prev[i]))
				}
			}
			prev = cur
		}
		for _, v := range prev {
			Expect(v).To(BeNumerically("<", 0.1))
		}
	})

	It("reflects, clamps and applies friction at the right wall", func() {
		w := empty(dynamo.Settings{PointerRadius: 150})
		p := still(799, 300)
		p.Vel = dynamo.Vec2{X: 5}
		w.Add(p)

		st.Step(w, nil)

		got := w.Particles()[0]
		Expect(got.Pos.X).To(Equal(800.0))
		Expect(got.Vel.X).To(BeNumerically("~", -4.455, 1e-9))
		Expect(got.Vel.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("pushes a particle away from an active pointer in the same frame", func() {
		w := empty(dynamo.Settings{PointerRadius: 150})
		w.Add(still(400, 220))
		w.MovePointer(400, 300)

		stats := st.Step(w, nil)

		f := 0.5 * (150.0 - 80.0) / 150.0
		got := w.Particles()[0]
		Expect(stats.Pushed).To(Equal(1))
		Expect(got.Pos.Y).To(BeNumerically("~", 220-f, 1e-12))
		Expect(got.Vel.Y).To(BeNumerically("~", -f*particle.Friction, 1e-12))
		Expect(got.Vel.X).To(BeNumerically("~", 0, 1e-12))
	})

	It("ignores the pointer once released", func() {
		w := empty(dynamo.Settings{PointerRadius: 150})
		w.Add(still(400, 220))
		w.MovePointer(400, 300)
		w.ReleasePointer()

		stats := st.Step(w, nil)
		Expect(stats.Pushed).To(BeZero())
		Expect(w.Particles()[0].Vel).To(Equal(dynamo.Vec2{}))
	})

	It("applies equal and opposite pairwise forces", func() {
		w := empty(dynamo.Settings{PointerRadius: 150, Links: true})
		w.Add(still(300, 300))
		w.Add(still(318, 324))

		stats := st.Step(w, nil)

		ps := w.Particles()
		Expect(stats.Links).To(Equal(1))
		Expect(w.Links()).To(Equal(1))
		Expect(ps[0].Vel.X).To(BeNumerically("~", -ps[1].Vel.X, 1e-15))
		Expect(ps[0].Vel.Y).To(BeNumerically("~", -ps[1].Vel.Y, 1e-15))
		Expect(ps[0].Vel.Norm()).To(BeNumerically(">", 0))
	})

	DescribeTable("changes sign at half the interaction radius",
		func(gap float64, apart bool) {
			w := empty(dynamo.Settings{PointerRadius: 150, Links: true})
			w.Add(still(300, 300))
			w.Add(still(300+gap, 300))

			st.Step(w, nil)

			ps := w.Particles()
			d := ps[1].Pos.X - ps[0].Pos.X
			if apart {
				Expect(d).To(BeNumerically(">", gap))
			} else {
				Expect(d).To(BeNumerically("<", gap))
			}
		},
		Entry("just inside repels", 40-1e-3, true),
		Entry("just outside attracts", 40+1e-3, false),
		Entry("close pair repels", 10.0, true),
		Entry("far pair attracts", 79.0, false),
	)

	It("skips coincident particles", func() {
		w := empty(dynamo.Settings{PointerRadius: 150, Links: true})
		w.Add(still(300, 300))
		w.Add(still(300, 300))

		stats := st.Step(w, nil)
		Expect(stats.Links).To(BeZero())
		for _, p := range w.Particles() {
			Expect(p.Vel.IsValid()).To(BeTrue())
			Expect(p.Vel).To(Equal(dynamo.Vec2{}))
		}
	})

	It("does not apply pairwise forces when links are off", func() {
		w := empty(dynamo.Settings{PointerRadius: 150, Links: false})
		w.Add(still(300, 300))
		w.Add(still(320, 300))

		stats := st.Step(w, nil)
		Expect(stats.Links).To(BeZero())
		for _, p := range w.Particles() {
			Expect(p.Vel).To(Equal(dynamo.Vec2{}))
		}
	})
})
