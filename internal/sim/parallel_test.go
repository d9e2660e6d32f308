package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/playground/internal/dynamo"
	"github.com/san-kum/playground/internal/metrics"
	"github.com/san-kum/playground/internal/sim"
)

var _ = Describe("Ensemble", func() {
	settings := dynamo.Settings{Count: 60, PointerRadius: 100, Links: true}
	energy := func() []sim.Metric { return []sim.Metric{metrics.NewEnergy()} }

	It("runs one world per seed", func() {
		res, err := sim.NewEnsemble(screen, settings, 3, 7).Run(context.Background(), 20, energy)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(HaveLen(3))
		for i, r := range res {
			Expect(r.Seed).To(Equal(int64(7 + i)))
			Expect(r.Steps).To(Equal(20))
			Expect(r.Particles).To(Equal(60))
			Expect(r.Metrics).To(HaveKey("energy"))
		}
	})

	It("matches a serial run with the same seed", func() {
		res, err := sim.NewEnsemble(screen, settings, 2, 11).Run(context.Background(), 15, energy)
		Expect(err).NotTo(HaveOccurred())

		w := sim.NewWorld(screen, settings, 12)
		stepper := sim.NewStepper()
		e := metrics.NewEnergy()
		stepper.AddMetric(e)
		for i := 0; i < 15; i++ {
			stepper.Step(w, nil)
		}
		Expect(res[1].Metrics["energy"]).To(Equal(e.Value()))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := sim.NewEnsemble(screen, settings, 2, 1).Run(ctx, 1000, nil)
		Expect(err).To(MatchError(context.Canceled))
	})
})
