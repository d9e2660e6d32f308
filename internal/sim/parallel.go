package sim

import (
	"context"
	"sync"

	"github.com/san-kum/playground/internal/dynamo"
)

// EnsembleResult is the outcome of one headless run.
type EnsembleResult struct {
	Seed      int64
	Steps     int
	Particles int
	Metrics   map[string]float64
}

// Ensemble runs independent worlds, one per seed, on separate goroutines.
// Worlds share nothing, so each run is still single-threaded.
type Ensemble struct {
	bounds    dynamo.Bounds
	settings  dynamo.Settings
	numRuns   int
	seedStart int64
}

func NewEnsemble(bounds dynamo.Bounds, settings dynamo.Settings, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{bounds: bounds, settings: settings, numRuns: numRuns, seedStart: seedStart}
}

// Run advances every world by steps without a surface. newMetrics is called
// once per run so metrics are never shared between goroutines. Cancelling ctx
// stops all runs at their next step.
func (e *Ensemble) Run(ctx context.Context, steps int, newMetrics func() []Metric) ([]EnsembleResult, error) {
	results := make([]EnsembleResult, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := e.seedStart + int64(idx)
			w := NewWorld(e.bounds, e.settings, seed)
			stepper := NewStepper()
			if newMetrics != nil {
				for _, m := range newMetrics() {
					stepper.AddMetric(m)
				}
			}

			for n := 0; n < steps; n++ {
				select {
				case <-ctx.Done():
					errs[idx] = ctx.Err()
					return
				default:
				}
				stepper.Step(w, nil)
			}

			results[idx] = EnsembleResult{
				Seed:      seed,
				Steps:     stepper.Steps(),
				Particles: w.Len(),
				Metrics:   stepper.Metrics(),
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
