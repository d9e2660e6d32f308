package main

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/playground/internal/config"
	"github.com/san-kum/playground/internal/export"
	"github.com/san-kum/playground/internal/loop"
	"github.com/san-kum/playground/internal/metrics"
	"github.com/san-kum/playground/internal/raster"
	"github.com/san-kum/playground/internal/sim"
)

// stabilityThreshold is the speed, in pixels per step, above which a step
// counts as unsettled.
const stabilityThreshold = 2.0

var background = color.NRGBA{R: 17, G: 24, B: 39, A: 255}

type benchResult struct {
	Frames    int
	Steps     int
	Elapsed   time.Duration
	Metrics   map[string]float64
	Energy    []float64
	Surface   *raster.Surface
	Spawned   int
	Particles int

	world   *sim.World
	stepper *sim.Stepper
}

// runBench drives a loop over an in-memory surface with a simulated clock.
// With sweep set, a pointer traces a Lissajous curve across the field and
// clicks once every second of simulated time.
func runBench(cfg *config.Config, c loop.Cadence, n int, sweep bool) (*benchResult, error) {
	if n < 1 {
		return nil, fmt.Errorf("frames must be positive, got %d", n)
	}

	surf := raster.New(cfg.Width, cfg.Height)
	surf.Clear(background)

	stepper := sim.NewStepper()
	energy := metrics.NewEnergy()
	stepper.AddMetric(energy)
	stepper.AddMetric(metrics.NewPopulation())
	stepper.AddMetric(metrics.NewLinks())
	stepper.AddMetric(metrics.NewStability(stabilityThreshold))

	series := metrics.NewSeries(n)
	queue := loop.NewFrameQueue()
	world := sim.NewWorld(cfg.Bounds(), cfg.Settings().Clamp(), cfg.Seed)
	l := loop.New(world, queue,
		loop.WithCadence(c),
		loop.WithStepper(stepper),
	)
	l.Attach(surf)
	l.Start()
	defer l.Teardown()

	res := &benchResult{Frames: n}
	rate := max(cfg.FPS, 1)
	frameDur := time.Second / time.Duration(rate)
	w, h := float64(cfg.Width), float64(cfg.Height)

	start := time.Now()
	for i := 0; i < n; i++ {
		if sweep {
			t := float64(i) / float64(rate)
			l.PointerMove(w/2+w/3*math.Sin(t*1.3), h/2+h/3*math.Sin(t*0.7))
			if i%rate == 0 {
				p := world.Pointer()
				res.Spawned += l.Click(p.X, p.Y)
			}
		}
		queue.Pump(time.Duration(i) * frameDur)
		series.Push(energy.Value())
	}
	res.Elapsed = time.Since(start)

	res.Steps = stepper.Steps()
	res.Metrics = stepper.Metrics()
	res.Energy = series.Values()
	res.Surface = surf
	res.Particles = world.Len()
	res.world, res.stepper = world, stepper
	return res, nil
}

func benchField(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	c, err := loop.ParseCadence(cfg.Cadence)
	if err != nil {
		return err
	}

	if runs > 1 {
		if err := checkEnsembleFlags(cmd); err != nil {
			return err
		}
		return benchEnsemble(cmd.Context(), cfg)
	}

	res, err := runBench(cfg, c, frames, sweep)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d particles, influence %.0f, links %v, cadence %s\n\n",
		cfg.Count, cfg.PointerRadius, cfg.Links, c)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAMES\tSTEPS\tTIME\tFRAMES/SEC\tSPAWNED\tPARTICLES")
	fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%d\t%d\n",
		res.Frames, res.Steps, res.Elapsed.Round(time.Microsecond),
		float64(res.Frames)/res.Elapsed.Seconds(), res.Spawned, res.Particles)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range []string{"energy", "population", "links", "stability"} {
		fmt.Fprintf(w, "%s\t%.4f\n", name, res.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(res.Energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(res.Energy,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy per frame"),
		))
	}

	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := png.Encode(f, res.Surface.Image()); err != nil {
			return fmt.Errorf("encode %s: %w", outFile, err)
		}
		fmt.Printf("\nwrote %s\n", outFile)
	}

	if svgFile != "" {
		doc := export.NewSVG(float64(cfg.Width), float64(cfg.Height), background)
		res.stepper.Draw(res.world, doc)
		if err := doc.WriteFile(svgFile); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s (%d shapes)\n", svgFile, doc.Shapes())
	}
	return nil
}

// checkEnsembleFlags rejects flags that only make sense for a single
// painted run.
func checkEnsembleFlags(cmd *cobra.Command) error {
	for _, name := range []string{"sweep", "out", "svg", "cadence"} {
		if cmd.Flags().Changed(name) {
			return fmt.Errorf("--%s cannot be combined with --runs %d", name, runs)
		}
	}
	return nil
}

// benchEnsemble steps one world per seed concurrently, headless, and
// tabulates the final metrics of each.
func benchEnsemble(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ens := sim.NewEnsemble(cfg.Bounds(), cfg.Settings().Clamp(), runs, cfg.Seed)

	start := time.Now()
	results, err := ens.Run(ctx, frames, func() []sim.Metric {
		return []sim.Metric{
			metrics.NewEnergy(),
			metrics.NewLinks(),
			metrics.NewStability(stabilityThreshold),
		}
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("benchmarking %d runs of %d steps, %d particles each\n\n", runs, frames, cfg.Count)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tENERGY\tLINKS\tSTABILITY")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.1f\t%.3f\n",
			r.Seed, r.Steps, r.Metrics["energy"], r.Metrics["links"], r.Metrics["stability"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d steps in %v (%.0f steps/sec)\n", runs*frames, elapsed.Round(time.Microsecond),
		float64(runs*frames)/elapsed.Seconds())
	return nil
}
