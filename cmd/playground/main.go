package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/playground/internal/config"
	"github.com/san-kum/playground/internal/game"
	"github.com/san-kum/playground/internal/gui"
	"github.com/san-kum/playground/internal/loop"
	"github.com/san-kum/playground/internal/tui"
)

var (
	configFile string
	preset     string
	count      int
	influence  float64
	links      bool
	width      int
	height     int
	seed       int64
	cadence    string
	fps        int
	// bench only
	frames  int
	sweep   bool
	outFile string
	svgFile string
	runs    int
)

// main registers the playground commands. With no subcommand it opens the
// raylib window.
func main() {
	log.SetFlags(0)
	log.SetPrefix("playground: ")

	rootCmd := &cobra.Command{
		Use:          "playground",
		Short:        "interactive particle field",
		SilenceUsage: true,
		RunE:         runHost(gui.Run),
	}
	addFieldFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a raylib window",
		RunE:  runHost(gui.Run),
	}
	addFieldFlags(guiCmd)

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run in an ebiten window",
		RunE:  runHost(game.Run),
	}
	addFieldFlags(windowCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runHost(tui.Run),
	}
	addFieldFlags(tuiCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "step the field headless and report timings",
		RunE:  benchField,
	}
	addFieldFlags(benchCmd)
	addBenchFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARTICLES\tINFLUENCE\tLINKS")
			for _, name := range config.ListPresets() {
				s := config.Presets[name]
				fmt.Fprintf(w, "%s\t%d\t%.0f\t%v\n", name, s.Count, s.PointerRadius, s.Links)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file (yaml or toml) with the defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	addFieldFlags(initCmd)

	rootCmd.AddCommand(guiCmd, windowCmd, tuiCmd, benchCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFieldFlags(cmd *cobra.Command) {
	defaults := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset settings")
	cmd.Flags().IntVar(&count, "count", defaults.Count, "particles created on reset")
	cmd.Flags().Float64Var(&influence, "influence", defaults.PointerRadius, "pointer influence radius in pixels")
	cmd.Flags().BoolVar(&links, "links", defaults.Links, "enable pairwise forces and link lines")
	cmd.Flags().IntVar(&width, "width", defaults.Width, "surface width")
	cmd.Flags().IntVar(&height, "height", defaults.Height, "surface height")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&cadence, "cadence", defaults.Cadence, "step cadence: frame or fixed")
	cmd.Flags().IntVar(&fps, "fps", defaults.FPS, "target frame rate")
}

func addBenchFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", 600, "frames to run")
	cmd.Flags().BoolVar(&sweep, "sweep", false, "drag a pointer across the field")
	cmd.Flags().StringVar(&outFile, "out", "", "write the last frame to a PNG file")
	cmd.Flags().StringVar(&svgFile, "svg", "", "write the final state to an SVG file")
	cmd.Flags().IntVar(&runs, "runs", 1, "independent seeds to run concurrently; headless, no --sweep, --out, --svg or --cadence")
}

// resolveConfig layers the preset, then the config file, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Seed = seed

	if preset != "" {
		if err := cfg.Apply(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, err
		}
		if cfg.Seed == 0 {
			cfg.Seed = seed
		}
	}

	flags := cmd.Flags()
	fromFlags := configFile == "" && preset == ""
	if flags.Changed("count") || fromFlags {
		cfg.Count = count
	}
	if flags.Changed("influence") || fromFlags {
		cfg.PointerRadius = influence
	}
	if flags.Changed("links") || fromFlags {
		cfg.Links = links
	}
	if flags.Changed("width") || configFile == "" {
		cfg.Width = width
	}
	if flags.Changed("height") || configFile == "" {
		cfg.Height = height
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("cadence") || configFile == "" {
		cfg.Cadence = cadence
	}
	if flags.Changed("fps") || configFile == "" {
		cfg.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runHost(run func(*config.Config, loop.Cadence) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loop.ParseCadence(cfg.Cadence)
		if err != nil {
			return err
		}
		return run(cfg, c)
	}
}
