package main

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/playground/internal/config"
	"github.com/san-kum/playground/internal/loop"
)

func benchConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = 200, 150
	cfg.Count = 50
	cfg.Seed = 1
	return cfg
}

func TestRunBench(t *testing.T) {
	tests := []struct {
		name    string
		cadence loop.Cadence
	}{
		{"frame", loop.Frame},
		{"fixed", loop.Fixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := runBench(benchConfig(), tt.cadence, 30, false)
			if err != nil {
				t.Fatalf("runBench: %v", err)
			}
			if res.Steps != 30 {
				t.Errorf("steps = %d, want 30", res.Steps)
			}
			if len(res.Energy) != 30 {
				t.Errorf("energy samples = %d, want 30", len(res.Energy))
			}
			if res.Particles != 50 || res.Metrics["population"] != 50 {
				t.Errorf("particles = %d, population = %v", res.Particles, res.Metrics["population"])
			}
			if s := res.Metrics["stability"]; s < 0 || s > 1 {
				t.Errorf("stability = %v out of [0,1]", s)
			}
		})
	}
}

func TestRunBenchSweep(t *testing.T) {
	res, err := runBench(benchConfig(), loop.Frame, 30, true)
	if err != nil {
		t.Fatalf("runBench: %v", err)
	}
	if res.Spawned < 10 || res.Spawned > 15 {
		t.Errorf("spawned = %d, want one cluster", res.Spawned)
	}
	if res.Particles != 50+res.Spawned {
		t.Errorf("particles = %d, want %d", res.Particles, 50+res.Spawned)
	}
}

func TestRunBenchRejectsZeroFrames(t *testing.T) {
	if _, err := runBench(benchConfig(), loop.Frame, 0, false); err == nil {
		t.Error("expected error for zero frames")
	}
}

func TestCheckEnsembleFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   map[string]string
		wantErr bool
	}{
		{"plain", map[string]string{"runs": "4", "frames": "10"}, false},
		{"sweep", map[string]string{"runs": "4", "sweep": "true"}, true},
		{"png", map[string]string{"runs": "4", "out": "f.png"}, true},
		{"svg", map[string]string{"runs": "4", "svg": "f.svg"}, true},
		{"cadence", map[string]string{"runs": "4", "cadence": "fixed"}, true},
	}

	for _, tt := range tests {
		cmd := &cobra.Command{Use: "bench"}
		addFieldFlags(cmd)
		addBenchFlags(cmd)
		for k, v := range tt.flags {
			if err := cmd.Flags().Set(k, v); err != nil {
				t.Fatal(err)
			}
		}
		if err := checkEnsembleFlags(cmd); (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
