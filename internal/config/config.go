package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/playground/internal/dynamo"
)

const (
	DefaultWidth   = 1280
	DefaultHeight  = 720
	DefaultFPS     = 60
	DefaultCadence = "frame"
	MaxFPS         = 240
)

type Config struct {
	Count         int     `yaml:"count" toml:"count"`
	PointerRadius float64 `yaml:"pointer_radius" toml:"pointer_radius"`
	Links         bool    `yaml:"links" toml:"links"`
	Width         int     `yaml:"width" toml:"width"`
	Height        int     `yaml:"height" toml:"height"`
	Seed          int64   `yaml:"seed" toml:"seed"`
	Cadence       string  `yaml:"cadence" toml:"cadence"`
	FPS           int     `yaml:"fps" toml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:         dynamo.DefaultCount,
		PointerRadius: dynamo.DefaultPointerRadius,
		Links:         true,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Cadence:       DefaultCadence,
		FPS:           DefaultFPS,
	}
}

// Load reads a YAML or TOML file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes path over cfg. Keys missing from the file leave the
// matching fields of cfg untouched.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch format(path) {
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnsupportedFormat, path)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	switch format(path) {
	case "yaml":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		data = out
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnsupportedFormat, path)
	}
	return os.WriteFile(path, data, 0644)
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return ""
}

// Validate checks the sliders' ranges and the surface size.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Bounds().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		return fmt.Errorf("invalid config: %w", &dynamo.ParameterError{Name: "fps", Value: float64(c.FPS), Min: 1, Max: MaxFPS})
	}
	switch strings.ToLower(c.Cadence) {
	case "", "frame", "fixed":
	default:
		return fmt.Errorf("invalid config: %w: %q", dynamo.ErrUnknownCadence, c.Cadence)
	}
	return nil
}

func (c *Config) Settings() dynamo.Settings {
	return dynamo.Settings{
		Count:         c.Count,
		PointerRadius: c.PointerRadius,
		Links:         c.Links,
	}
}

func (c *Config) Bounds() dynamo.Bounds {
	return dynamo.Bounds{Width: float64(c.Width), Height: float64(c.Height)}
}
