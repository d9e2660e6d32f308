package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/playground/internal/dynamo"
)

// Presets are named starting points for the three sliders.
var Presets = map[string]dynamo.Settings{
	"calm":   {Count: 80, PointerRadius: 100, Links: true},
	"swarm":  {Count: 300, PointerRadius: 150, Links: true},
	"sparse": {Count: 50, PointerRadius: 300, Links: false},
	"storm":  {Count: 250, PointerRadius: 300, Links: true},
}

func GetPreset(name string) (dynamo.Settings, error) {
	s, ok := Presets[name]
	if !ok {
		return dynamo.Settings{}, fmt.Errorf("%w: %s", dynamo.ErrUnknownPreset, name)
	}
	return s, nil
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply overwrites the slider fields of c with preset name.
func (c *Config) Apply(name string) error {
	s, err := GetPreset(name)
	if err != nil {
		return err
	}
	c.Count = s.Count
	c.PointerRadius = s.PointerRadius
	c.Links = s.Links
	return nil
}
