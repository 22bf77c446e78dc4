package config

import (
	"fmt"
	"sort"
)

func preset(name string, vortices []VortexConfig, rows []RowConfig) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Vortices = vortices
	cfg.Rows = rows
	return cfg
}

var Presets = map[string]*Config{
	"single": preset("single",
		[]VortexConfig{{Strength: 5, X: 0, Y: 0}}, nil),
	"offset": preset("offset",
		[]VortexConfig{{Strength: -3, X: 0.7, Y: 0.3}}, nil),
	"pair": preset("pair",
		[]VortexConfig{{Strength: 5, X: 0, Y: 0.5}, {Strength: -5, X: 0, Y: -0.5}}, nil),
	"corotating": preset("corotating",
		[]VortexConfig{{Strength: 5, X: -0.5, Y: 0}, {Strength: 5, X: 0.5, Y: 0}}, nil),
	"quad": preset("quad",
		[]VortexConfig{
			{Strength: 3, X: -0.5, Y: 0.5},
			{Strength: -3, X: 0.5, Y: 0.5},
			{Strength: 3, X: 0.5, Y: -0.5},
			{Strength: -3, X: -0.5, Y: -0.5},
		}, nil),
	"row": preset("row",
		nil, []RowConfig{{Strength: 1, Spacing: 1}}),
	"row_with_vortex": preset("row_with_vortex",
		[]VortexConfig{{Strength: 2, X: 0.5, Y: 0.6}}, []RowConfig{{Strength: 1, Spacing: 1}}),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return cfg.Clone(), nil
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
