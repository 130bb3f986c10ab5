package config

import (
	"fmt"
	"sort"
)

// Preset is a named board configuration.
type Preset struct {
	Name            string
	Title           string
	Size            int
	WinTarget       int
	FourProbability float64
}

// Presets lists the built-in board configurations.
var Presets = []Preset{
	{Name: "classic", Title: "Classic", Size: 4, WinTarget: 2048, FourProbability: 0.5},
	{Name: "original", Title: "Original odds", Size: 4, WinTarget: 2048, FourProbability: 0.1},
	{Name: "mini", Title: "Mini", Size: 3, WinTarget: 256, FourProbability: 0.5},
	{Name: "large", Title: "Large", Size: 5, WinTarget: 4096, FourProbability: 0.5},
	{Name: "huge", Title: "Huge", Size: 6, WinTarget: 8192, FourProbability: 0.5},
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetNames returns all preset names, sorted.
func PresetNames() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overwrites the game section with the named preset.
func ApplyPreset(cfg *Config, name string) error {
	p, ok := LookupPreset(name)
	if !ok {
		return fmt.Errorf("config: unknown preset %q (available: %v)", name, PresetNames())
	}
	cfg.Game.Preset = p.Name
	cfg.Game.Size = p.Size
	cfg.Game.WinTarget = p.WinTarget
	cfg.Game.FourProbability = p.FourProbability
	return nil
}
