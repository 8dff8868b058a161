package config

import "sort"

type Preset struct {
	Description string
	Energy      float64
}

var Presets = map[string]*Preset{
	"ember":    {Description: "dying embers, short red licks", Energy: 0.1},
	"campfire": {Description: "steady orange campfire", Energy: 0.5},
	"forge":    {Description: "forced-air forge, tall and bright", Energy: 0.8},
	"plasma":   {Description: "full-energy blue plasma jet", Energy: 1.0},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns preset names ordered by energy.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return Presets[names[i]].Energy < Presets[names[j]].Energy
	})
	return names
}

func (p *Preset) Apply(cfg *Config) {
	cfg.Energy = p.Energy
}
