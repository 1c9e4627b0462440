package config

import (
	"sort"

	"github.com/san-kum/predprey/internal/predprey"
)

// Presets are named parameter sets for common regimes.
var Presets = map[string]predprey.Params{
	"default": predprey.DefaultParams(),
	"oscillating": {
		PreyBirthRate: 0.025, PredationRate: 0.0015, PredatorEfficiency: 0.0025, PredatorLossRate: 0.06,
		InitialPrey: 50, InitialPredators: 20, FinalTime: 365, Dt: 0.25,
	},
	// Starts on the coexistence point (d/c, a/b) of the oscillating rates.
	"equilibrium": {
		PreyBirthRate: 0.025, PredationRate: 0.0015, PredatorEfficiency: 0.0025, PredatorLossRate: 0.06,
		InitialPrey: 24, InitialPredators: 0.025 / 0.0015, FinalTime: 365, Dt: 0.25,
	},
	"static": {
		InitialPrey: 50, InitialPredators: 20, FinalTime: 365, Dt: 0.25,
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (predprey.Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
