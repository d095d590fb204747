package config

import (
	"sort"

	"github.com/san-kum/bistable/internal/dynamo"
)

var Presets = map[string]func(*Config){
	// symmetric double well, particle balanced on the unstable top
	"pitchfork": func(c *Config) {
		c.Params = dynamo.Params{R: 1, H: 0}
	},
	// single well, every trajectory returns to zero
	"subcritical": func(c *Config) {
		c.Params = dynamo.Params{R: -1, H: 0}
		c.Initial.X = 2
	},
	// tilted double well
	"imperfect": func(c *Config) {
		c.Params = dynamo.Params{R: 2, H: 0.5}
		c.Initial.X = -0.5
	},
	// beyond the fold, only the right well survives
	"hysteresis": func(c *Config) {
		c.Params = dynamo.Params{R: 3, H: 2.5}
		c.Initial.X = -1.7
	},
	"noisy": func(c *Config) {
		c.Params = dynamo.Params{R: 1, H: 0}
		c.Noise.Enabled = true
		c.Noise.Seed = 1
	},
}

// GetPreset returns the default configuration with the named preset applied.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for k := range Presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
