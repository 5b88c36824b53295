package config

import "sort"

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"fast": withParams(func(c *Config) {
		c.K2 = 0.05
		c.TEnd = 30
	}),
	"slow": withParams(func(c *Config) {
		c.K2 = 0.002
		c.TEnd = 500
	}),
	"preloaded": withParams(func(c *Config) {
		c.Q0 = 20
	}),
	"saturated": withParams(func(c *Config) {
		c.Q0 = c.Qe
	}),
	"high-capacity": withParams(func(c *Config) {
		c.Qe = 120
		c.K2 = 0.002
		c.TEnd = 200
	}),
}

func withParams(edit func(*Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
