package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/adsorb/internal/ode"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.01, cfg.K2)
	assert.Equal(t, 50.0, cfg.Qe)
	assert.Equal(t, 0.0, cfg.Q0)
	assert.Equal(t, 0.0, cfg.TStart)
	assert.Equal(t, 100.0, cfg.TEnd)
	assert.Equal(t, 500, cfg.Samples)
	assert.Equal(t, "rk45", cfg.Integrator)
	assert.True(t, cfg.Output.Chart)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k2: 0.02\nq0: 5\noutput:\n  csv: out.csv\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.02, cfg.K2)
	assert.Equal(t, 5.0, cfg.Q0)
	assert.Equal(t, 50.0, cfg.Qe, "unset fields keep defaults")
	assert.Equal(t, 500, cfg.Samples)
	assert.Equal(t, "out.csv", cfg.Output.CSV)
	assert.Equal(t, DefaultChartWidth, cfg.Output.ChartWidth)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k2: [not a number\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("slow")
	require.NotNil(t, cfg)

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
}

func TestParamsAndOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integrator = "rk4"
	cfg.RelTol = 1e-4

	p := cfg.Params()
	assert.Equal(t, cfg.K2, p.K2)
	assert.Equal(t, cfg.Samples, p.Samples)

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.IsType(t, &ode.RK4{}, opts.Integrator)
	assert.Equal(t, 1e-4, opts.Solver.RelTol)

	cfg.Integrator = "midpoint"
	_, err = cfg.Options()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"NaN k2", func(c *Config) { c.K2 = math.NaN() }},
		{"zero qe", func(c *Config) { c.Qe = 0 }},
		{"q0 above qe", func(c *Config) { c.Q0 = 51 }},
		{"empty span", func(c *Config) { c.TEnd = 0 }},
		{"one sample", func(c *Config) { c.Samples = 1 }},
		{"unknown integrator", func(c *Config) { c.Integrator = "midpoint" }},
		{"zero rtol", func(c *Config) { c.RelTol = 0 }},
		{"negative atol", func(c *Config) { c.AbsTol = -1 }},
		{"zero substeps", func(c *Config) { c.Substeps = 0 }},
		{"zero chart height", func(c *Config) { c.Output.ChartHeight = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.K2 = -1
	cfg.Substeps = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "k2")
	assert.Contains(t, err.Error(), "substeps")
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("preloaded")
	require.NotNil(t, cfg)
	assert.Equal(t, 20.0, cfg.Q0)

	cfg.Q0 = 99
	assert.Equal(t, 20.0, GetPreset("preloaded").Q0, "presets are copied")
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	assert.Contains(t, presets, "reference")
	assert.IsIncreasing(t, presets)

	for _, name := range presets {
		assert.NoError(t, GetPreset(name).Validate(), name)
	}
}

func TestLoadOver_KeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("samples: 50\n"), 0644))

	base := GetPreset("fast")
	require.NotNil(t, base)

	cfg, err := LoadOver(path, base)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Samples)
	assert.Equal(t, GetPreset("fast").K2, cfg.K2, "preset value survives overlay")
}
