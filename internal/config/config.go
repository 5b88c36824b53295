package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/adsorb/internal/kinetics"
	"github.com/san-kum/adsorb/internal/ode"
)

const (
	DefaultChartWidth  = 80
	DefaultChartHeight = 15
)

type Config struct {
	K2         float64      `yaml:"k2"`
	Qe         float64      `yaml:"qe"`
	Q0         float64      `yaml:"q0"`
	TStart     float64      `yaml:"t_start"`
	TEnd       float64      `yaml:"t_end"`
	Samples    int          `yaml:"samples"`
	Integrator string       `yaml:"integrator"`
	RelTol     float64      `yaml:"rtol"`
	AbsTol     float64      `yaml:"atol"`
	MaxSteps   int          `yaml:"max_steps"`
	Substeps   int          `yaml:"substeps"`
	Output     OutputConfig `yaml:"output"`
}

type OutputConfig struct {
	Chart       bool   `yaml:"chart"`
	ChartWidth  int    `yaml:"chart_width"`
	ChartHeight int    `yaml:"chart_height"`
	CSV         string `yaml:"csv"`
	JSON        string `yaml:"json"`
	SVG         string `yaml:"svg"`
	Metrics     string `yaml:"metrics"`
}

func DefaultConfig() *Config {
	solver := ode.DefaultConfig()
	return &Config{
		K2:         kinetics.DefaultK2,
		Qe:         kinetics.DefaultQe,
		Q0:         kinetics.DefaultQ0,
		TStart:     kinetics.DefaultTStart,
		TEnd:       kinetics.DefaultTEnd,
		Samples:    kinetics.DefaultSamples,
		Integrator: ode.DefaultIntegrator,
		RelTol:     solver.RelTol,
		AbsTol:     solver.AbsTol,
		MaxSteps:   solver.MaxSteps,
		Substeps:   solver.Substeps,
		Output: OutputConfig{
			Chart:       true,
			ChartWidth:  DefaultChartWidth,
			ChartHeight: DefaultChartHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver overlays the file at path on base. Keys absent from the file keep
// base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: cannot read %s", path)
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, errors.Wrapf(err, "config: cannot parse %s", path)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "config: cannot encode")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "config: cannot write %s", path)
}

func (c *Config) Params() kinetics.Params {
	return kinetics.Params{
		K2:      c.K2,
		Qe:      c.Qe,
		Q0:      c.Q0,
		TStart:  c.TStart,
		TEnd:    c.TEnd,
		Samples: c.Samples,
	}
}

// Options builds the integrator and solver settings named by the config.
func (c *Config) Options() (kinetics.Options, error) {
	integ, err := ode.NewIntegrator(c.Integrator)
	if err != nil {
		return kinetics.Options{}, err
	}
	solver := ode.DefaultConfig()
	solver.RelTol = c.RelTol
	solver.AbsTol = c.AbsTol
	solver.MaxSteps = c.MaxSteps
	solver.Substeps = c.Substeps
	return kinetics.Options{Integrator: integ, Solver: solver}, nil
}

// Validate checks every field and reports all violations at once.
func (c *Config) Validate() error {
	var msgs []string

	if err := c.Params().Validate(); err != nil {
		msgs = append(msgs, err.Error())
	}

	if _, err := ode.NewIntegrator(c.Integrator); err != nil {
		msgs = append(msgs, err.Error())
	}
	if !(c.RelTol > 0) {
		msgs = append(msgs, fmt.Sprintf("rtol must be > 0, got %g", c.RelTol))
	}
	if !(c.AbsTol >= 0) {
		msgs = append(msgs, fmt.Sprintf("atol must be >= 0, got %g", c.AbsTol))
	}
	if c.MaxSteps <= 0 {
		msgs = append(msgs, fmt.Sprintf("max_steps must be > 0, got %d", c.MaxSteps))
	}
	if c.Substeps <= 0 {
		msgs = append(msgs, fmt.Sprintf("substeps must be > 0, got %d", c.Substeps))
	}
	if c.Output.ChartWidth <= 0 || c.Output.ChartHeight <= 0 {
		msgs = append(msgs, fmt.Sprintf("output.chart_width and output.chart_height must be > 0, got %dx%d", c.Output.ChartWidth, c.Output.ChartHeight))
	}

	if len(msgs) == 0 {
		return nil
	}
	return errors.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
