package ode

import (
	"math"

	"github.com/pkg/errors"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is the right-hand side of dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator takes one trial step and reports the scaled error ratio
// (accept when <= 1) together with the step size it proposes next.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, rtol, atol float64) (xNew State, errRatio float64, dtNext float64)
}

// Config controls Solve. Zero InitialStep or MaxStep mean automatic and unbounded.
type Config struct {
	RelTol      float64
	AbsTol      float64
	InitialStep float64
	MinStep     float64
	MaxStep     float64
	MaxSteps    int
	Substeps    int
}

func DefaultConfig() Config {
	return Config{
		RelTol:   1e-6,
		AbsTol:   1e-9,
		MinStep:  1e-12,
		MaxSteps: 100000,
		Substeps: 20,
	}
}

func (c Config) validate() error {
	if !(c.RelTol > 0) {
		return errors.Wrapf(ErrInvalidConfig, "rtol must be positive, got %g", c.RelTol)
	}
	if !(c.AbsTol >= 0) {
		return errors.Wrapf(ErrInvalidConfig, "atol must be non-negative, got %g", c.AbsTol)
	}
	if !(c.MinStep > 0) {
		return errors.Wrapf(ErrInvalidConfig, "min step must be positive, got %g", c.MinStep)
	}
	if c.MaxSteps <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "max steps must be positive, got %d", c.MaxSteps)
	}
	if c.Substeps <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "substeps must be positive, got %d", c.Substeps)
	}
	return nil
}

// Stats describes the work done by one Solve call.
type Stats struct {
	Steps       int     `json:"steps"`
	Rejected    int     `json:"rejected"`
	Evaluations int     `json:"evaluations"`
	LastStep    float64 `json:"last_step"`
	MinStep     float64 `json:"min_step"`
	MaxStep     float64 `json:"max_step"`
}

// Trajectory holds the states reported at each grid time. On failure it
// contains the prefix of grid points reached before the error.
type Trajectory struct {
	Times  []float64
	States []State
	Stats  Stats
}

// Component returns the i-th state variable across all samples.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr.States))
	for k, s := range tr.States {
		if i < len(s) {
			out[k] = s[i]
		}
	}
	return out
}
