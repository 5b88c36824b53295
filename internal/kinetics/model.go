package kinetics

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/adsorb/internal/ode"
)

// RateLaw maps (t, q, k2, qe) to dq/dt. It must be evaluable at any q the
// integrator probes, including trial values outside the physical range.
type RateLaw func(t, q, k2, qe float64) float64

// PseudoSecondOrder is dq/dt = k2 (qe - q)^2.
func PseudoSecondOrder(t, q, k2, qe float64) float64 {
	d := qe - q
	return k2 * d * d
}

// Params is the fixed parameter set of one run.
type Params struct {
	K2      float64 `json:"k2"`
	Qe      float64 `json:"qe"`
	Q0      float64 `json:"q0"`
	TStart  float64 `json:"t_start"`
	TEnd    float64 `json:"t_end"`
	Samples int     `json:"samples"`
}

const (
	DefaultK2      = 0.01
	DefaultQe      = 50.0
	DefaultQ0      = 0.0
	DefaultTStart  = 0.0
	DefaultTEnd    = 100.0
	DefaultSamples = 500
)

func DefaultParams() Params {
	return Params{
		K2:      DefaultK2,
		Qe:      DefaultQe,
		Q0:      DefaultQ0,
		TStart:  DefaultTStart,
		TEnd:    DefaultTEnd,
		Samples: DefaultSamples,
	}
}

// Grid returns Samples evenly spaced times from TStart to TEnd inclusive.
func (p Params) Grid() ([]float64, error) {
	if p.Samples < 2 {
		return nil, errors.Wrapf(ode.ErrInvalidGrid, "samples must be >= 2, got %d", p.Samples)
	}
	if !isFinite(p.TStart) || !isFinite(p.TEnd) || p.TStart >= p.TEnd {
		return nil, errors.Wrapf(ode.ErrInvalidGrid, "time span [%g, %g] is not increasing", p.TStart, p.TEnd)
	}
	grid := floats.Span(make([]float64, p.Samples), p.TStart, p.TEnd)
	grid[0] = p.TStart
	grid[len(grid)-1] = p.TEnd
	return grid, nil
}

// Analytic is the closed-form solution q(t) = qe - 1/(k2 (t - t_start) + 1/(qe - q0)).
func (p Params) Analytic(t float64) float64 {
	if p.Q0 == p.Qe {
		return p.Qe
	}
	return p.Qe - 1/(p.K2*(t-p.TStart)+1/(p.Qe-p.Q0))
}

// InitialRate is dq/dt at t_start, in mg/(g·min).
func (p Params) InitialRate() float64 {
	return PseudoSecondOrder(p.TStart, p.Q0, p.K2, p.Qe)
}

// HalfTime is the time needed to cover half of the remaining capacity qe - q0.
func (p Params) HalfTime() float64 {
	return 1 / (p.K2 * (p.Qe - p.Q0))
}

// Validate reports physically meaningless parameters. Simulate never calls it.
func (p Params) Validate() error {
	var errs []string
	check := func(ok bool, msg string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Sprintf(msg, args...))
		}
	}

	check(isFinite(p.K2) && p.K2 > 0, "k2 must be a positive finite number, got %g", p.K2)
	check(isFinite(p.Qe) && p.Qe > 0, "qe must be a positive finite number, got %g", p.Qe)
	check(isFinite(p.Q0) && p.Q0 >= 0, "q0 must be a non-negative finite number, got %g", p.Q0)
	check(!(p.Q0 > p.Qe), "q0 (%g) must not exceed qe (%g)", p.Q0, p.Qe)
	check(isFinite(p.TStart) && isFinite(p.TEnd) && p.TStart < p.TEnd, "t_start (%g) must be less than t_end (%g)", p.TStart, p.TEnd)
	check(p.Samples >= 2, "samples must be >= 2, got %d", p.Samples)

	if len(errs) == 0 {
		return nil
	}
	return errors.Wrap(ErrInvalidParams, strings.Join(errs, "; "))
}

// ErrInvalidParams is returned by Validate.
var ErrInvalidParams = errors.New("kinetics: invalid parameters")

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// system adapts a RateLaw with bound constants to ode.System.
type system struct {
	law    RateLaw
	k2, qe float64
}

func (s *system) Dim() int { return 1 }

func (s *system) Derive(x ode.State, t float64) ode.State {
	return ode.State{s.law(t, x[0], s.k2, s.qe)}
}
