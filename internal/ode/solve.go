package ode

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

type countingSystem struct {
	System
	evals int
}

func (c *countingSystem) Derive(x State, t float64) State {
	c.evals++
	return c.System.Derive(x, t)
}

// Solve integrates sys from grid[0] to the last grid time starting at x0 and
// records the state at every grid time. The grid must be strictly increasing
// with at least two finite points.
//
// Adaptive integrators choose their own step sizes, clamped so that each grid
// time is landed on exactly. Fixed-step integrators take cfg.Substeps equal
// steps per grid interval.
//
// A stepping failure returns the partial trajectory together with a
// *SimulationError.
func Solve(ctx context.Context, sys System, x0 State, grid []float64, integ Integrator, cfg Config) (*Trajectory, error) {
	if err := validateGrid(grid); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(x0) != sys.Dim() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "state has %d components, system expects %d", len(x0), sys.Dim())
	}

	traj := &Trajectory{
		Times:  make([]float64, 0, len(grid)),
		States: make([]State, 0, len(grid)),
	}
	traj.Times = append(traj.Times, grid[0])
	traj.States = append(traj.States, x0.Clone())

	counter := &countingSystem{System: sys}

	var err error
	if adaptive, ok := integ.(AdaptiveIntegrator); ok {
		err = solveAdaptive(ctx, counter, adaptive, x0, grid, cfg, traj)
	} else {
		err = solveFixed(ctx, counter, integ, x0, grid, cfg, traj)
	}
	traj.Stats.Evaluations = counter.evals

	return traj, err
}

func validateGrid(grid []float64) error {
	if len(grid) < 2 {
		return errors.Wrapf(ErrInvalidGrid, "need at least 2 points, got %d", len(grid))
	}
	for i, t := range grid {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return errors.Wrapf(ErrInvalidGrid, "non-finite time at index %d", i)
		}
		if i > 0 && t <= grid[i-1] {
			return errors.Wrapf(ErrInvalidGrid, "times not strictly increasing at index %d", i)
		}
	}
	return nil
}

func solveAdaptive(ctx context.Context, sys System, integ AdaptiveIntegrator, x0 State, grid []float64, cfg Config, traj *Trajectory) error {
	stats := &traj.Stats
	x := x0.Clone()
	t := grid[0]
	span := grid[len(grid)-1] - grid[0]

	h := cfg.InitialStep
	if h <= 0 {
		h = initialStep(sys, x, t, span, cfg)
	}

	fail := func(cause error) error {
		return &SimulationError{Step: stats.Steps, Time: t, State: x.Clone(), Wrapped: cause}
	}

	for i := 1; i < len(grid); i++ {
		target := grid[i]

		for t < target {
			select {
			case <-ctx.Done():
				return fail(ctx.Err())
			default:
			}

			if stats.Steps+stats.Rejected >= cfg.MaxSteps {
				return fail(errors.Wrapf(ErrMaxSteps, "%d attempts", cfg.MaxSteps))
			}

			step := h
			if cfg.MaxStep > 0 && step > cfg.MaxStep {
				step = cfg.MaxStep
			}
			clamped := false
			if t+step >= target || target-(t+step) < cfg.MinStep {
				step = target - t
				clamped = true
			}

			xNew, ratio, next := integ.StepAdaptive(sys, x, t, step, cfg.RelTol, cfg.AbsTol)

			if !(ratio <= 1) || !xNew.IsValid() {
				stats.Rejected++
				h = next
				if !(h < step) {
					h = step * 0.2
				}
				if h < cfg.MinStep {
					return fail(errors.Wrapf(ErrStepTooSmall, "h=%g", h))
				}
				continue
			}

			x = xNew
			if clamped {
				t = target
			} else {
				t += step
				h = next
			}

			stats.Steps++
			stats.LastStep = step
			if stats.MinStep == 0 || step < stats.MinStep {
				stats.MinStep = step
			}
			if step > stats.MaxStep {
				stats.MaxStep = step
			}
		}

		traj.Times = append(traj.Times, target)
		traj.States = append(traj.States, x.Clone())
	}

	return nil
}

func solveFixed(ctx context.Context, sys System, integ Integrator, x0 State, grid []float64, cfg Config, traj *Trajectory) error {
	stats := &traj.Stats
	x := x0.Clone()

	for i := 1; i < len(grid); i++ {
		t := grid[i-1]
		dt := (grid[i] - grid[i-1]) / float64(cfg.Substeps)

		for k := 0; k < cfg.Substeps; k++ {
			select {
			case <-ctx.Done():
				return &SimulationError{Step: stats.Steps, Time: t, State: x.Clone(), Wrapped: ctx.Err()}
			default:
			}

			newX := integ.Step(sys, x, t, dt)
			if !newX.IsValid() {
				return &SimulationError{Step: stats.Steps, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
			}
			x = newX
			t += dt
			stats.Steps++
		}

		stats.LastStep = dt
		if stats.MinStep == 0 || dt < stats.MinStep {
			stats.MinStep = dt
		}
		if dt > stats.MaxStep {
			stats.MaxStep = dt
		}

		traj.Times = append(traj.Times, grid[i])
		traj.States = append(traj.States, x.Clone())
	}

	return nil
}

// initialStep follows the usual starting-step heuristic for explicit
// Runge-Kutta methods (Hairer, Norsett & Wanner, II.4), bounded by the span.
func initialStep(sys System, x State, t, span float64, cfg Config) float64 {
	n := len(x)
	f0 := sys.Derive(x, t)

	scale := make([]float64, n)
	for i := range x {
		scale[i] = cfg.AbsTol + cfg.RelTol*math.Abs(x[i])
	}

	d0 := rmsScaled(x, scale)
	d1 := rmsScaled(f0, scale)

	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	if !finitePositive(h0) {
		h0 = 1e-6
	}
	h0 = math.Min(h0, span)

	x1 := make(State, n)
	for i := range x {
		x1[i] = x[i] + h0*f0[i]
	}
	f1 := sys.Derive(x1, t+h0)

	d2 := rmsScaled(f1.Sub(f0), scale) / h0

	var h1 float64
	if math.Max(d1, d2) <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/math.Max(d1, d2), 1.0/5.0)
	}

	h := math.Min(100*h0, h1)
	if !finitePositive(h) {
		h = h0
	}
	return math.Min(h, span)
}

func rmsScaled(v State, scale []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for i := range v {
		s := scale[i]
		if s == 0 {
			s = 1e-300
		}
		e := v[i] / s
		sum += e * e
	}
	return math.Sqrt(sum / float64(len(v)))
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
