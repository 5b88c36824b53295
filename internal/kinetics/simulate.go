package kinetics

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/san-kum/adsorb/internal/ode"
)

const successMessage = "The solver successfully reached the end of the integration interval."

// Options selects the integrator and its tolerances.
type Options struct {
	Integrator ode.Integrator
	Solver     ode.Config
}

func DefaultOptions() Options {
	return Options{
		Integrator: ode.NewRK45(),
		Solver:     ode.DefaultConfig(),
	}
}

// Solution is the sampled curve of one run. Times and Q have equal length.
// When Success is false they hold only the samples reached before failure.
type Solution struct {
	Times   []float64
	Q       []float64
	Success bool
	Message string
	Stats   ode.Stats
}

// Final returns the last sampled q.
func (s *Solution) Final() (float64, bool) {
	if s == nil || len(s.Q) == 0 {
		return 0, false
	}
	return s.Q[len(s.Q)-1], true
}

// MaxAbsError is the largest deviation of the samples from p.Analytic.
func (s *Solution) MaxAbsError(p Params) float64 {
	worst := 0.0
	for i, t := range s.Times {
		worst = math.Max(worst, math.Abs(s.Q[i]-p.Analytic(t)))
	}
	return worst
}

// Simulate integrates law from q(p.TStart) = p.Q0 to p.TEnd and samples q on
// p.Grid().
//
// A grid that cannot be built is returned as an error with a nil Solution.
// An integration failure returns a Solution with Success == false together
// with an error matching ode.ErrIntegration.
func Simulate(ctx context.Context, law RateLaw, p Params, opts Options) (*Solution, error) {
	grid, err := p.Grid()
	if err != nil {
		return nil, err
	}
	if opts.Integrator == nil {
		opts.Integrator = ode.NewRK45()
	}

	sys := &system{law: law, k2: p.K2, qe: p.Qe}

	traj, err := ode.Solve(ctx, sys, ode.State{p.Q0}, grid, opts.Integrator, opts.Solver)
	if traj == nil {
		return nil, err
	}

	sol := &Solution{
		Times:   traj.Times,
		Q:       traj.Component(0),
		Success: err == nil,
		Message: successMessage,
		Stats:   traj.Stats,
	}
	if err != nil {
		sol.Message = err.Error()
		return sol, errors.Wrap(err, "kinetics: simulate")
	}
	return sol, nil
}
