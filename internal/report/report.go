package report

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/san-kum/adsorb/internal/kinetics"
	"github.com/san-kum/adsorb/internal/metrics"
	"github.com/san-kum/adsorb/internal/viz"
)

const (
	SuccessFormat = "Simulation successful. Final amount adsorbed: %.2f mg/g\n"
	FailureLine   = "Simulation failed.\n"
)

// Reporter presents the outcome of one simulation.
type Reporter interface {
	Report(sol *kinetics.Solution, p kinetics.Params) error
}

// Plotter is re-exported so callers can configure a Terminal without
// importing viz.
type Plotter = viz.Plotter

// Terminal writes the fixed result line to Out. On success it optionally
// precedes it with a summary panel and a chart. On failure it writes only
// FailureLine and never draws.
type Terminal struct {
	Out     io.Writer
	Plotter Plotter
	Summary bool
	Theme   viz.Theme
}

func (r *Terminal) Report(sol *kinetics.Solution, p kinetics.Params) error {
	if sol == nil || !sol.Success {
		_, err := io.WriteString(r.Out, FailureLine)
		return err
	}

	final, ok := sol.Final()
	if !ok {
		_, err := io.WriteString(r.Out, FailureLine)
		return err
	}

	if r.Summary {
		if _, err := fmt.Fprintln(r.Out, summary(sol, p, r.Theme)); err != nil {
			return err
		}
	}
	if r.Plotter != nil {
		if chart := r.Plotter.Plot(sol.Times, sol.Q, p.Qe); chart != "" {
			if _, err := fmt.Fprintln(r.Out, chart); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(r.Out, SuccessFormat, final)
	return err
}

func summary(sol *kinetics.Solution, p kinetics.Params, theme viz.Theme) string {
	values := metrics.Evaluate(sol.Times, sol.Q,
		metrics.NewSaturation(p.Qe),
		metrics.NewMonotonicity(p.Qe),
		metrics.NewClosedFormError(p.Analytic),
	)

	rows := [][2]string{
		{"k2", fmt.Sprintf("%g g/(mg·min)", p.K2)},
		{"qe", fmt.Sprintf("%g mg/g", p.Qe)},
		{"q0", fmt.Sprintf("%g mg/g", p.Q0)},
		{"t", fmt.Sprintf("%g → %g min", p.TStart, p.TEnd)},
		{"initial rate", fmt.Sprintf("%.4g mg/(g·min)", p.InitialRate())},
		{"half time", fmt.Sprintf("%.4g min", p.HalfTime())},
		{"saturation", fmt.Sprintf("%.2f%%", 100*values["saturation"])},
		{"steps", fmt.Sprintf("%d (%d rejected)", sol.Stats.Steps, sol.Stats.Rejected)},
		{"evaluations", fmt.Sprintf("%d", sol.Stats.Evaluations)},
		{"max |q - exact|", fmt.Sprintf("%.2e", values["closed_form_error"])},
	}

	return viz.Panel.Render(viz.Title(theme, "Pseudo-second-order kinetics") + "  " +
		viz.Status(theme, true, "OK") + "\n\n" + viz.KeyValues(rows))
}

// Multi reports to each reporter in order and stops at the first error.
type Multi []Reporter

func (m Multi) Report(sol *kinetics.Solution, p kinetics.Params) error {
	for i, r := range m {
		if err := r.Report(sol, p); err != nil {
			return errors.Wrapf(err, "reporter %d", i)
		}
	}
	return nil
}
