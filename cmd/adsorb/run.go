package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/adsorb/internal/config"
	"github.com/san-kum/adsorb/internal/export"
	"github.com/san-kum/adsorb/internal/kinetics"
	"github.com/san-kum/adsorb/internal/metrics"
	"github.com/san-kum/adsorb/internal/report"
	"github.com/san-kum/adsorb/internal/viz"
)

// resolveConfig layers defaults, preset, config file and changed flags, each
// overriding the one before.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("k2") {
		cfg.K2 = k2
	}
	if flags.Changed("qe") {
		cfg.Qe = qe
	}
	if flags.Changed("q0") {
		cfg.Q0 = q0
	}
	if flags.Changed("t-start") {
		cfg.TStart = tStart
	}
	if flags.Changed("t-end") {
		cfg.TEnd = tEnd
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("rtol") {
		cfg.RelTol = rtol
	}
	if flags.Changed("atol") {
		cfg.AbsTol = atol
	}
	if flags.Changed("csv") {
		cfg.Output.CSV = csvPath
	}
	if flags.Changed("json") {
		cfg.Output.JSON = jsonPath
	}
	if flags.Changed("svg") {
		cfg.Output.SVG = svgPath
	}
	if flags.Changed("metrics-file") {
		cfg.Output.Metrics = metricPath
	}
	if noChart {
		cfg.Output.Chart = false
	}

	return cfg, nil
}

// solve runs one simulation for cfg. A nil solution with an error means the
// run could not start; a solution with Success false is an integration failure.
func solve(cmd *cobra.Command, cfg *config.Config) (*kinetics.Solution, time.Duration, error) {
	p := cfg.Params()

	if strict {
		if err := cfg.Validate(); err != nil {
			return nil, 0, err
		}
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, 0, err
	}

	log.WithFields(logrus.Fields{
		"k2":         p.K2,
		"qe":         p.Qe,
		"q0":         p.Q0,
		"t_start":    p.TStart,
		"t_end":      p.TEnd,
		"samples":    p.Samples,
		"integrator": cfg.Integrator,
	}).Debug("starting simulation")

	start := time.Now()
	sol, err := kinetics.Simulate(cmd.Context(), kinetics.PseudoSecondOrder, p, opts)
	elapsed := time.Since(start)

	if sol == nil {
		return nil, elapsed, err
	}

	entry := log.WithFields(logrus.Fields{
		"steps":       sol.Stats.Steps,
		"rejected":    sol.Stats.Rejected,
		"evaluations": sol.Stats.Evaluations,
		"elapsed":     elapsed,
	})
	if err != nil {
		entry.WithError(err).Info("integration failed")
	} else {
		entry.Debug(sol.Message)
	}
	return sol, elapsed, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sol, elapsed, err := solve(cmd, cfg)
	if err != nil {
		return err
	}
	p := cfg.Params()

	terminal := &report.Terminal{
		Out:     cmd.OutOrStdout(),
		Summary: summary,
		Theme:   viz.GetTheme(themeName),
	}
	if cfg.Output.Chart {
		terminal.Plotter = viz.NewASCIIPlotter(cfg.Output.ChartWidth, cfg.Output.ChartHeight, terminal.Theme)
	}
	files := &export.Files{
		CSVPath:    cfg.Output.CSV,
		JSONPath:   cfg.Output.JSON,
		SVGPath:    cfg.Output.SVG,
		Integrator: cfg.Integrator,
	}

	if err := (report.Multi{terminal, files}).Report(sol, p); err != nil {
		return err
	}

	if cfg.Output.Metrics != "" {
		rec := metrics.New()
		rec.Observe(sol, elapsed)
		if sol.Success {
			rec.ObserveCurve(metrics.Evaluate(sol.Times, sol.Q,
				metrics.NewSaturation(p.Qe),
				metrics.NewMonotonicity(p.Qe),
				metrics.NewClosedFormError(p.Analytic),
			))
		}
		if err := rec.WriteTextfile(cfg.Output.Metrics); err != nil {
			return err
		}
		log.WithField("path", cfg.Output.Metrics).Info("metrics written")
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tK2\tQE\tQ0\tT")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g-%g\n", name, cfg.K2, cfg.Qe, cfg.Q0, cfg.TStart, cfg.TEnd)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
