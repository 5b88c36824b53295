package main

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/adsorb/internal/report"
	"github.com/san-kum/adsorb/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sol, _, err := solve(cmd, cfg)
	if err != nil {
		return err
	}
	if !sol.Success || len(sol.Q) < 2 {
		_, err := io.WriteString(cmd.OutOrStdout(), report.FailureLine)
		return err
	}

	p := cfg.Params()
	theme := viz.GetTheme(themeName)
	plotter := viz.NewASCIIPlotter(cfg.Output.ChartWidth, cfg.Output.ChartHeight, theme)
	model := viz.NewLiveModel(sol, p, plotter, theme, frameRate, time.Duration(playback*float64(time.Second)))

	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := prog.Run(); err != nil {
		return err
	}

	return (&report.Terminal{Out: cmd.OutOrStdout()}).Report(sol, p)
}
