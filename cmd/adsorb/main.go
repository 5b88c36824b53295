package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/adsorb/internal/logging"
	"github.com/san-kum/adsorb/internal/viz"
)

var (
	// persistent
	logLevel  string
	noChart   bool
	themeName string

	// run
	k2         float64
	qe         float64
	q0         float64
	tStart     float64
	tEnd       float64
	samples    int
	integrator string
	rtol       float64
	atol       float64
	csvPath    string
	jsonPath   string
	svgPath    string
	metricPath string
	configFile string
	preset     string
	strict     bool
	summary    bool

	// live
	frameRate int
	playback  float64

	// config init
	force bool

	log = logging.Discard()
)

// main registers the commands and runs the default simulation when no
// subcommand is given. It exits with status 1 if a command returns an error;
// a failed integration is reported on stdout and is not a command error.
func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "adsorb",
		Short:        "pseudo-second-order adsorption kinetics simulator",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runSimulation,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logLevel, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		log = l
		return nil
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noChart, "no-chart", false, "skip the terminal chart")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.ThemeClassic.Name, "chart color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write samples to csv file")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write run document to json file")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write chart to svg file")
	runCmd.Flags().StringVar(&metricPath, "metrics-file", "", "write solver metrics in prometheus textfile format")
	runCmd.Flags().BoolVar(&strict, "strict", false, "validate parameters before solving")
	runCmd.Flags().BoolVar(&summary, "summary", false, "print a parameter and solver summary")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay the simulated curve in a live terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", viz.DefaultFPS, "frames per second")
	liveCmd.Flags().Float64Var(&playback, "playback", viz.DefaultPlayback.Seconds(), "replay duration in seconds")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, configCmd)
	return rootCmd
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&k2, "k2", 0.01, "rate constant (g/(mg·min))")
	cmd.Flags().Float64Var(&qe, "qe", 50, "equilibrium capacity (mg/g)")
	cmd.Flags().Float64Var(&q0, "q0", 0, "initial amount adsorbed (mg/g)")
	cmd.Flags().Float64Var(&tStart, "t-start", 0, "start time (min)")
	cmd.Flags().Float64Var(&tEnd, "t-end", 100, "end time (min)")
	cmd.Flags().IntVar(&samples, "samples", 500, "number of evaluation points")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (rk45, rk4, euler)")
	cmd.Flags().Float64Var(&rtol, "rtol", 1e-6, "relative tolerance")
	cmd.Flags().Float64Var(&atol, "atol", 1e-9, "absolute tolerance")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}
