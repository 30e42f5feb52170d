package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ising-sim/ising-sim/sim"
	"github.com/ising-sim/ising-sim/sim/cluster"
	"github.com/ising-sim/ising-sim/sim/output"
	"github.com/ising-sim/ising-sim/sim/params"
	"github.com/ising-sim/ising-sim/sim/trace"
)

var (
	// CLI flags for the run
	flagSettings = DefaultRunSettings() // values bound to flags
	logLevel     string                 // Log verbosity level
	configPath   string                 // Optional YAML run config
	paramsPath   string                 // Optional parameter record
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ising-sim",
	Short: "Metropolis Monte Carlo simulator for the 2D Ising model on a ring of workers",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Ising simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		settings, err := resolveSettings(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := settings.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now()
		if err := runRepeats(ctx, settings); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// resolveSettings layers defaults, --config, --params and explicitly set
// flags, in that order.
func resolveSettings(cmd *cobra.Command) (RunSettings, error) {
	settings := DefaultRunSettings()
	if configPath != "" {
		loaded, err := loadRunSettings(configPath, settings)
		if err != nil {
			return settings, err
		}
		settings = loaded
		logrus.Infof("Loaded run config %s", configPath)
	}
	if paramsPath != "" {
		p, err := params.Load(paramsPath)
		if err != nil {
			return settings, err
		}
		settings = settings.withParams(p)
		logrus.Infof("Loaded parameter record %s", paramsPath)
	}
	applyChangedFlags(cmd, &settings)
	return settings, nil
}

// applyChangedFlags copies only flags the user actually set, so flag
// defaults never clobber file values.
func applyChangedFlags(cmd *cobra.Command, s *RunSettings) {
	changed := cmd.Flags().Changed
	if changed("net-size") {
		s.NetSize = flagSettings.NetSize
	}
	if changed("workers") {
		s.Workers = flagSettings.Workers
	}
	if changed("J") {
		s.J = flagSettings.J
	}
	if changed("B") {
		s.B = flagSettings.B
	}
	if changed("temperature") {
		s.Temperature = flagSettings.Temperature
	}
	if changed("iterations") {
		s.Iterations = flagSettings.Iterations
	}
	if changed("repeats") {
		s.Repeats = flagSettings.Repeats
	}
	if changed("sample-every") {
		s.SampleEvery = flagSettings.SampleEvery
	}
	if changed("snapshot-every") {
		s.SnapshotEvery = flagSettings.SnapshotEvery
	}
	if changed("seed") {
		s.Seed = flagSettings.Seed
	}
	if changed("output") {
		s.OutputDir = flagSettings.OutputDir
	}
}

// runRepeats runs every repeat in turn. Output problems are logged and
// disable output for that repeat; they never stop the simulation.
func runRepeats(ctx context.Context, settings RunSettings) error {
	for rep := 0; rep < int(settings.Repeats); rep++ {
		cfg, err := settings.RunConfig(rep)
		if err != nil {
			return err
		}

		rec := openRecorder(settings, cfg, rep)
		var observer cluster.Observer
		if rec != nil {
			observer = rec
		}

		ring, err := cluster.NewRing(cfg, rep, observer)
		if err != nil {
			rec.Close()
			return err
		}
		result, err := ring.Run(ctx)
		if err != nil {
			rec.Close()
			return err
		}

		summary := trace.Summarize(result.Trace)
		if rec != nil {
			if err := rec.WriteSummary(summary); err != nil {
				logrus.Errorf("Skipping summary: %v", err)
			}
			if err := rec.Close(); err != nil {
				logrus.Errorf("Closing output of repeat %d: %v", rep, err)
			}
		}
		result.Metrics.Print()
		logrus.Infof("Repeat %d: E=%f (mean %f ± %f), M=%f (mean %f ± %f)", rep,
			summary.FinalEnergy, summary.MeanEnergy, summary.StdDevEnergy,
			summary.FinalMagnetization, summary.MeanMagnetization, summary.StdDevMagnetization)
	}
	return nil
}

// openRecorder returns nil when output is disabled or cannot be set up.
func openRecorder(settings RunSettings, cfg sim.RunConfig, rep int) *output.Recorder {
	if settings.OutputDir == "" {
		return nil
	}
	dir, err := output.CreateRunDir(settings.OutputDir, rep, time.Now())
	if err != nil {
		logrus.Errorf("Output disabled for repeat %d: %v", rep, err)
		return nil
	}
	rec, err := output.NewRecorder(dir, cfg, settings.Params())
	if err != nil {
		logrus.Errorf("Output disabled for repeat %d: %v", rep, err)
		return nil
	}
	return rec
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addModelFlags binds the flags shared by `run` and `params`.
func addModelFlags(cmd *cobra.Command) {
	d := DefaultRunSettings()
	cmd.Flags().IntVar(&flagSettings.NetSize, "net-size", d.NetSize, "Lattice side length (rows = columns)")
	cmd.Flags().Float64Var(&flagSettings.J, "J", d.J, "Coupling constant J")
	cmd.Flags().Float64Var(&flagSettings.B, "B", d.B, "External field B")
	cmd.Flags().Int64Var(&flagSettings.Iterations, "iterations", d.Iterations, "Number of sweeps per worker")
	cmd.Flags().Int64Var(&flagSettings.Repeats, "repeats", d.Repeats, "Number of independent repeats")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	addModelFlags(runCmd)
	d := DefaultRunSettings()
	runCmd.Flags().IntVar(&flagSettings.Workers, "workers", d.Workers, "Number of workers in the ring (must divide net-size)")
	runCmd.Flags().Float64Var(&flagSettings.Temperature, "temperature", d.Temperature, "Metropolis temperature (k_B = 1)")
	runCmd.Flags().Int64Var(&flagSettings.SampleEvery, "sample-every", d.SampleEvery, "Sweeps between energy/magnetization samples")
	runCmd.Flags().Int64Var(&flagSettings.SnapshotEvery, "snapshot-every", d.SnapshotEvery, "Sweeps between binary lattice snapshots (0 = final only)")
	runCmd.Flags().Int64Var(&flagSettings.Seed, "seed", d.Seed, "Seed for lattice initialization and Metropolis draws")
	runCmd.Flags().StringVar(&flagSettings.OutputDir, "output", d.OutputDir, "Base directory for run output (empty disables output)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run config file")
	runCmd.Flags().StringVar(&paramsPath, "params", "", "Parameter record file (Net Size, J, B, iterations, repeats)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(showCmd)
}
