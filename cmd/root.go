package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/mmk-sim/sim"
	"github.com/inference-sim/mmk-sim/sim/sweep"
	"github.com/inference-sim/mmk-sim/sim/trace"
)

var (
	// CLI flags for the queue model
	configPath  string  // Optional YAML config file
	logLevel    string  // Log verbosity level
	capacity    int     // K: one server below K, two up to 2K
	serviceRate float64 // mu per server
	arrivalRate float64 // lambda
	load        float64 // lambda / (m * mu); overrides arrivalRate when set
	departures  int64   // Stop after this many departures
	seed        int64   // Master seed for all variate streams
	rngMode     string  // reference or partitioned

	// CLI flags for output
	traceLevel string // none or events
	traceLimit int    // Max trace records printed

	// CLI flags for sweeps
	sweepSteps   int  // Number of load points
	withAnalytic bool // Attach birth-death approximation to each point
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mmk-sim",
	Short: "Discrete-event simulator for a finite-capacity two-server Markovian queue",
}

// runCmd executes a single simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation and print its summary",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveSimConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q", traceLevel)
		}

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel), Limit: traceLimit})
		s.SetObserver(st)

		summary, err := s.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		printTrace(os.Stdout, st)
		if err := printSummary(os.Stdout, summary); err != nil {
			logrus.Fatalf("Failed to write summary: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// sweepCmd runs one simulation per offered load and prints the four series
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep offered load from 1/steps to 1 and report each point",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveSimConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		res, err := sweep.Run(cfg, sweep.Loads(sweepSteps), sweep.Options{WithAnalytic: withAnalytic})
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		printSweep(os.Stdout, res)
		logrus.Info("Sweep complete.")
	},
}

func setupLogging() {
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

// registerModelFlags adds the queue model flags shared by run and sweep.
func registerModelFlags(cmd *cobra.Command) {
	def := sim.DefaultSimConfig()
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file; flags override its values")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().IntVar(&capacity, "capacity", def.Capacity, "Capacity K (>= 2)")
	cmd.Flags().Float64Var(&serviceRate, "service-rate", def.ServiceRate, "Service rate mu per server")
	cmd.Flags().Int64Var(&departures, "departures", def.Departures, "Stop after this many departures")
	cmd.Flags().Int64Var(&seed, "seed", def.Seed, "Master seed for the variate streams")
	cmd.Flags().StringVar(&rngMode, "rng", def.RNG, "Variate streams: reference (Lehmer LCG) or partitioned (math/rand)")
}

// init sets up CLI flags and subcommands
func init() {
	def := sim.DefaultSimConfig()

	registerModelFlags(runCmd)
	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", def.ArrivalRate, "Arrival rate lambda")
	runCmd.Flags().Float64Var(&load, "load", 0, "Offered load lambda/(m*mu); overrides --arrival-rate when set")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Per-event trace output (none, events)")
	runCmd.Flags().IntVar(&traceLimit, "trace-limit", 0, "Max trace lines printed (0 = all)")

	registerModelFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", sweep.DefaultSteps, "Number of load points between 1/steps and 1")
	sweepCmd.Flags().BoolVar(&withAnalytic, "analytic", false, "Also report the birth-death approximation per load")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
