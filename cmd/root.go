package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/f1emotions/f1emotions/pipeline"
)

var (
	// CLI flags for session selection
	year     int    // Championship year
	event    string // Grand Prix name
	session  string // Session identifier (FP1, FP2, FP3, Q, R)
	logLevel string // Log verbosity level

	// CLI flags for input/output locations
	dataDir    string // Directory holding cached session table files
	output     string // Path to write the JSON dataset
	configPath string // Optional YAML scoring config
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "f1emotions",
	Short: "Derive per-lap driver emotion scores from F1 session telemetry",
}

// generateCmd runs the full scoring pipeline using parameters from CLI flags
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the emotion visualization dataset for one session",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := pipeline.DefaultScoringConfig()
		if configPath != "" {
			cfg, err = pipeline.LoadScoringBundle(configPath)
			if err != nil {
				logrus.Fatalf("unable to read scoring config: %v", err)
			}
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("invalid scoring config: %v", err)
		}

		sessionCfg := pipeline.SessionConfig{Year: year, Event: event, Session: session}
		logrus.Infof("Loading session data for %d %s (%s)", year, event, session)

		provider := pipeline.NewCSVProvider(dataDir)
		data, err := provider.LoadSession(sessionCfg)
		if err != nil {
			logrus.Fatalf("unable to load session: %v", err)
		}

		logrus.Info("Calculating emotion scores...")
		dataset, err := pipeline.GenerateDataset(data, cfg)
		if err != nil {
			logrus.Fatalf("dataset generation failed: %v", err)
		}

		if err := pipeline.WriteDataset(dataset, output); err != nil {
			logrus.Fatalf("unable to write dataset: %v", err)
		}

		if n := len(dataset.AvailableLaps); n > 0 {
			logrus.Infof("Processed %d laps ranging from %d to %d; dataset written to %s",
				n, dataset.AvailableLaps[0], dataset.AvailableLaps[n-1], output)
		} else {
			logrus.Warnf("No laps with valid driver entries; empty dataset written to %s", output)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	generateCmd.Flags().IntVar(&year, "year", 2021, "Championship year")
	generateCmd.Flags().StringVar(&event, "event", "Abu Dhabi", "Grand Prix name")
	generateCmd.Flags().StringVar(&session, "session", "R", "Session identifier (e.g. FP1, FP2, Q, R)")
	generateCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	generateCmd.Flags().StringVar(&dataDir, "data-dir", "data", "Directory holding cached session table files")
	generateCmd.Flags().StringVar(&output, "output", "data/f1_emotions_data.json", "Path to write the JSON dataset")
	generateCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML scoring config overriding the built-in defaults")

	// Attach `generate` as a subcommand to `root`
	rootCmd.AddCommand(generateCmd)
}
