package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "veritas",
	Short: "Veritas - heuristic AI-generated text detection service",
	Long: `Veritas is an open-source detection service that scores text passages
for signs of AI generation using transparent, explainable heuristics.

It exposes an HTTP analysis API, providing:
  - Stylometric metric extraction (repetition, entropy, diversity, readability)
  - Configurable scoring profiles with hot reload from file or Git
  - Audit trail of verdicts with scheduled retention pruning
  - Prometheus metrics, health probes, and OTLP tracing

For more information, visit: https://github.com/edusignal-hq/veritas`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
