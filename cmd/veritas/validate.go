package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"edusignal-hq/veritas/pkg/cli"
	"edusignal-hq/veritas/pkg/config"
	"edusignal-hq/veritas/pkg/detector"
	"edusignal-hq/veritas/pkg/detector/feature"
)

var validateFlags struct {
	profilePath string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and scoring profile",
	Long: `Validate the configuration file and the scoring profile it references.

The validate command checks:
  - Configuration field values and ranges
  - Scoring profile structure (weights, thresholds, strategy)
  - That every configured metric has a registered extractor

Examples:
  # Validate the default config and its profile
  veritas validate

  # Validate a specific config
  veritas validate --config /etc/veritas/config.yaml

  # Validate a profile file directly
  veritas validate --profile strict.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.profilePath, "profile", "", "scoring profile file to validate (overrides config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	// Initialize applies defaults and validates field values
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()
	fmt.Printf("✓ Configuration valid: %s\n", cfgFile)

	logger, err := newCommandLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Loading parses, applies defaults, and validates the profile
	p, err := loadProfileOnce(ctx, cfg, validateFlags.profilePath, logger)
	if err != nil {
		return cli.NewCommandError("validate", fmt.Errorf("profile validation failed: %w", err))
	}

	fmt.Printf("✓ Scoring profile valid: %s", p.Name)
	if p.Version != "" {
		fmt.Printf(" (version %s)", p.Version)
	}
	fmt.Println()
	fmt.Printf("  Strategy: %s\n", p.Strategy)
	fmt.Printf("  Cutoff: %.2f\n", p.Cutoff)
	fmt.Printf("  Metrics: %d\n", len(p.Metrics))

	// Cross-check configured metrics against the extractor registry
	var tagger *feature.Tagger
	if !cfg.Detector.DisablePOSTagging {
		tagger = feature.NewTagger()
	}
	registry := detector.NewRegistry(tagger)

	missing := make([]string, 0)
	for name := range p.Metrics {
		if !registry.Has(name) {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	if len(missing) > 0 {
		fmt.Println()
		for _, name := range missing {
			fmt.Printf("⚠ Metric %q has no registered extractor and will be excluded from scoring\n", name)
		}
	}

	return nil
}
