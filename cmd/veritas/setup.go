package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"edusignal-hq/veritas/pkg/config"
	"edusignal-hq/veritas/pkg/detector/profile"
	"edusignal-hq/veritas/pkg/telemetry/logging"
)

// newCommandLogger builds a logger for one-shot commands. Unless --verbose
// is set, the level is raised to warn so command output stays clean.
func newCommandLogger(cfg *config.Config) (*slog.Logger, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}

	return logging.New(logging.Config{
		Level:          level,
		Format:         cfg.Telemetry.Logging.Format,
		AddSource:      cfg.Telemetry.Logging.AddSource,
		RedactPII:      cfg.Telemetry.Logging.RedactPII,
		RedactPatterns: cfg.Telemetry.Logging.RedactPatterns,
	})
}

// loadProfileOnce resolves the scoring profile a single time, without
// starting watchers or pollers. An explicit path wins over the config mode.
func loadProfileOnce(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) (*profile.Profile, error) {
	if path != "" {
		return profile.NewFileSource(path, logger).Load(ctx)
	}

	profCfg := cfg.Detector.Profile
	switch profCfg.Mode {
	case "", "builtin":
		return profile.Default(), nil
	case "file":
		return profile.NewFileSource(profCfg.FilePath, logger).Load(ctx)
	case "git":
		source, err := profile.NewGitSource(profile.GitSourceConfig{
			Repository:   profCfg.Git.Repository,
			Branch:       profCfg.Git.Branch,
			Path:         profCfg.Git.Path,
			LocalPath:    profCfg.Git.LocalPath,
			PollInterval: profCfg.Git.PollInterval,
			Timeout:      profCfg.Git.Timeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return source.Load(ctx)
	default:
		return nil, fmt.Errorf("unsupported profile mode: %s", profCfg.Mode)
	}
}

// createOutputFile opens the named file for command output.
func createOutputFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
