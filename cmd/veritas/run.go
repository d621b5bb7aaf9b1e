package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"edusignal-hq/veritas/pkg/audit"
	"edusignal-hq/veritas/pkg/audit/recorder"
	"edusignal-hq/veritas/pkg/audit/retention"
	"edusignal-hq/veritas/pkg/audit/storage"
	"edusignal-hq/veritas/pkg/cli"
	"edusignal-hq/veritas/pkg/config"
	"edusignal-hq/veritas/pkg/detector"
	"edusignal-hq/veritas/pkg/detector/feature"
	"edusignal-hq/veritas/pkg/detector/profile"
	"edusignal-hq/veritas/pkg/server"
	"edusignal-hq/veritas/pkg/telemetry/health"
	"edusignal-hq/veritas/pkg/telemetry/logging"
	"edusignal-hq/veritas/pkg/telemetry/metrics"
	"edusignal-hq/veritas/pkg/telemetry/tracing"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Veritas analysis server",
	Long: `Start the Veritas analysis server with the specified configuration.

The server listens on the configured address and scores submitted passages
through the detection pipeline, recording verdicts to the audit trail.

Examples:
  # Start with default config
  veritas run

  # Start with custom config
  veritas run --config /etc/veritas/config.yaml

  # Override listen address
  veritas run --listen 0.0.0.0:8080

  # Validate config without starting server
  veritas run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:          cfg.Telemetry.Logging.Level,
		Format:         cfg.Telemetry.Logging.Format,
		AddSource:      cfg.Telemetry.Logging.AddSource,
		RedactPII:      cfg.Telemetry.Logging.RedactPII,
		RedactPatterns: cfg.Telemetry.Logging.RedactPatterns,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	ctx, stop := cli.SignalContext()
	defer stop()

	// Metrics collector. Created even when disabled so recording calls
	// stay no-ops instead of nil checks all over the wiring.
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	// Tracing
	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()
	if tracer.Enabled() {
		fmt.Println("✓ Tracing enabled")
	}

	// Scoring profile
	store, err := setupProfileStore(ctx, cfg, logger, collector)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Scoring profile source: %s\n", profileMode(cfg))

	// Detection pipeline
	var tagger *feature.Tagger
	if !cfg.Detector.DisablePOSTagging {
		tagger = feature.NewTagger()
	}
	det := detector.New(detector.NewRegistry(tagger), store, logger)

	// Audit trail
	var auditor *recorder.Recorder
	var auditStore audit.Storage
	if cfg.Audit.Enabled {
		slog.Info("initializing audit trail", "backend", cfg.Audit.Backend)

		switch cfg.Audit.Backend {
		case "sqlite":
			auditStore, err = storage.NewSQLiteStorage(&storage.SQLiteConfig{
				Path:         cfg.Audit.SQLite.Path,
				MaxOpenConns: cfg.Audit.SQLite.MaxOpenConns,
				MaxIdleConns: cfg.Audit.SQLite.MaxIdleConns,
				WALMode:      cfg.Audit.SQLite.WALMode,
				BusyTimeout:  cfg.Audit.SQLite.BusyTimeout,
			}, logger)
			if err != nil {
				return cli.NewCommandError("run", fmt.Errorf("failed to create SQLite storage: %w", err))
			}
		case "", "memory":
			auditStore = storage.NewMemoryStorage(&storage.MemoryConfig{
				MaxEntries: cfg.Audit.Memory.MaxEntries,
			})
		default:
			return cli.NewConfigError("audit.backend",
				fmt.Sprintf("unsupported backend: %s (supported: memory, sqlite)", cfg.Audit.Backend))
		}
		defer auditStore.Close()

		auditor = recorder.NewRecorder(auditStore, &recorder.Config{
			Enabled:      true,
			AsyncBuffer:  cfg.Audit.Recorder.AsyncBuffer,
			WriteTimeout: cfg.Audit.Recorder.WriteTimeout,
		}, logger, collector)
		defer auditor.Close()

		// Start retention pruning if a schedule is configured
		if cfg.Audit.Retention.PruneSchedule != "" {
			pruner := retention.NewPruner(auditStore, &retention.Config{
				RetentionDays: cfg.Audit.Retention.Days,
				PruneSchedule: cfg.Audit.Retention.PruneSchedule,
				MaxRecords:    cfg.Audit.Retention.MaxRecords,
			}, logger, collector)

			if err := pruner.Scheduler().Start(ctx); err != nil {
				slog.Warn("failed to start retention scheduler", "error", err)
			} else {
				defer pruner.Scheduler().Stop()
				if next := pruner.Scheduler().NextRun(); next != nil {
					slog.Debug("audit retention scheduler started", "next_pruning", next)
				}
			}
		}

		fmt.Println("✓ Audit trail initialized")
	}

	// Health checks
	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
	checker.RegisterCheck("profile", health.ReadyCheck(store))
	if auditStore != nil {
		checker.RegisterCheck("audit_storage", health.PingCheck(auditStore))
	}

	srv := server.NewServer(cfg, server.Dependencies{
		Detector:  det,
		Collector: collector,
		Checker:   checker,
		Auditor:   auditor,
		Tracer:    tracer,
		Logger:    logger,
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	})

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Analysis endpoint: http://%s/v1/analyze\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Health.Enabled {
		fmt.Printf("✓ Health endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Health.LivenessPath)
	}
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Blocks until a signal cancels the context; Start performs the
	// graceful shutdown itself.
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}

// setupProfileStore builds the profile store for the configured source and
// starts background reloading (file watch or git polling) under ctx.
func setupProfileStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, collector *metrics.Collector) (*profile.Store, error) {
	profCfg := cfg.Detector.Profile

	switch profCfg.Mode {
	case "", "builtin":
		return profile.NewStore(profile.Default()), nil

	case "file":
		source := profile.NewFileSource(profCfg.FilePath, logger)
		store := loadInto(ctx, source, profCfg.FilePath)

		if profCfg.Watch {
			watcher, err := profile.NewWatcher(source, store, profile.WatcherConfig{
				Path:             profCfg.FilePath,
				DebounceInterval: profCfg.DebounceInterval,
				OnReload: func(status string) {
					collector.RecordProfileReload("file", status)
				},
			}, logger)
			if err != nil {
				return nil, cli.NewCommandError("run", err)
			}
			go func() {
				if err := watcher.Watch(ctx); err != nil {
					slog.Warn("profile watcher exited", "error", err)
				}
			}()
		}
		return store, nil

	case "git":
		gitCfg := profCfg.Git
		source, err := profile.NewGitSource(profile.GitSourceConfig{
			Repository:   gitCfg.Repository,
			Branch:       gitCfg.Branch,
			Path:         gitCfg.Path,
			LocalPath:    gitCfg.LocalPath,
			PollInterval: gitCfg.PollInterval,
			Timeout:      gitCfg.Timeout,
		}, logger)
		if err != nil {
			return nil, cli.NewCommandError("run", err)
		}
		store := loadInto(ctx, source, gitCfg.Repository)

		if gitCfg.PollEnabled {
			go func() {
				_ = source.Poll(ctx, func(p *profile.Profile) {
					store.Swap(p)
					collector.RecordProfileReload("git", "success")
				})
			}()
		}
		return store, nil

	default:
		return nil, cli.NewConfigError("detector.profile.mode",
			fmt.Sprintf("unsupported mode: %s (supported: builtin, file, git)", profCfg.Mode))
	}
}

// loadInto performs the initial profile load. A failed load is not fatal:
// the server starts with an empty store and answers 503 on analysis until a
// reload succeeds.
func loadInto(ctx context.Context, source interface {
	Load(ctx context.Context) (*profile.Profile, error)
}, origin string) *profile.Store {
	p, err := source.Load(ctx)
	if err != nil {
		slog.Warn("initial profile load failed, serving unavailable until a reload succeeds",
			"source", origin,
			"error", err,
		)
		return profile.NewStore(nil)
	}
	return profile.NewStore(p)
}

func profileMode(cfg *config.Config) string {
	if cfg.Detector.Profile.Mode == "" {
		return "builtin"
	}
	return cfg.Detector.Profile.Mode
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Veritas v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	slog.Debug("profile mode", "mode", profileMode(cfg))
	if cfg.Audit.Enabled {
		slog.Debug("audit enabled", "backend", cfg.Audit.Backend)
	}
}
