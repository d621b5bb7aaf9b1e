package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"edusignal-hq/veritas/pkg/audit"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain audit records.
	// 0 means keep records forever (no age-based pruning).
	RetentionDays int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	MaxRecords int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 90,
		PruneSchedule: "0 3 * * *",
		MaxRecords:    0,
	}
}

// Observer receives prune outcomes for metrics collection.
type Observer interface {
	RecordAuditPrune(deleted int64)
}

// Pruner enforces retention policy on audit records.
type Pruner struct {
	storage   audit.Storage
	config    *Config
	logger    *slog.Logger
	observer  Observer
	scheduler *Scheduler
}

// NewPruner creates a retention pruner. The observer may be nil.
func NewPruner(storage audit.Storage, config *Config, logger *slog.Logger, observer Observer) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	pruner := &Pruner{
		storage:  storage,
		config:   config,
		logger:   logger.With("component", "audit.retention"),
		observer: observer,
	}

	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// Prune deletes audit records older than the retention period or exceeding
// the maximum record count.
//
// Pruning happens in two phases:
//  1. Age-based: delete records older than RetentionDays
//  2. Count-based: if total records exceed MaxRecords, delete the oldest
//
// Both phases can run together. Returns the total number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)

		deleted, err := p.storage.DeleteBefore(ctx, cutoff)
		if err != nil {
			return totalDeleted, audit.NewRetentionError(p.config.RetentionDays,
				fmt.Errorf("prune by age failed: %w", err))
		}
		totalDeleted += deleted

		if deleted > 0 {
			p.logger.Info("pruned audit records by age",
				"deleted_count", deleted,
				"retention_days", p.config.RetentionDays,
			)
		}
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.storage.Trim(ctx, p.config.MaxRecords)
		if err != nil {
			return totalDeleted, audit.NewRetentionError(p.config.RetentionDays,
				fmt.Errorf("prune by count failed: %w", err))
		}
		totalDeleted += deleted

		if deleted > 0 {
			p.logger.Info("pruned audit records by count",
				"deleted_count", deleted,
				"max_records", p.config.MaxRecords,
			)
		}
	}

	if p.observer != nil {
		p.observer.RecordAuditPrune(totalDeleted)
	}

	if totalDeleted == 0 {
		p.logger.Debug("no audit records pruned",
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	}

	return totalDeleted, nil
}

// Scheduler returns the pruner's scheduler for lifecycle management.
func (p *Pruner) Scheduler() *Scheduler {
	return p.scheduler
}
