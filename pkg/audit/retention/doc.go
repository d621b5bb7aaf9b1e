// Package retention enforces retention policy on the audit trail.
//
// A Pruner deletes records in two phases: age-based (older than
// RetentionDays) and count-based (oldest beyond MaxRecords). The Scheduler
// runs the pruner on a cron expression, typically nightly, and stops with
// the service context.
//
// Deleted counts are reported to the Observer for metrics.
package retention
