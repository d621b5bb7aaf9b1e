package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"edusignal-hq/veritas/pkg/audit"
	"edusignal-hq/veritas/pkg/audit/storage"
	"edusignal-hq/veritas/pkg/cli"
	"edusignal-hq/veritas/pkg/config"
)

var auditFlags struct {
	backend       string
	timeRange     string
	verdict       string
	profile       string
	textHash      string
	minConfidence float64
	maxConfidence float64
	limit         int
	offset        int
	format        string
	output        string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the audit trail",
	Long: `Query and export audit records of past analyses.

The audit command provides access to the audit trail for querying and
exporting verdict records. Submitted text is never stored; records carry
only a SHA-256 hash of the analyzed passage.

Examples:
  # Query the last day
  veritas audit query --time-range "2026-08-29T00:00:00Z/2026-08-30T00:00:00Z"

  # Only AI verdicts above a confidence threshold
  veritas audit query --verdict ai --min-confidence 0.8

  # Export to CSV
  veritas audit query --format csv --output verdicts.csv`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query audit records",
	Long: `Query audit records with various filters.

Time Range Format:
  RFC3339 interval format: "start/end"
  Example: "2026-08-29T00:00:00Z/2026-08-30T00:00:00Z"

Examples:
  # Query specific time range
  veritas audit query --time-range "2026-08-29T00:00:00Z/2026-08-30T00:00:00Z"

  # Filter by verdict and profile
  veritas audit query --verdict ai --profile classroom-default

  # Look up a passage by its hash
  veritas audit query --text-hash 9f86d081...

  # Export to JSON
  veritas audit query --format json --output audit.json`,
	RunE: queryAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditQueryCmd)

	auditQueryCmd.Flags().StringVar(&auditFlags.backend, "backend", "", "backend: sqlite (uses config if not specified)")
	auditQueryCmd.Flags().StringVar(&auditFlags.timeRange, "time-range", "", "time range (RFC3339 interval: start/end)")
	auditQueryCmd.Flags().StringVar(&auditFlags.verdict, "verdict", "", "filter by verdict (ai, human)")
	auditQueryCmd.Flags().StringVar(&auditFlags.profile, "profile", "", "filter by scoring profile name")
	auditQueryCmd.Flags().StringVar(&auditFlags.textHash, "text-hash", "", "filter by SHA-256 text hash")
	auditQueryCmd.Flags().Float64Var(&auditFlags.minConfidence, "min-confidence", 0, "minimum confidence threshold")
	auditQueryCmd.Flags().Float64Var(&auditFlags.maxConfidence, "max-confidence", 0, "maximum confidence threshold")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 100, "max results")
	auditQueryCmd.Flags().IntVar(&auditFlags.offset, "offset", 0, "pagination offset")
	auditQueryCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json, csv")
	auditQueryCmd.Flags().StringVarP(&auditFlags.output, "output", "o", "", "output file (default: stdout)")
}

// auditReport wraps query results for formatting.
type auditReport struct {
	TotalRecords int             `json:"total_records"`
	Records      []*audit.Record `json:"records"`
}

// TableHeader implements cli.Tabular.
func (r *auditReport) TableHeader() []string {
	return []string{"id", "analyzed_at", "verdict", "confidence", "profile", "profile_version", "text_hash", "text_length", "word_count"}
}

// TableRows implements cli.Tabular.
func (r *auditReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, rec := range r.Records {
		rows = append(rows, []string{
			rec.ID,
			rec.AnalyzedAt.Format(time.RFC3339),
			rec.Verdict(),
			strconv.FormatFloat(rec.Confidence, 'f', 4, 64),
			rec.Profile,
			rec.ProfileVersion,
			rec.TextHash,
			strconv.Itoa(rec.TextLength),
			strconv.Itoa(rec.WordCount),
		})
	}
	return rows
}

func queryAudit(cmd *cobra.Command, args []string) error {
	// Load config to get backend settings
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	logger, err := newCommandLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	// Determine backend from flag or config. The memory backend holds no
	// records outside a running server, so only sqlite is queryable.
	backendType := auditFlags.backend
	if backendType == "" {
		backendType = cfg.Audit.Backend
	}

	var store audit.Storage
	switch backendType {
	case "sqlite":
		store, err = storage.NewSQLiteStorage(&storage.SQLiteConfig{
			Path:         cfg.Audit.SQLite.Path,
			MaxOpenConns: cfg.Audit.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Audit.SQLite.MaxIdleConns,
			WALMode:      cfg.Audit.SQLite.WALMode,
			BusyTimeout:  cfg.Audit.SQLite.BusyTimeout,
		}, logger)
		if err != nil {
			return cli.NewCommandError("audit", fmt.Errorf("failed to open SQLite storage: %w", err))
		}
	default:
		return fmt.Errorf("unsupported backend for offline queries: %s (supported: sqlite)", backendType)
	}
	defer store.Close()

	// Build query
	query := &audit.Query{
		Verdict:  auditFlags.verdict,
		Profile:  auditFlags.profile,
		TextHash: auditFlags.textHash,
		Limit:    auditFlags.limit,
		Offset:   auditFlags.offset,
	}

	if auditFlags.timeRange != "" {
		start, end, err := parseTimeRange(auditFlags.timeRange)
		if err != nil {
			return err
		}
		query.StartTime = &start
		query.EndTime = &end
	}
	if auditFlags.minConfidence > 0 {
		query.MinConfidence = &auditFlags.minConfidence
	}
	if auditFlags.maxConfidence > 0 {
		query.MaxConfidence = &auditFlags.maxConfidence
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("audit", fmt.Errorf("query failed: %w", err))
	}

	report := &auditReport{
		TotalRecords: len(records),
		Records:      records,
	}

	out := cmd.OutOrStdout()
	if auditFlags.output != "" {
		f, err := createOutputFile(auditFlags.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch auditFlags.format {
	case "json":
		return cli.NewFormatter(cli.FormatJSON).FormatTo(out, report)
	case "csv":
		return cli.NewFormatter(cli.FormatCSV).FormatTo(out, report)
	default:
		return writeAuditText(out, report, query)
	}
}

// writeAuditText renders records in the human-readable format.
func writeAuditText(w io.Writer, report *auditReport, query *audit.Query) error {
	if query.StartTime != nil && query.EndTime != nil {
		fmt.Fprintf(w, "Time range: %s to %s\n",
			query.StartTime.Format(time.RFC3339),
			query.EndTime.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Total records: %d\n", report.TotalRecords)
	fmt.Fprintln(w)

	if report.TotalRecords == 0 {
		fmt.Fprintln(w, "No records found.")
		return nil
	}

	for i, rec := range report.Records {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "Record ID: %s\n", rec.ID)
		fmt.Fprintf(w, "Analyzed: %s\n", rec.AnalyzedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "Verdict: %s (confidence %.2f)\n", rec.Verdict(), rec.Confidence)
		fmt.Fprintf(w, "Profile: %s", rec.Profile)
		if rec.ProfileVersion != "" {
			fmt.Fprintf(w, " (version %s)", rec.ProfileVersion)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Text: %d chars, %d words (hash %s)\n",
			rec.TextLength, rec.WordCount, shortHash(rec.TextHash))

		// Show limited output for large result sets
		if i >= 9 && report.TotalRecords > 10 {
			remaining := report.TotalRecords - 10
			fmt.Fprintln(w)
			fmt.Fprintf(w, "... and %d more records\n", remaining)
			fmt.Fprintf(w, "Use --limit and --offset for pagination.\n")
			break
		}
	}

	return nil
}

// parseTimeRange parses an RFC3339 interval of the form "start/end".
func parseTimeRange(value string) (time.Time, time.Time, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time range format (expected: start/end)")
	}

	start, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("time range end precedes start")
	}

	return start, end, nil
}

// shortHash abbreviates a SHA-256 hex digest for display.
func shortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12] + "…"
}
