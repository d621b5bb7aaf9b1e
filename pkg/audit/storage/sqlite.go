package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"edusignal-hq/veritas/pkg/audit"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "audit.storage.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite audit storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return audit.NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return audit.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return audit.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return audit.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return audit.NewStorageError("sqlite", "get_schema_version", err)
	}

	if version != SchemaVersion {
		return audit.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists an audit record to the database.
func (s *SQLiteStorage) Store(ctx context.Context, record *audit.Record) error {
	if record == nil {
		return audit.NewStorageError("sqlite", "store", errNilRecord)
	}

	metrics, err := json.Marshal(record.Metrics)
	if err != nil {
		return audit.NewStorageError("sqlite", "marshal_metrics", err)
	}

	query := `
		INSERT INTO audit (
			id, request_id,
			analyzed_at, recorded_at,
			text_hash, text_length, word_count, sentence_count,
			ai_generated, confidence, metrics,
			profile, profile_version, strategy,
			duration
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.RequestID,
		record.AnalyzedAt, record.RecordedAt,
		record.TextHash, record.TextLength, record.WordCount, record.SentenceCount,
		record.AIGenerated, record.Confidence, string(metrics),
		record.Profile, record.ProfileVersion, record.Strategy,
		record.Duration.Microseconds(),
	)
	if err != nil {
		return audit.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves records matching the query filters.
func (s *SQLiteStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Record, error) {
	if query == nil {
		query = &audit.Query{}
	}

	where, args := buildWhere(query)

	order := "DESC"
	if query.SortOrder == "asc" {
		order = "ASC"
	}

	sqlQuery := fmt.Sprintf(`
		SELECT id, request_id,
		       analyzed_at, recorded_at,
		       text_hash, text_length, word_count, sentence_count,
		       ai_generated, confidence, metrics,
		       profile, profile_version, strategy,
		       duration
		FROM audit
		%s
		ORDER BY analyzed_at %s
	`, where, order)

	if query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", query.Limit)
		if query.Offset > 0 {
			sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
		}
	} else if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT -1 OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := make([]*audit.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, audit.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, audit.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	if query == nil {
		query = &audit.Query{}
	}

	where, args := buildWhere(query)

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit "+where, args...).Scan(&count)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// DeleteBefore removes records analyzed before the cutoff time.
func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM audit WHERE analyzed_at < ?", cutoff)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "delete_before", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "rows_affected", err)
	}

	return deleted, nil
}

// Trim removes the oldest records until at most max remain.
func (s *SQLiteStorage) Trim(ctx context.Context, max int64) (int64, error) {
	if max < 0 {
		return 0, nil
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM audit WHERE id IN (
			SELECT id FROM audit
			ORDER BY analyzed_at DESC
			LIMIT -1 OFFSET ?
		)
	`, max)
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "trim", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, audit.NewStorageError("sqlite", "rows_affected", err)
	}

	return deleted, nil
}

// Ping verifies the database is reachable.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return audit.NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// buildWhere builds a WHERE clause and arguments from query filters.
func buildWhere(query *audit.Query) (string, []any) {
	conditions := make([]string, 0)
	args := make([]any, 0)

	if query.StartTime != nil {
		conditions = append(conditions, "analyzed_at >= ?")
		args = append(args, *query.StartTime)
	}
	if query.EndTime != nil {
		conditions = append(conditions, "analyzed_at <= ?")
		args = append(args, *query.EndTime)
	}
	if query.Verdict != "" {
		conditions = append(conditions, "ai_generated = ?")
		args = append(args, query.Verdict == "ai")
	}
	if query.Profile != "" {
		conditions = append(conditions, "profile = ?")
		args = append(args, query.Profile)
	}
	if query.TextHash != "" {
		conditions = append(conditions, "text_hash = ?")
		args = append(args, query.TextHash)
	}
	if query.MinConfidence != nil {
		conditions = append(conditions, "confidence >= ?")
		args = append(args, *query.MinConfidence)
	}
	if query.MaxConfidence != nil {
		conditions = append(conditions, "confidence <= ?")
		args = append(args, *query.MaxConfidence)
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// scanRecord scans a single row into an audit record.
func scanRecord(rows *sql.Rows) (*audit.Record, error) {
	var record audit.Record
	var metrics string
	var durationMicros int64

	err := rows.Scan(
		&record.ID, &record.RequestID,
		&record.AnalyzedAt, &record.RecordedAt,
		&record.TextHash, &record.TextLength, &record.WordCount, &record.SentenceCount,
		&record.AIGenerated, &record.Confidence, &metrics,
		&record.Profile, &record.ProfileVersion, &record.Strategy,
		&durationMicros,
	)
	if err != nil {
		return nil, err
	}

	if metrics != "" && metrics != "null" {
		if err := json.Unmarshal([]byte(metrics), &record.Metrics); err != nil {
			return nil, err
		}
	}
	record.Duration = time.Duration(durationMicros) * time.Microsecond

	return &record, nil
}
