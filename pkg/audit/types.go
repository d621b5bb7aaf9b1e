package audit

import (
	"context"
	"time"
)

// Record is the durable trace of a single analysis. It captures the verdict
// and the raw metric values together with a SHA-256 hash of the analyzed
// text. The text itself is never stored; the hash lets an instructor later
// prove that a given submission is the one that was analyzed.
type Record struct {
	// Identity
	ID        string `json:"id"`         // UUID v4
	RequestID string `json:"request_id"` // From the HTTP layer, if any

	// Timestamps
	AnalyzedAt time.Time `json:"analyzed_at"` // When the analysis ran
	RecordedAt time.Time `json:"recorded_at"` // When the record was written

	// Content fingerprint
	TextHash      string `json:"text_hash"`   // SHA-256 of the submitted text
	TextLength    int    `json:"text_length"` // Characters
	WordCount     int    `json:"word_count"`
	SentenceCount int    `json:"sentence_count"`

	// Verdict
	AIGenerated bool               `json:"is_ai_generated"`
	Confidence  float64            `json:"confidence"`
	Metrics     map[string]float64 `json:"metrics"` // Raw metric values

	// Scoring configuration
	Profile        string `json:"profile"`
	ProfileVersion string `json:"profile_version,omitempty"`
	Strategy       string `json:"strategy"`

	// Timing
	Duration time.Duration `json:"duration"`
}

// Query defines filter parameters for querying audit records.
type Query struct {
	// Time range (inclusive)
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Filters
	Verdict  string `json:"verdict,omitempty"` // "ai" or "human"
	Profile  string `json:"profile,omitempty"`
	TextHash string `json:"text_hash,omitempty"`

	// Thresholds
	MinConfidence *float64 `json:"min_confidence,omitempty"`
	MaxConfidence *float64 `json:"max_confidence,omitempty"`

	// Pagination
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// SortOrder orders by analysis time: "asc" or "desc" (default "desc")
	SortOrder string `json:"sort_order,omitempty"`
}

// Storage defines the interface for audit storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists an audit record.
	Store(ctx context.Context, record *Record) error

	// Query retrieves records matching the query filters.
	// Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// DeleteBefore removes records analyzed before the cutoff time.
	// Returns the number of records deleted. Used for age-based retention.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Trim removes the oldest records until at most max remain.
	// Returns the number of records deleted. Used for count-based retention.
	Trim(ctx context.Context, max int64) (int64, error)

	// Ping verifies the backend is reachable. Used by readiness probes.
	Ping(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}

// Verdict returns the record's verdict as a label string.
func (r *Record) Verdict() string {
	if r.AIGenerated {
		return "ai"
	}
	return "human"
}
