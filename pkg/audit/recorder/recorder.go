package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"edusignal-hq/veritas/pkg/audit"
	"edusignal-hq/veritas/pkg/detector"
)

// Config contains configuration for the audit recorder.
type Config struct {
	// Enabled enables audit recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Observer receives write outcomes for metrics collection.
// Statuses are "success", "error", and "dropped".
type Observer interface {
	RecordAuditWrite(status string)
}

// Recorder writes audit records for completed analyses.
// Records are enqueued on a buffered channel and written by a background
// worker, so recording never blocks the analysis path. When the buffer is
// full the record is dropped and counted.
type Recorder struct {
	storage    audit.Storage
	config     *Config
	recordChan chan *audit.Record
	wg         sync.WaitGroup
	done       chan struct{}
	closeOnce  sync.Once
	logger     *slog.Logger
	observer   Observer
}

// NewRecorder creates an audit recorder over the provided storage backend.
// The observer may be nil.
func NewRecorder(storage audit.Storage, config *Config, logger *slog.Logger, observer Observer) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = DefaultConfig().AsyncBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultConfig().WriteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *audit.Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     logger.With("component", "audit.recorder"),
		observer:   observer,
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("audit recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// NewRecord builds an audit record from an analysis result. The text is
// hashed immediately and never retained.
func NewRecord(text string, requestID string, result *detector.Result) *audit.Record {
	now := time.Now()

	return &audit.Record{
		ID:        uuid.New().String(),
		RequestID: requestID,

		AnalyzedAt: now.Add(-result.Duration),
		RecordedAt: now,

		TextHash:      HashText(text),
		TextLength:    len(text),
		WordCount:     result.WordCount,
		SentenceCount: result.SentenceCount,

		AIGenerated: result.AIGenerated,
		Confidence:  result.Confidence,
		Metrics:     result.Metrics,

		Profile:        result.Profile,
		ProfileVersion: result.ProfileVersion,
		Strategy:       result.Strategy,

		Duration: result.Duration,
	}
}

// Record enqueues an audit record for async writing.
// It returns immediately; a full buffer drops the record rather than block.
func (r *Recorder) Record(ctx context.Context, record *audit.Record) error {
	if !r.config.Enabled {
		return nil
	}

	select {
	case r.recordChan <- record:
		r.logger.Debug("audit record enqueued",
			"record_id", record.ID,
			"verdict", record.Verdict(),
		)
		return nil

	case <-r.done:
		r.observe("dropped")
		r.logger.Warn("recorder shutting down, dropping record",
			"record_id", record.ID,
		)
		return audit.NewRecorderError(record.ID, context.Canceled)

	default:
		r.observe("dropped")
		r.logger.Error("audit record channel full, dropping record",
			"record_id", record.ID,
			"channel_capacity", r.config.AsyncBuffer,
		)
		return audit.NewRecorderError(record.ID, context.DeadlineExceeded)
	}
}

// Close gracefully shuts down the recorder by draining the async channel
// and waiting for all pending writes to complete.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		r.logger.Info("shutting down audit recorder")

		close(r.done)
		r.wg.Wait()

		r.logger.Info("audit recorder shut down complete")
	})
	return nil
}

// worker drains the record channel and writes records to storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.writeRecord(record)

		case <-r.done:
			// Drain remaining records before exit
			pending := len(r.recordChan)
			if pending > 0 {
				r.logger.Info("draining audit channel before shutdown",
					"pending_count", pending,
				)
			}

			for {
				select {
				case record := <-r.recordChan:
					r.writeRecord(record)
				default:
					return
				}
			}
		}
	}
}

// writeRecord writes a single record to storage.
func (r *Recorder) writeRecord(record *audit.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	start := time.Now()

	if err := r.storage.Store(ctx, record); err != nil {
		r.observe("error")
		r.logger.Error("failed to store audit record",
			"record_id", record.ID,
			"error", err,
		)
		return
	}

	r.observe("success")

	duration := time.Since(start)

	r.logger.Debug("audit record written",
		"record_id", record.ID,
		"verdict", record.Verdict(),
		"duration_ms", duration.Milliseconds(),
	)

	if duration > r.config.WriteTimeout/2 {
		r.logger.Warn("slow audit write",
			"record_id", record.ID,
			"duration_ms", duration.Milliseconds(),
			"threshold_ms", (r.config.WriteTimeout / 2).Milliseconds(),
		)
	}
}

func (r *Recorder) observe(status string) {
	if r.observer != nil {
		r.observer.RecordAuditWrite(status)
	}
}
