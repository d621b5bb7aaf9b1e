package recorder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"edusignal-hq/veritas/pkg/audit"
	"edusignal-hq/veritas/pkg/detector"
)

// blockingStorage lets tests control when writes complete.
type blockingStorage struct {
	mu      sync.Mutex
	stored  []*audit.Record
	block   chan struct{}
	failure error
}

func (s *blockingStorage) Store(ctx context.Context, record *audit.Record) error {
	if s.block != nil {
		<-s.block
	}
	if s.failure != nil {
		return s.failure
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = append(s.stored, record)
	return nil
}

func (s *blockingStorage) Query(ctx context.Context, q *audit.Query) ([]*audit.Record, error) {
	return nil, nil
}
func (s *blockingStorage) Count(ctx context.Context, q *audit.Query) (int64, error) { return 0, nil }
func (s *blockingStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}
func (s *blockingStorage) Trim(ctx context.Context, max int64) (int64, error) { return 0, nil }
func (s *blockingStorage) Ping(ctx context.Context) error                     { return nil }
func (s *blockingStorage) Close() error                                       { return nil }

func (s *blockingStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stored)
}

type countingObserver struct {
	mu       sync.Mutex
	statuses map[string]int
}

func (o *countingObserver) RecordAuditWrite(status string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.statuses == nil {
		o.statuses = make(map[string]int)
	}
	o.statuses[status]++
}

func (o *countingObserver) get(status string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.statuses[status]
}

func sampleResult() *detector.Result {
	return &detector.Result{
		AIGenerated: true,
		Confidence:  0.72,
		Metrics:     map[string]float64{"repetition": 0.31},
		Profile:     "classroom-default",
		Strategy:    "weighted_sum",
		WordCount:   310,
		Duration:    2 * time.Millisecond,
	}
}

func TestNewRecordHashesText(t *testing.T) {
	text := "The essay under review demonstrates several notable characteristics."
	record := NewRecord(text, "req-1", sampleResult())

	if record.ID == "" {
		t.Error("record has no ID")
	}
	if record.TextHash == "" || record.TextHash == text {
		t.Errorf("text hash = %q", record.TextHash)
	}
	if record.TextHash != HashText(text) {
		t.Error("hash does not match HashText output")
	}
	if record.TextLength != len(text) {
		t.Errorf("text length = %d, want %d", record.TextLength, len(text))
	}
	if record.Verdict() != "ai" {
		t.Errorf("verdict = %q, want ai", record.Verdict())
	}
}

func TestHashText(t *testing.T) {
	if HashText("") != "" {
		t.Error("empty text should hash to empty string")
	}
	if HashText("a") == HashText("b") {
		t.Error("distinct texts should hash differently")
	}
	if len(HashText("hello")) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(HashText("hello")))
	}
}

func TestRecorderWritesAsync(t *testing.T) {
	storage := &blockingStorage{}
	observer := &countingObserver{}
	r := NewRecorder(storage, &Config{Enabled: true, AsyncBuffer: 10, WriteTimeout: time.Second}, nil, observer)

	record := NewRecord("some analyzed text", "", sampleResult())
	if err := r.Record(context.Background(), record); err != nil {
		t.Fatalf("Record: %v", err)
	}

	r.Close()

	if storage.count() != 1 {
		t.Fatalf("stored %d records, want 1", storage.count())
	}
	if observer.get("success") != 1 {
		t.Errorf("success observations = %d, want 1", observer.get("success"))
	}
}

func TestRecorderDisabled(t *testing.T) {
	storage := &blockingStorage{}
	r := NewRecorder(storage, &Config{Enabled: false}, nil, nil)
	defer r.Close()

	if err := r.Record(context.Background(), NewRecord("text", "", sampleResult())); err != nil {
		t.Fatalf("Record: %v", err)
	}

	r.Close()
	if storage.count() != 0 {
		t.Errorf("disabled recorder stored %d records", storage.count())
	}
}

func TestRecorderDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	storage := &blockingStorage{block: block}
	observer := &countingObserver{}
	r := NewRecorder(storage, &Config{Enabled: true, AsyncBuffer: 1, WriteTimeout: time.Second}, nil, observer)

	// First record occupies the worker, second fills the buffer,
	// third must be dropped.
	ctx := context.Background()
	r.Record(ctx, NewRecord("one", "", sampleResult()))
	r.Record(ctx, NewRecord("two", "", sampleResult()))

	deadline := time.After(time.Second)
	var dropErr error
	for {
		dropErr = r.Record(ctx, NewRecord("three", "", sampleResult()))
		if dropErr != nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("recorder never reported a full buffer")
		case <-time.After(5 * time.Millisecond):
		}
	}

	var recErr *audit.RecorderError
	if !errors.As(dropErr, &recErr) {
		t.Errorf("drop error type = %T", dropErr)
	}
	if observer.get("dropped") == 0 {
		t.Error("no dropped observation recorded")
	}

	close(block)
	r.Close()
}

func TestRecorderObservesStorageErrors(t *testing.T) {
	storage := &blockingStorage{failure: errors.New("disk full")}
	observer := &countingObserver{}
	r := NewRecorder(storage, &Config{Enabled: true, AsyncBuffer: 10, WriteTimeout: time.Second}, nil, observer)

	r.Record(context.Background(), NewRecord("text", "", sampleResult()))
	r.Close()

	if observer.get("error") != 1 {
		t.Errorf("error observations = %d, want 1", observer.get("error"))
	}
}

func TestRecorderCloseDrains(t *testing.T) {
	storage := &blockingStorage{}
	r := NewRecorder(storage, &Config{Enabled: true, AsyncBuffer: 100, WriteTimeout: time.Second}, nil, nil)

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		r.Record(ctx, NewRecord("text", "", sampleResult()))
	}

	r.Close()

	if storage.count() != 20 {
		t.Errorf("stored %d records after close, want 20", storage.count())
	}
}
