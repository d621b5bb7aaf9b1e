package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"edusignal-hq/veritas/pkg/audit"
)

func testRecord(id string, analyzedAt time.Time, ai bool, confidence float64) *audit.Record {
	return &audit.Record{
		ID:          id,
		AnalyzedAt:  analyzedAt,
		RecordedAt:  analyzedAt,
		TextHash:    "hash-" + id,
		TextLength:  500,
		AIGenerated: ai,
		Confidence:  confidence,
		Profile:     "classroom-default",
		Strategy:    "weighted_sum",
	}
}

func TestMemoryStoreAndQuery(t *testing.T) {
	s := NewMemoryStorage(nil)
	defer s.Close()

	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		rec := testRecord(fmt.Sprintf("r%d", i), base.Add(time.Duration(i)*time.Minute), i%2 == 0, 0.5)
		if err := s.Store(ctx, rec); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}

	records, err := s.Query(ctx, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}

	// Default sort is newest first
	if records[0].ID != "r4" {
		t.Errorf("first record = %s, want r4", records[0].ID)
	}
}

func TestMemoryQueryFilters(t *testing.T) {
	s := NewMemoryStorage(nil)
	defer s.Close()

	ctx := context.Background()
	base := time.Now()

	s.Store(ctx, testRecord("ai1", base, true, 0.8))
	s.Store(ctx, testRecord("ai2", base.Add(time.Minute), true, 0.65))
	s.Store(ctx, testRecord("hu1", base.Add(2*time.Minute), false, 0.3))

	records, err := s.Query(ctx, &audit.Query{Verdict: "ai"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("verdict filter: got %d records, want 2", len(records))
	}

	min := 0.7
	records, _ = s.Query(ctx, &audit.Query{MinConfidence: &min})
	if len(records) != 1 || records[0].ID != "ai1" {
		t.Errorf("confidence filter: got %v", records)
	}

	records, _ = s.Query(ctx, &audit.Query{TextHash: "hash-hu1"})
	if len(records) != 1 || records[0].ID != "hu1" {
		t.Errorf("hash filter: got %v", records)
	}

	count, err := s.Count(ctx, &audit.Query{Verdict: "human"})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}

func TestMemoryPagination(t *testing.T) {
	s := NewMemoryStorage(nil)
	defer s.Close()

	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 10; i++ {
		s.Store(ctx, testRecord(fmt.Sprintf("r%d", i), base.Add(time.Duration(i)*time.Second), false, 0.5))
	}

	records, _ := s.Query(ctx, &audit.Query{Limit: 3, Offset: 2, SortOrder: "asc"})
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].ID != "r2" {
		t.Errorf("first record = %s, want r2", records[0].ID)
	}
}

func TestMemoryEviction(t *testing.T) {
	s := NewMemoryStorage(&MemoryConfig{MaxEntries: 3})
	defer s.Close()

	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 5; i++ {
		s.Store(ctx, testRecord(fmt.Sprintf("r%d", i), base.Add(time.Duration(i)*time.Second), false, 0.5))
	}

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	// Oldest two are evicted
	records, _ := s.Query(ctx, &audit.Query{SortOrder: "asc"})
	if records[0].ID != "r2" {
		t.Errorf("oldest surviving record = %s, want r2", records[0].ID)
	}
}

func TestMemoryDeleteBefore(t *testing.T) {
	s := NewMemoryStorage(nil)
	defer s.Close()

	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 6; i++ {
		s.Store(ctx, testRecord(fmt.Sprintf("r%d", i), base.Add(time.Duration(i)*time.Hour), false, 0.5))
	}

	deleted, err := s.DeleteBefore(ctx, base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestMemoryTrim(t *testing.T) {
	s := NewMemoryStorage(nil)
	defer s.Close()

	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 6; i++ {
		s.Store(ctx, testRecord(fmt.Sprintf("r%d", i), base.Add(time.Duration(i)*time.Second), false, 0.5))
	}

	deleted, err := s.Trim(ctx, 2)
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted = %d, want 4", deleted)
	}

	records, _ := s.Query(ctx, &audit.Query{SortOrder: "asc"})
	if len(records) != 2 || records[0].ID != "r4" {
		t.Errorf("survivors = %v", records)
	}

	// Trimming below the current count is a no-op
	deleted, _ = s.Trim(ctx, 10)
	if deleted != 0 {
		t.Errorf("second trim deleted = %d, want 0", deleted)
	}
}

func TestMemoryStoreNil(t *testing.T) {
	s := NewMemoryStorage(nil)
	defer s.Close()

	if err := s.Store(context.Background(), nil); err == nil {
		t.Error("expected error storing nil record")
	}
}
