package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"edusignal-hq/veritas/pkg/audit"
)

var errNilRecord = errors.New("nil record")

// MemoryConfig contains configuration for the in-memory storage backend.
type MemoryConfig struct {
	// MaxEntries is the maximum number of records to keep.
	// The oldest records are evicted when the limit is reached.
	// Default: 10000
	MaxEntries int
}

// DefaultMemoryConfig returns the default memory configuration.
func DefaultMemoryConfig() *MemoryConfig {
	return &MemoryConfig{
		MaxEntries: 10000,
	}
}

// MemoryStorage implements the Storage interface with a capped in-memory
// slice. It is the default backend: useful for development and for
// deployments that only need the trail for the lifetime of the process.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []*audit.Record
	config  *MemoryConfig
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage(config *MemoryConfig) *MemoryStorage {
	if config == nil {
		config = DefaultMemoryConfig()
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultMemoryConfig().MaxEntries
	}

	return &MemoryStorage{
		records: make([]*audit.Record, 0),
		config:  config,
	}
}

// Store appends a record, evicting the oldest when the cap is reached.
func (m *MemoryStorage) Store(ctx context.Context, record *audit.Record) error {
	if record == nil {
		return audit.NewStorageError("memory", "store", errNilRecord)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, record)

	if len(m.records) > m.config.MaxEntries {
		overflow := len(m.records) - m.config.MaxEntries
		m.records = m.records[overflow:]
	}

	return nil
}

// Query retrieves records matching the query filters.
func (m *MemoryStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Record, error) {
	if query == nil {
		query = &audit.Query{}
	}

	m.mu.RLock()
	matched := make([]*audit.Record, 0)
	for _, record := range m.records {
		if matches(record, query) {
			matched = append(matched, record)
		}
	}
	m.mu.RUnlock()

	// Sort by analysis time, newest first unless asked otherwise
	asc := query.SortOrder == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		if asc {
			return matched[i].AnalyzedAt.Before(matched[j].AnalyzedAt)
		}
		return matched[i].AnalyzedAt.After(matched[j].AnalyzedAt)
	})

	// Apply pagination
	if query.Offset > 0 {
		if query.Offset >= len(matched) {
			return []*audit.Record{}, nil
		}
		matched = matched[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(matched) {
		matched = matched[:query.Limit]
	}

	return matched, nil
}

// Count returns the number of records matching the query filters.
func (m *MemoryStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	if query == nil {
		query = &audit.Query{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, record := range m.records {
		if matches(record, query) {
			count++
		}
	}

	return count, nil
}

// DeleteBefore removes records analyzed before the cutoff time.
func (m *MemoryStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	var deleted int64
	for _, record := range m.records {
		if record.AnalyzedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	m.records = kept

	return deleted, nil
}

// Trim removes the oldest records until at most max remain.
func (m *MemoryStorage) Trim(ctx context.Context, max int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if max < 0 || int64(len(m.records)) <= max {
		return 0, nil
	}

	// Records are held in insertion order; evict from the front
	sort.SliceStable(m.records, func(i, j int) bool {
		return m.records[i].AnalyzedAt.Before(m.records[j].AnalyzedAt)
	})

	deleted := int64(len(m.records)) - max
	m.records = append([]*audit.Record(nil), m.records[deleted:]...)

	return deleted, nil
}

// Ping always succeeds for the memory backend.
func (m *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

// Close releases the stored records.
func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = nil
	return nil
}

// Len returns the number of stored records.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}

// matches reports whether a record satisfies all query filters.
func matches(record *audit.Record, query *audit.Query) bool {
	if query.StartTime != nil && record.AnalyzedAt.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.AnalyzedAt.After(*query.EndTime) {
		return false
	}
	if query.Verdict != "" && record.Verdict() != query.Verdict {
		return false
	}
	if query.Profile != "" && record.Profile != query.Profile {
		return false
	}
	if query.TextHash != "" && record.TextHash != query.TextHash {
		return false
	}
	if query.MinConfidence != nil && record.Confidence < *query.MinConfidence {
		return false
	}
	if query.MaxConfidence != nil && record.Confidence > *query.MaxConfidence {
		return false
	}
	return true
}
