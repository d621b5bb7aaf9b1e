package retention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"edusignal-hq/veritas/pkg/audit"
	"edusignal-hq/veritas/pkg/audit/storage"
)

type pruneObserver struct {
	deleted []int64
}

func (o *pruneObserver) RecordAuditPrune(deleted int64) {
	o.deleted = append(o.deleted, deleted)
}

func seed(t *testing.T, s audit.Storage, n int, spacing time.Duration, start time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := s.Store(context.Background(), &audit.Record{
			ID:         fmt.Sprintf("r%d", i),
			AnalyzedAt: start.Add(time.Duration(i) * spacing),
			RecordedAt: start.Add(time.Duration(i) * spacing),
			TextHash:   "hash",
			Profile:    "classroom-default",
			Strategy:   "weighted_sum",
		})
		if err != nil {
			t.Fatalf("Store: %v", err)
		}
	}
}

func TestPruneByAge(t *testing.T) {
	s := storage.NewMemoryStorage(nil)
	defer s.Close()

	// 5 records, 100 days ago through today
	seed(t, s, 5, 25*24*time.Hour, time.Now().AddDate(0, 0, -100))

	observer := &pruneObserver{}
	p := NewPruner(s, &Config{RetentionDays: 90}, nil, observer)

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if len(observer.deleted) != 1 || observer.deleted[0] != 1 {
		t.Errorf("observer saw %v", observer.deleted)
	}
}

func TestPruneByCount(t *testing.T) {
	s := storage.NewMemoryStorage(nil)
	defer s.Close()

	seed(t, s, 10, time.Minute, time.Now().Add(-time.Hour))

	p := NewPruner(s, &Config{RetentionDays: 0, MaxRecords: 4}, nil, nil)

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 6 {
		t.Errorf("deleted = %d, want 6", deleted)
	}

	count, _ := s.Count(context.Background(), nil)
	if count != 4 {
		t.Errorf("remaining = %d, want 4", count)
	}
}

func TestPruneNothingToDo(t *testing.T) {
	s := storage.NewMemoryStorage(nil)
	defer s.Close()

	seed(t, s, 3, time.Minute, time.Now().Add(-time.Hour))

	p := NewPruner(s, &Config{RetentionDays: 90, MaxRecords: 100}, nil, nil)

	deleted, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestSchedulerInvalidExpression(t *testing.T) {
	s := storage.NewMemoryStorage(nil)
	defer s.Close()

	p := NewPruner(s, &Config{PruneSchedule: "not a cron line"}, nil, nil)

	if err := p.Scheduler().Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	s := storage.NewMemoryStorage(nil)
	defer s.Close()

	p := NewPruner(s, &Config{PruneSchedule: "0 3 * * *"}, nil, nil)
	sched := p.Scheduler()

	ctx, cancel := context.WithCancel(context.Background())
	if err := sched.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !sched.IsRunning() {
		t.Error("scheduler not running after Start")
	}
	if sched.NextRun() == nil {
		t.Error("NextRun returned nil for a scheduled job")
	}

	cancel()

	deadline := time.After(time.Second)
	for sched.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("scheduler still running after context cancellation")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerEmptySchedule(t *testing.T) {
	s := storage.NewMemoryStorage(nil)
	defer s.Close()

	p := NewPruner(s, &Config{PruneSchedule: ""}, nil, nil)

	if err := p.Scheduler().Start(context.Background()); err != nil {
		t.Fatalf("Start with empty schedule: %v", err)
	}
	if p.Scheduler().IsRunning() {
		t.Error("scheduler should not run with empty schedule")
	}
}
