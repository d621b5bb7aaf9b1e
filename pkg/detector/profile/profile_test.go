package profile

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultProfileValid(t *testing.T) {
	p := Default()
	if err := Validate(p); err != nil {
		t.Fatalf("default profile failed validation: %v", err)
	}
	if p.Strategy != StrategyWeightedSum {
		t.Errorf("default strategy = %q, want weighted_sum", p.Strategy)
	}
	if p.Cutoff != 0.6 {
		t.Errorf("default cutoff = %v, want 0.6", p.Cutoff)
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, m := range Default().Metrics {
		sum += m.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("default weights sum = %v, want 1.0", sum)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr string
	}{
		{
			name:   "valid default",
			mutate: func(p *Profile) {},
		},
		{
			name:    "empty name",
			mutate:  func(p *Profile) { p.Name = "" },
			wantErr: "name",
		},
		{
			name:    "unknown strategy",
			mutate:  func(p *Profile) { p.Strategy = "coin_flip" },
			wantErr: "strategy",
		},
		{
			name:    "cutoff out of range",
			mutate:  func(p *Profile) { p.Cutoff = 1.5 },
			wantErr: "cutoff",
		},
		{
			name: "weights do not sum to one",
			mutate: func(p *Profile) {
				m := p.Metrics[MetricEntropy]
				m.Weight = 0.5
				p.Metrics[MetricEntropy] = m
			},
			wantErr: "weights must sum to 1.0",
		},
		{
			name: "negative threshold",
			mutate: func(p *Profile) {
				m := p.Metrics[MetricEntropy]
				m.Threshold = -1
				p.Metrics[MetricEntropy] = m
			},
			wantErr: "threshold",
		},
		{
			name: "unknown metric",
			mutate: func(p *Profile) {
				p.Metrics["vibes"] = Metric{Weight: 0, Threshold: 1, Direction: DirectionDirect}
			},
			wantErr: "unknown metric",
		},
		{
			name: "quorum exceeds metrics",
			mutate: func(p *Profile) {
				p.Strategy = StrategyMajorityVote
				p.Quorum = 99
			},
			wantErr: "quorum",
		},
		{
			name:    "no metrics",
			mutate:  func(p *Profile) { p.Metrics = nil },
			wantErr: "at least one metric",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			err := Validate(p)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	p := &Profile{
		Name: "bare",
		Metrics: map[string]Metric{
			MetricEntropy: {Weight: 1.0, Threshold: 4.3},
		},
	}
	ApplyDefaults(p)

	if p.Strategy != StrategyWeightedSum {
		t.Errorf("Strategy = %q, want weighted_sum", p.Strategy)
	}
	if p.Cutoff != 0.6 {
		t.Errorf("Cutoff = %v, want 0.6", p.Cutoff)
	}
	if p.Quorum != 3 {
		t.Errorf("Quorum = %d, want 3", p.Quorum)
	}
	if p.Metrics[MetricEntropy].Direction != DirectionDirect {
		t.Errorf("Direction = %q, want direct", p.Metrics[MetricEntropy].Direction)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")

	yaml := `
name: test-profile
version: "7"
strategy: weighted_sum
cutoff: 0.7
metrics:
  entropy_score:
    weight: 0.5
    threshold: 4.3
    direction: direct
  vocabulary_diversity:
    weight: 0.5
    threshold: 0.45
    direction: inverse
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := NewFileSource(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.Name != "test-profile" || p.Version != "7" {
		t.Errorf("unexpected identity: %q/%q", p.Name, p.Version)
	}
	if p.Cutoff != 0.7 {
		t.Errorf("Cutoff = %v, want 0.7", p.Cutoff)
	}
	if p.Metrics[MetricDiversity].Direction != DirectionInverse {
		t.Errorf("diversity direction = %q, want inverse", p.Metrics[MetricDiversity].Direction)
	}
}

func TestFileSourceRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")

	yaml := `
name: broken
metrics:
  entropy_score:
    weight: 0.4
    threshold: 4.3
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileSource(path, nil).Load(context.Background()); err == nil {
		t.Fatal("expected validation failure for weights not summing to 1.0")
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	if _, err := NewFileSource("/nonexistent/profile.yaml", nil).Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStore(t *testing.T) {
	s := NewStore(nil)
	if s.Ready() {
		t.Error("empty store must not be ready")
	}
	if _, err := s.Active(); err != ErrNotLoaded {
		t.Errorf("Active() error = %v, want ErrNotLoaded", err)
	}

	p := Default()
	s.Swap(p)
	if !s.Ready() {
		t.Error("store must be ready after Swap")
	}
	got, err := s.Active()
	if err != nil {
		t.Fatalf("Active() error: %v", err)
	}
	if got.Name != p.Name {
		t.Errorf("Active().Name = %q, want %q", got.Name, p.Name)
	}
}

func TestClone(t *testing.T) {
	p := Default()
	c := p.Clone()

	m := c.Metrics[MetricEntropy]
	m.Weight = 0.99
	c.Metrics[MetricEntropy] = m

	if p.Metrics[MetricEntropy].Weight == 0.99 {
		t.Error("Clone shares metric map with original")
	}
}

func TestStaticSourceValidates(t *testing.T) {
	bad := &Profile{Name: "bad", Metrics: map[string]Metric{
		MetricEntropy: {Weight: 0.4, Threshold: 4.3, Direction: DirectionDirect},
	}}
	if _, err := NewStaticSource(bad).Load(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}

	if _, err := NewStaticSource(Default()).Load(context.Background()); err != nil {
		t.Fatalf("default profile rejected: %v", err)
	}
}
