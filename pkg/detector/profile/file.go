package profile

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Source supplies scoring profiles from some backing location.
type Source interface {
	// Load reads, defaults and validates the profile.
	Load(ctx context.Context) (*Profile, error)
}

// FileSource loads a scoring profile from a YAML file on disk.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a file-based profile source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		logger: logger.With("component", "profile.source.file"),
	}
}

// Path returns the watched file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads and validates the profile file.
func (s *FileSource) Load(ctx context.Context) (*Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %q: %w", s.path, err)
	}

	p, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile file %q: %w", s.path, err)
	}

	s.logger.Debug("loaded profile file",
		"path", s.path,
		"profile", p.Name,
		"version", p.Version,
		"metric_count", len(p.Metrics),
	)

	return p, nil
}

// ParseBytes parses YAML bytes into a validated profile.
func ParseBytes(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	ApplyDefaults(&p)

	if err := Validate(&p); err != nil {
		return nil, err
	}

	return &p, nil
}

// StaticSource serves a fixed in-memory profile. Used when no profile file is
// configured and for tests.
type StaticSource struct {
	profile *Profile
}

// NewStaticSource wraps a profile in a Source. The profile is validated on
// first Load.
func NewStaticSource(p *Profile) *StaticSource {
	return &StaticSource{profile: p}
}

// Load returns the wrapped profile after defaulting and validation.
func (s *StaticSource) Load(ctx context.Context) (*Profile, error) {
	p := s.profile.Clone()
	ApplyDefaults(p)
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}
