package profile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitSourceConfig contains configuration for the git profile source.
type GitSourceConfig struct {
	// Repository is the git repository URL.
	Repository string

	// Branch is the branch to track.
	// Default: "main".
	Branch string

	// Path is the profile file path inside the repository.
	// Default: "profile.yaml".
	Path string

	// LocalPath is the local clone directory.
	// Default: a "veritas-profiles" directory under the OS temp dir.
	LocalPath string

	// PollInterval is how often Poll pulls the remote.
	// Default: 5m.
	PollInterval time.Duration

	// Timeout bounds each clone and pull operation.
	// Default: 30s.
	Timeout time.Duration
}

// GitSource loads a scoring profile from a file inside a git repository,
// keeping a local clone in sync with the tracked branch. Profiles live in
// version control so every configuration change has an auditable history.
type GitSource struct {
	config GitSourceConfig
	logger *slog.Logger

	mu   sync.Mutex
	repo *gogit.Repository
	head plumbing.Hash
}

// NewGitSource creates a git-backed profile source.
func NewGitSource(cfg GitSourceConfig, logger *slog.Logger) (*GitSource, error) {
	if cfg.Repository == "" {
		return nil, fmt.Errorf("git profile source: repository URL cannot be empty")
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.Path == "" {
		cfg.Path = "profile.yaml"
	}
	if cfg.LocalPath == "" {
		cfg.LocalPath = filepath.Join(os.TempDir(), "veritas-profiles")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GitSource{
		config: cfg,
		logger: logger.With("component", "profile.source.git"),
	}, nil
}

// Load clones (or opens) the repository, pulls the tracked branch and parses
// the profile file.
func (s *GitSource) Load(ctx context.Context) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureClone(ctx); err != nil {
		return nil, err
	}
	if _, err := s.pull(ctx); err != nil {
		return nil, err
	}

	return s.readProfile()
}

// Poll pulls the remote on the configured interval and invokes onUpdate with
// the freshly loaded profile whenever the branch head moved and the profile
// parses and validates. It blocks until the context is cancelled.
func (s *GitSource) Poll(ctx context.Context, onUpdate func(*Profile)) error {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	s.logger.Info("git profile polling started",
		"repository", s.config.Repository,
		"branch", s.config.Branch,
		"interval", s.config.PollInterval.String(),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("git profile polling stopped")
			return nil
		case <-ticker.C:
			s.mu.Lock()
			changed, err := s.pull(ctx)
			if err != nil {
				s.mu.Unlock()
				s.logger.Warn("git pull failed", "error", err)
				continue
			}
			if !changed {
				s.mu.Unlock()
				continue
			}
			p, err := s.readProfile()
			s.mu.Unlock()
			if err != nil {
				s.logger.Warn("updated profile rejected, keeping previous profile", "error", err)
				continue
			}
			s.logger.Info("profile updated from git",
				"profile", p.Name,
				"version", p.Version,
			)
			onUpdate(p)
		}
	}
}

// ensureClone clones the repository, or opens an existing local clone.
func (s *GitSource) ensureClone(ctx context.Context) error {
	if s.repo != nil {
		return nil
	}

	if _, err := os.Stat(filepath.Join(s.config.LocalPath, ".git")); err == nil {
		repo, err := gogit.PlainOpen(s.config.LocalPath)
		if err != nil {
			return fmt.Errorf("failed to open existing clone: %w", err)
		}
		s.repo = repo
		return nil
	}

	if err := os.MkdirAll(s.config.LocalPath, 0o755); err != nil {
		return fmt.Errorf("failed to create clone directory: %w", err)
	}

	cloneCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	repo, err := gogit.PlainCloneContext(cloneCtx, s.config.LocalPath, false, &gogit.CloneOptions{
		URL:           s.config.Repository,
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		return fmt.Errorf("failed to clone %q: %w", s.config.Repository, err)
	}

	s.repo = repo
	s.logger.Info("cloned profile repository",
		"repository", s.config.Repository,
		"branch", s.config.Branch,
		"local_path", s.config.LocalPath,
	)
	return nil
}

// pull fast-forwards the local clone and reports whether HEAD moved.
func (s *GitSource) pull(ctx context.Context) (bool, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree: %w", err)
	}

	pullCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	err = wt.PullContext(pullCtx, &gogit.PullOptions{
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return false, fmt.Errorf("failed to pull: %w", err)
	}

	ref, err := s.repo.Head()
	if err != nil {
		return false, fmt.Errorf("failed to get HEAD: %w", err)
	}

	changed := ref.Hash() != s.head
	s.head = ref.Hash()
	return changed, nil
}

// readProfile parses the profile file from the local clone.
func (s *GitSource) readProfile() (*Profile, error) {
	path := filepath.Join(s.config.LocalPath, s.config.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %q from clone: %w", s.config.Path, err)
	}
	return ParseBytes(data)
}
