package profile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig contains configuration for the profile file watcher.
type WatcherConfig struct {
	// Path is the profile file to watch.
	Path string

	// DebounceInterval is the quiet period required after the last change
	// event before a reload triggers. Editors often emit several events per
	// save; debouncing prevents reload storms.
	// Default: 250ms.
	DebounceInterval time.Duration

	// OnReload, if set, is invoked after each reload attempt with "success"
	// or "error".
	OnReload func(status string)
}

// Watcher watches a profile file for changes and reloads it into a Store.
// A reloaded profile that fails validation is rejected and the previous
// profile stays active.
type Watcher struct {
	source  *FileSource
	store   *Store
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewWatcher creates a profile watcher feeding the given store.
func NewWatcher(source *FileSource, store *Store, config WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	if config.Path == "" {
		config.Path = source.Path()
	}
	if config.DebounceInterval <= 0 {
		config.DebounceInterval = 250 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		source:  source,
		store:   store,
		config:  config,
		watcher: fsw,
		logger:  logger.With("component", "profile.watcher"),
	}, nil
}

// Watch blocks processing file events until the context is cancelled.
// The watch is registered on the containing directory so atomic-rename saves
// (write temp file, rename over target) are observed.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("profile watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.watcher.Close()
	}()

	dir := filepath.Dir(w.config.Path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}

	w.logger.Info("profile watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	var debounce *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("profile watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.config.DebounceInterval, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			w.reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("profile watcher error", "error", err)
		}
	}
}

// relevant filters events down to changes of the watched profile file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.config.Path) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

// reload loads the profile and swaps it into the store if valid.
func (w *Watcher) reload(ctx context.Context) {
	p, err := w.source.Load(ctx)
	if err != nil {
		w.logger.Warn("profile reload rejected, keeping previous profile",
			"path", w.config.Path,
			"error", err,
		)
		if w.config.OnReload != nil {
			w.config.OnReload("error")
		}
		return
	}

	w.store.Swap(p)
	if w.config.OnReload != nil {
		w.config.OnReload("success")
	}
	w.logger.Info("profile reloaded",
		"profile", p.Name,
		"version", p.Version,
		"strategy", string(p.Strategy),
		"metric_count", len(p.Metrics),
	)
}
