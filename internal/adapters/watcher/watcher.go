// Package watcher reloads the configuration when its file changes.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/shelf/internal/coalesce"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDebounceWindow is the default time window for coalescing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

// Watcher follows the config file and pushes the artwork credential into the
// resolver after every successful reload.
type Watcher struct {
	loader   ports.ConfigLoader
	resolver ports.ArtworkResolver
	logger   ports.Logger

	window   time.Duration
	onReload func(*domain.Config)

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	events    *coalesce.Coalescer[string]
	done      chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithWindow sets the coalescing window for file events.
func WithWindow(d time.Duration) Option {
	return func(w *Watcher) {
		w.window = d
	}
}

// WithOnReload registers a callback invoked with every successfully reloaded config.
func WithOnReload(fn func(*domain.Config)) Option {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// New creates a watcher. Nothing is watched until Start.
func New(loader ports.ConfigLoader, resolver ports.ArtworkResolver, logger ports.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		loader:   loader,
		resolver: resolver,
		logger:   logger,
		window:   DefaultDebounceWindow,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching the config file in use. Without a config file it does nothing.
// The parent directory is watched so editors that replace the file are followed.
func (w *Watcher) Start(ctx context.Context) error {
	path := w.loader.Path()
	if path == "" {
		w.logger.Debug("no config file to watch")
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsWatcher != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", abs)
	}

	w.fsWatcher = fsw
	w.events = coalesce.New(w.window, func(string) { w.Reload() })
	w.done = make(chan struct{})
	go w.processEvents(ctx, fsw, w.events, abs, w.done)

	w.logger.Debug("watching config file", "path", abs)
	return nil
}

// Stop stops watching and drops any pending reload.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	fsw, events, done := w.fsWatcher, w.events, w.done
	w.fsWatcher, w.events, w.done = nil, nil, nil
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	err := fsw.Close()
	<-done
	events.Stop()
	return err
}

// Reload re-reads the configuration and applies the new credential.
// A failed reload keeps the previous configuration in effect.
func (w *Watcher) Reload() {
	cfg, err := w.loader.Reload()
	if err != nil {
		w.logger.Error(err)
		return
	}

	w.resolver.SetCredential(cfg.SteamGrid.APIKey)
	w.logger.Info("config reloaded", "path", w.loader.Path())

	if w.onReload != nil {
		w.onReload(cfg)
	}
}

func (w *Watcher) processEvents(
	ctx context.Context,
	fsw *fsnotify.Watcher,
	events *coalesce.Coalescer[string],
	path string,
	done chan struct{},
) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			events.Add(event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err.Error())
		}
	}
}
