// Package app implements the application layer for shelf.
package app

import (
	"context"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/shelf/internal/adapters/detector"
	"go.trai.ch/shelf/internal/adapters/httpapi"
	"go.trai.ch/shelf/internal/adapters/watcher"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/session"
	"go.trai.ch/shelf/internal/engine/warmer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	catalog      ports.Catalog
	store        ports.ArtworkStore
	sessions     *session.Factory
	warmer       *warmer.Warmer
	server       *httpapi.Server
	watcher      *watcher.Watcher

	stdout     io.Writer
	stderr     io.Writer
	detect     func() detector.OutputMode
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	catalog ports.Catalog,
	store ports.ArtworkStore,
	sessions *session.Factory,
	w *warmer.Warmer,
	server *httpapi.Server,
	cfgWatcher *watcher.Watcher,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		catalog:      catalog,
		store:        store,
		sessions:     sessions,
		warmer:       w,
		server:       server,
		watcher:      cfgWatcher,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		detect:       detector.DetectEnvironment,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithOutput replaces the streams listings and progress are written to.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDetector replaces output mode detection.
func (a *App) WithDetector(detect func() detector.OutputMode) *App {
	a.detect = detect
	return a
}

// prepare loads the configuration, applies its logging settings and makes
// sure the artwork store exists. A store that cannot be created is fatal.
// The returned function undoes the logging redirect and closes the store.
func (a *App) prepare(interactive bool) (*domain.Config, func(), error) {
	cfg, err := a.configLoader.Load()
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	restoreLog, err := a.configureLogging(cfg, interactive)
	if err != nil {
		return nil, nil, err
	}

	if err := a.store.Ensure(); err != nil {
		restoreLog()
		return nil, nil, err
	}

	return cfg, func() {
		if c, ok := a.store.(io.Closer); ok {
			if err := c.Close(); err != nil {
				a.logger.Error(err)
			}
		}
		restoreLog()
	}, nil
}

// logSettings is implemented by the logger adapter.
type logSettings interface {
	SetLevel(name string) error
	SetJSON(enable bool)
	SetOutput(w io.Writer)
}

// configureLogging applies cfg.Log. The interactive grid owns the terminal,
// so its logs go to a debug file under the cache root unless a file is configured.
func (a *App) configureLogging(cfg *domain.Config, interactive bool) (func(), error) {
	noop := func() {}
	settings, ok := a.logger.(logSettings)
	if !ok {
		return noop, nil
	}

	if cfg.Log.Level != "" {
		if err := settings.SetLevel(cfg.Log.Level); err != nil {
			return nil, err
		}
	}
	settings.SetJSON(cfg.Log.JSON)

	path := cfg.Log.File
	if path == "" && interactive && cfg.CacheDir != "" {
		path = filepath.Join(cfg.CacheDir, domain.DebugLogFile)
	}
	if path == "" {
		return noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create log directory"), "path", path)
	}
	//nolint:gosec // path comes from the user's configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.PrivateFilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open log file"), "path", path)
	}
	settings.SetOutput(f)

	return func() {
		settings.SetOutput(a.stderr)
		_ = f.Close()
	}, nil
}

// users returns the named user, or every configured user ordered by key.
func users(cfg *domain.Config, name string) ([]domain.User, error) {
	if name != "" {
		u, err := cfg.UserOrCurrent(name)
		if err != nil {
			return nil, zerr.With(err, "user", name)
		}
		return []domain.User{u}, nil
	}

	out := make([]domain.User, 0, len(cfg.Users))
	for _, key := range slices.Sorted(maps.Keys(cfg.Users)) {
		u, err := cfg.UserOrCurrent(key)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if len(out) == 0 {
		return nil, domain.ErrNoUserSelected
	}
	return out, nil
}

// startWatcher reloads the configuration on file changes until the returned
// function is called. Watch failures are logged; the command keeps running.
func (a *App) startWatcher(ctx context.Context) func() {
	if a.watcher == nil {
		return func() {}
	}
	if err := a.watcher.Start(ctx); err != nil {
		a.logger.Warn("config hot reload disabled", "error", err.Error())
		return func() {}
	}
	return func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Error(err)
		}
	}
}
