// Package httpapi serves the library, the artwork store and the candidate
// relay over HTTP for browser front-ends.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/shelf/internal/adapters/steamgrid"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/refs"
	"go.trai.ch/zerr"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// GridRelay fetches candidate lists on behalf of a caller.
type GridRelay interface {
	Relay(ctx context.Context, id domain.ItemID, key string) (*steamgrid.GridsResponse, error)
}

// TaskManager runs and lists artwork warm-ups.
type TaskManager interface {
	Start(ctx context.Context, users []domain.User) (domain.Task, error)
	Tasks() []domain.Task
	Remove(id string) error
}

// Deps holds the collaborators of a Server.
type Deps struct {
	Config   ports.ConfigLoader
	Catalog  ports.Catalog
	Store    ports.ArtworkStore
	Resolver ports.ArtworkResolver
	Table    *refs.Table
	Relay    GridRelay
	Tasks    TaskManager
	Logger   ports.Logger
}

// Server exposes Deps over HTTP.
type Server struct {
	deps      Deps
	cors      CORSConfig
	logMu     sync.Mutex
	clientLog io.Writer
	logPath   string
	logFile   *os.File

	// ctx outlives single requests; background tasks started over HTTP use it.
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Server.
type Option func(*Server)

// WithCORS replaces the default CORS configuration.
func WithCORS(cfg CORSConfig) Option {
	return func(s *Server) {
		s.cors = cfg
	}
}

// WithClientLog appends log entries posted by clients to w, one JSON object per line.
// Without it the entries go to the logger.
func WithClientLog(w io.Writer) Option {
	return func(s *Server) {
		s.clientLog = w
	}
}

// WithClientLogFile appends client log entries to the file at path, which is
// created on the first entry.
func WithClientLogFile(path string) Option {
	return func(s *Server) {
		s.logPath = path
	}
}

// New creates a Server.
func New(deps Deps, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		deps:   deps,
		cors:   DefaultCORSConfig(),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return Chain(
		Recovery(s.deps.Logger),
		Logging(s.deps.Logger),
		CORS(s.cors),
	)(mux)
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully. Background tasks started over HTTP are canceled on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.deps.Logger.Info("http api listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		s.cancel()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.cancel()
	<-errCh
	if err != nil {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	s.deps.Logger.Info("http api stopped")
	return nil
}

// Close cancels background tasks started over HTTP and closes the client log.
func (s *Server) Close() error {
	s.cancel()

	s.logMu.Lock()
	defer s.logMu.Unlock()
	if s.logFile == nil {
		return nil
	}
	err := s.logFile.Close()
	s.logFile = nil
	s.clientLog = nil
	return err
}

// clientLogWriter returns the client log destination, opening the file on
// first use. It returns nil when entries go to the logger. logMu must be held.
func (s *Server) clientLogWriter() (io.Writer, error) {
	if s.clientLog != nil || s.logPath == "" {
		return s.clientLog, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.logPath), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create client log directory"), "path", s.logPath)
	}
	//nolint:gosec // path is derived from the configured cache root
	f, err := os.OpenFile(s.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.PrivateFilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open client log"), "path", s.logPath)
	}
	s.logFile = f
	s.clientLog = f
	return f, nil
}
