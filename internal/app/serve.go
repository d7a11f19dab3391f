package app

import (
	"context"

	"go.trai.ch/shelf/internal/adapters/linear"
)

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	// Listen overrides the configured listen address.
	Listen string
}

// Serve runs the HTTP API until ctx is done. The config file is watched so
// a rotated credential takes effect without a restart.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	cfg, cleanup, err := a.prepare(false)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := opts.Listen
	if addr == "" {
		addr = cfg.Listen
	}

	stopWatching := a.startWatcher(ctx)
	defer stopWatching()

	defer func() {
		if err := a.server.Close(); err != nil {
			a.logger.Error(err)
		}
	}()
	err = a.server.ListenAndServe(ctx, addr)
	a.warmer.Wait()
	return err
}

// WarmOptions configuration for the Warm method.
type WarmOptions struct {
	// User limits the warm-up to one configured user.
	User string
}

// Warm stores artwork for every item that has none yet and prints progress.
func (a *App) Warm(ctx context.Context, opts WarmOptions) error {
	cfg, cleanup, err := a.prepare(false)
	if err != nil {
		return err
	}
	defer cleanup()

	targets, err := users(cfg, opts.User)
	if err != nil {
		return err
	}

	renderer := linear.NewRenderer(a.stdout, a.stderr)
	unsubscribe := a.warmer.Subscribe(renderer.OnTasks)
	defer unsubscribe()

	_, err = a.warmer.Run(ctx, targets)
	return err
}

// Clean removes every stored artwork entry.
func (a *App) Clean(_ context.Context) error {
	_, cleanup, err := a.prepare(false)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := a.store.Clear()
	if err != nil {
		return err
	}
	a.logger.Info("removed stored artwork", "entries", n)
	return nil
}
