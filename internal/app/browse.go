package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/shelf/internal/adapters/detector"
	"go.trai.ch/shelf/internal/adapters/linear"
	"go.trai.ch/shelf/internal/adapters/tui"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/engine/library"
	"go.trai.ch/zerr"
)

// BrowseOptions configuration for the Browse method.
type BrowseOptions struct {
	User  string
	Mode  string
	Sort  string
	Query string
}

// Browse shows the library of a user, as the interactive grid on a terminal
// and as a plain listing otherwise.
func (a *App) Browse(ctx context.Context, opts BrowseOptions) error {
	requested, err := detector.ParseMode(opts.Mode)
	if err != nil {
		return err
	}
	key, err := library.ParseSortKey(opts.Sort)
	if err != nil {
		return err
	}
	mode := detector.ResolveMode(a.detect(), requested)

	cfg, cleanup, err := a.prepare(mode == detector.ModeTUI)
	if err != nil {
		return err
	}
	defer cleanup()

	user, err := cfg.UserOrCurrent(opts.User)
	if err != nil {
		return zerr.With(err, "user", opts.User)
	}

	if mode == detector.ModeTUI {
		return a.browseGrid(ctx, user, key, opts.Query)
	}
	return a.browseList(ctx, user, key, opts.Query)
}

func (a *App) browseList(ctx context.Context, user domain.User, key library.SortKey, query string) error {
	items, err := a.catalog.GetItems(ctx, user)
	if err != nil {
		return err
	}

	r := linear.NewRenderer(a.stdout, a.stderr)
	r.PrintItems(library.View(items, query, key), func(id domain.ItemID) bool {
		ok, err := a.store.Has(id)
		if err != nil {
			a.logger.Debug("artwork store read failed", "item", int(id), "error", err.Error())
		}
		return ok
	})
	return nil
}

func (a *App) browseGrid(ctx context.Context, user domain.User, key library.SortKey, query string) error {
	geo, grid := tui.Layout(a.sessions.Grid, 0, 0)
	factory := *a.sessions
	factory.Grid = grid

	sess, err := factory.New(geo)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.SetSort(key); err != nil {
		return err
	}
	if err := sess.SetQuery(query); err != nil {
		return err
	}

	stopWatching := a.startWatcher(ctx)
	defer stopWatching()

	model := tui.NewModel(ctx, sess, user, a.stdout)
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithOutput(a.stdout),
	}, a.teaOptions...)
	renderer := tui.NewRenderer(model, opts...)

	if err := renderer.Start(ctx); err != nil {
		return err
	}
	err = renderer.Wait()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
