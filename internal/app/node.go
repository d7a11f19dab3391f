package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/artstore"
	"go.trai.ch/shelf/internal/adapters/catalog"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/adapters/httpapi"
	"go.trai.ch/shelf/internal/adapters/logger"
	"go.trai.ch/shelf/internal/adapters/watcher"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/session"
	"go.trai.ch/shelf/internal/engine/warmer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			catalog.NodeID,
			artstore.NodeID,
			session.NodeID,
			warmer.NodeID,
			httpapi.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	cat, err := graft.Dep[ports.Catalog](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.ArtworkStore](ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := graft.Dep[*session.Factory](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[*warmer.Warmer](ctx)
	if err != nil {
		return nil, err
	}
	server, err := graft.Dep[*httpapi.Server](ctx)
	if err != nil {
		return nil, err
	}
	cfgWatcher, err := graft.Dep[*watcher.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, cat, store, sessions, w, server, cfgWatcher), nil
}
