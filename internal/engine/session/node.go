package session

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/artstore"
	"go.trai.ch/shelf/internal/adapters/catalog"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/adapters/logger"
	"go.trai.ch/shelf/internal/adapters/telemetry"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/refs"
	"go.trai.ch/shelf/internal/engine/resolver"
)

// NodeID is the unique identifier for the session factory Graft node.
const NodeID graft.ID = "engine.session"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			catalog.NodeID,
			artstore.NodeID,
			resolver.NodeID,
			refs.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			cat, err := graft.Dep[ports.Catalog](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.ArtworkStore](ctx)
			if err != nil {
				return nil, err
			}
			res, err := graft.Dep[ports.ArtworkResolver](ctx)
			if err != nil {
				return nil, err
			}
			table, err := graft.Dep[*refs.Table](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}

			return &Factory{
				Catalog:  cat,
				Store:    store,
				Resolver: res,
				Table:    table,
				Logger:   log,
				Tracer:   tracer,
				Grid:     cfg.Grid,
			}, nil
		},
	})
}
