package httpapi

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/artstore"
	"go.trai.ch/shelf/internal/adapters/catalog"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/adapters/logger"
	"go.trai.ch/shelf/internal/adapters/steamgrid"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/refs"
	"go.trai.ch/shelf/internal/engine/resolver"
	"go.trai.ch/shelf/internal/engine/warmer"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the HTTP API Graft node.
const NodeID graft.ID = "adapter.httpapi"

func init() {
	graft.Register(graft.Node[*Server]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			catalog.NodeID,
			artstore.NodeID,
			resolver.NodeID,
			refs.NodeID,
			steamgrid.NodeID,
			warmer.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Server, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
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
			res, err := graft.Dep[ports.ArtworkResolver](ctx)
			if err != nil {
				return nil, err
			}
			table, err := graft.Dep[*refs.Table](ctx)
			if err != nil {
				return nil, err
			}
			source, err := graft.Dep[ports.CandidateSource](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[*warmer.Warmer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			deps := Deps{
				Config:   loader,
				Catalog:  cat,
				Store:    store,
				Resolver: res,
				Table:    table,
				Tasks:    w,
				Logger:   log,
			}
			relay, canRelay := source.(GridRelay)
			if !canRelay {
				return nil, zerr.With(domain.ErrInvalidConfig, "component", "candidate source cannot relay")
			}
			deps.Relay = relay

			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}
			var opts []Option
			if cfg.CacheDir != "" {
				opts = append(opts, WithClientLogFile(filepath.Join(cfg.CacheDir, domain.ClientLogFile)))
			}
			return New(deps, opts...), nil
		},
	})
}
