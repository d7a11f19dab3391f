package artstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/adapters/logger"
	"go.trai.ch/shelf/internal/core/ports"
)

// NodeID is the unique identifier for the artwork store Graft node.
const NodeID graft.ID = "adapter.artwork_store"

func init() {
	graft.Register(graft.Node[ports.ArtworkStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.ArtworkStore, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.CacheDir, log), nil
		},
	})
}
