package warmer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/artstore"
	"go.trai.ch/shelf/internal/adapters/catalog"
	"go.trai.ch/shelf/internal/adapters/logger"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/resolver"
)

// NodeID is the unique identifier for the warmer Graft node.
const NodeID graft.ID = "engine.warmer"

func init() {
	graft.Register(graft.Node[*Warmer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			catalog.NodeID,
			artstore.NodeID,
			resolver.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Warmer, error) {
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
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cat, store, res, log), nil
		},
	})
}
