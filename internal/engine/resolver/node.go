package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/artstore"
	"go.trai.ch/shelf/internal/adapters/logger"
	"go.trai.ch/shelf/internal/adapters/steamgrid"
	"go.trai.ch/shelf/internal/adapters/telemetry"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/refs"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[ports.ArtworkResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			artstore.NodeID,
			steamgrid.NodeID,
			refs.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (ports.ArtworkResolver, error) {
			store, err := graft.Dep[ports.ArtworkStore](ctx)
			if err != nil {
				return nil, err
			}
			source, err := graft.Dep[ports.CandidateSource](ctx)
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
			return New(store, source, table, log, tracer), nil
		},
	})
}
