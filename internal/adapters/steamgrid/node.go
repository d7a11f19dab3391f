package steamgrid

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/core/ports"
)

// NodeID is the unique identifier for the candidate source Graft node.
const NodeID graft.ID = "adapter.candidate_source"

func init() {
	graft.Register(graft.Node[ports.CandidateSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
		},
		Run: func(ctx context.Context) (ports.CandidateSource, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}

			var opts []Option
			if cfg.SteamGrid.Relay {
				opts = append(opts, WithRelay())
			}
			return NewClient(cfg.SteamGrid.BaseURL, cfg.SteamGrid.APIKey, cfg.SteamGrid.Timeout, opts...), nil
		},
	})
}
