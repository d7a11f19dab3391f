package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/core/ports"
)

// NodeID is the unique identifier for the catalog Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[ports.Catalog]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Catalog, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}
			if cfg.CatalogFile != "" {
				return NewFile(cfg.CatalogFile), nil
			}
			return NewSteam(cfg.Steam.BaseURL, cfg.Steam.Timeout), nil
		},
	})
}
