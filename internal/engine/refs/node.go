package refs

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the ref table Graft node.
const NodeID graft.ID = "engine.refs"

func init() {
	graft.Register(graft.Node[*Table]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Table, error) {
			return NewTable(), nil
		},
	})
}
