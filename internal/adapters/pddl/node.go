package pddl

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/masq/internal/core/ports"
)

// NodeID is the unique identifier for the PDDL parser Graft node.
const NodeID graft.ID = "adapter.pddl"

func init() {
	graft.Register(graft.Node[ports.Parser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Parser, error) {
			return NewParser(), nil
		},
	})
}
