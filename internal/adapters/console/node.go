package console

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/anymon/internal/core/ports"
)

// NodeID is the unique identifier for the console Graft node.
const NodeID graft.ID = "adapter.console"

func init() {
	graft.Register(graft.Node[ports.ControlInput]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.ControlInput, error) {
			return New(os.Stdin), nil
		},
	})
}
