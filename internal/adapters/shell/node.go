package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/anymon/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the executor Graft node.
	NodeID graft.ID = "adapter.executor"
	// LauncherNodeID is the unique identifier for the launcher Graft node.
	LauncherNodeID graft.ID = "adapter.launcher"
)

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.Executor, error) {
			return NewExecutor(), nil
		},
	})

	graft.Register(graft.Node[ports.Launcher]{
		ID:        LauncherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.Launcher, error) {
			return NewLauncher(), nil
		},
	})
}
