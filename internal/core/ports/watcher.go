package ports

import (
	"context"
	"iter"

	"go.trai.ch/anymon/internal/core/domain"
)

// Watcher defines the interface for watching file system changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given root directories recursively.
	// It returns an error if the watcher fails to start.
	Start(ctx context.Context, roots ...string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of change events. It ends when the watcher stops.
	Events() iter.Seq[domain.ChangeEvent]
}
