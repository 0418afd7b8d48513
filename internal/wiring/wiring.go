// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/anymon/internal/adapters/config"
	_ "go.trai.ch/anymon/internal/adapters/console"
	_ "go.trai.ch/anymon/internal/adapters/logger"
	_ "go.trai.ch/anymon/internal/adapters/shell"
	_ "go.trai.ch/anymon/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/anymon/internal/app"
)
