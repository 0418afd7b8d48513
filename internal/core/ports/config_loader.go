package ports

import "go.trai.ch/anymon/internal/core/domain"

// ConfigLoader defines the interface for loading the watch configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. When path is empty the loader
	// looks for the default config file in cwd and returns a nil config and a
	// nil error if there is none.
	Load(cwd, path string) (*domain.Config, error)
}
