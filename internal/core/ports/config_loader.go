package ports

import "go.trai.ch/masq/internal/core/domain"

// ConfigLoader defines the interface for loading the run configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd looking for the configuration file and returns the
	// resolved settings. Defaults rooted at cwd are returned if none is found.
	Load(cwd string) (*domain.Config, error)

	// LoadFile reads the configuration file at path.
	LoadFile(path string) (*domain.Config, error)
}
