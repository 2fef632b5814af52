package ports

import "go.trai.ch/opamlock/internal/core/domain"

// ConfigLoader defines the interface for loading the tool configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load searches for the configuration file from the given working directory upwards
	// and returns the resolved configuration. A missing file yields the defaults.
	Load(cwd string) (domain.Config, error)

	// LoadFile reads the configuration from an explicit file path.
	LoadFile(path string) (domain.Config, error)
}
