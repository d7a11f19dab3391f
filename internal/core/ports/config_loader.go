package ports

import "go.trai.ch/shelf/internal/core/domain"

// ConfigLoader defines the interface for loading the application configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load returns the configuration, reading it on first use.
	Load() (*domain.Config, error)
	// Reload discards the loaded configuration and reads it again.
	Reload() (*domain.Config, error)
	// Path returns the config file in use, or an empty string when none was found.
	Path() string
}
