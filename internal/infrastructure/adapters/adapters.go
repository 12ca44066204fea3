// Package adapters provides infrastructure adapters that implement application ports.
package adapters

import (
	"context"

	"github.com/reglet-dev/deckconf/internal/application/ports"
	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/infrastructure/system"
)

// Ensure adapters implement ports at compile time
var (
	_ ports.DefaultsProvider     = (*DefaultsAdapter)(nil)
	_ ports.SystemConfigProvider = (*SystemConfigAdapter)(nil)
)

// DefaultsAdapter supplies the built-in preset.
type DefaultsAdapter struct{}

// NewDefaultsAdapter creates a new defaults adapter.
func NewDefaultsAdapter() *DefaultsAdapter {
	return &DefaultsAdapter{}
}

// DefaultDeckConfig returns the built-in preset.
func (a *DefaultsAdapter) DefaultDeckConfig() entities.DeckConfig {
	return entities.DefaultDeckConfig()
}

// SystemConfigAdapter wraps system.ConfigLoader to implement ports.SystemConfigProvider.
type SystemConfigAdapter struct {
	loader *system.ConfigLoader
}

// NewSystemConfigAdapter creates a new system config adapter.
func NewSystemConfigAdapter() *SystemConfigAdapter {
	return &SystemConfigAdapter{loader: system.NewConfigLoader()}
}

// LoadConfig loads system configuration.
func (a *SystemConfigAdapter) LoadConfig(_ context.Context, path string) (*system.Config, error) {
	if path == "" {
		return system.DefaultConfig(), nil
	}
	return a.loader.Load(path)
}
