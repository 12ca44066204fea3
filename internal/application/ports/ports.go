// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/deckconf/internal/application/dto"
	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/infrastructure/system"
)

// DefaultsProvider supplies the built-in preset offered for new presets.
type DefaultsProvider interface {
	DefaultDeckConfig() entities.DeckConfig
}

// SystemConfigProvider loads system configuration.
type SystemConfigProvider interface {
	LoadConfig(ctx context.Context, path string) (*system.Config, error)
}

// OutputFormatter formats deck options responses.
type OutputFormatter interface {
	Format(resp *dto.DeckConfigForUpdateResponse) error
}

// FormatterOptions configures formatter creation.
type FormatterOptions struct {
	// Filter is an optional expression selecting which presets to print
	Filter string
	Indent bool

	// Color enables ANSI colors in table output
	Color bool
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
