// Package container provides dependency injection for the application.
package container

import (
	"context"
	"io"
	"log/slog"

	apperrors "github.com/reglet-dev/deckconf/internal/application/errors"
	"github.com/reglet-dev/deckconf/internal/application/ports"
	"github.com/reglet-dev/deckconf/internal/application/services"
	"github.com/reglet-dev/deckconf/internal/domain/repositories"
	"github.com/reglet-dev/deckconf/internal/infrastructure/adapters"
	infraconfig "github.com/reglet-dev/deckconf/internal/infrastructure/config"
	"github.com/reglet-dev/deckconf/internal/infrastructure/output"
	"github.com/reglet-dev/deckconf/internal/infrastructure/persistence/memory"
	"github.com/reglet-dev/deckconf/internal/infrastructure/persistence/sqlite"
	"github.com/reglet-dev/deckconf/internal/infrastructure/system"
)

// Container holds all application dependencies.
type Container struct {
	collection        repositories.CollectionRepository
	closer            io.Closer
	deckConfigUseCase *services.DeckConfigForUpdateUseCase
	formatterFactory  ports.OutputFormatterFactory
	systemCfg         *system.Config
	logger            *slog.Logger
}

// Options configure the container. Non-empty fields override the system
// config file.
type Options struct {
	Logger           *slog.Logger
	SystemConfigPath string
	StorageDriver    string
	StoragePath      string
	CollectionPath   string
}

// New creates a new dependency injection container and opens the collection.
func New(ctx context.Context, opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	systemCfg, err := adapters.NewSystemConfigAdapter().LoadConfig(ctx, opts.SystemConfigPath)
	if err != nil {
		return nil, apperrors.NewConfigurationError("system", "failed to load config", err)
	}
	applyOverrides(systemCfg, opts)
	if err := systemCfg.Validate(); err != nil {
		return nil, apperrors.NewConfigurationError("storage", "invalid storage settings", err)
	}

	collection, closer, err := openCollection(ctx, systemCfg, opts.Logger)
	if err != nil {
		return nil, err
	}

	// Wire up use case
	useCase := services.NewDeckConfigForUpdateUseCase(
		services.NewConfigAggregator(collection, collection),
		services.NewCurrentDeckResolver(collection),
		adapters.NewDefaultsAdapter(),
		opts.Logger,
	)

	return &Container{
		collection:        collection,
		closer:            closer,
		deckConfigUseCase: useCase,
		formatterFactory:  output.NewFormatterFactory(),
		systemCfg:         systemCfg,
		logger:            opts.Logger,
	}, nil
}

func applyOverrides(cfg *system.Config, opts Options) {
	if opts.StorageDriver != "" {
		cfg.Storage.Driver = system.StorageDriver(opts.StorageDriver)
	}
	if opts.StoragePath != "" {
		cfg.Storage.Path = opts.StoragePath
	}
	if opts.CollectionPath != "" {
		cfg.Collection = opts.CollectionPath
	}
}

func openCollection(ctx context.Context, cfg *system.Config, logger *slog.Logger) (repositories.CollectionRepository, io.Closer, error) {
	switch cfg.Storage.GetDriver() {
	case system.StorageDriverSQLite:
		logger.Debug("opening sqlite collection", "path", cfg.Storage.Path)
		store, err := sqlite.Open(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, nil, apperrors.NewConfigurationError("storage", "failed to open sqlite collection", err)
		}
		return store, store, nil

	default:
		if cfg.Collection == "" {
			return nil, nil, apperrors.NewConfigurationError("storage", "no collection file configured for the memory driver", nil)
		}
		logger.Debug("loading collection snapshot", "path", cfg.Collection)
		loader, err := infraconfig.NewCollectionLoader()
		if err != nil {
			return nil, nil, apperrors.NewConfigurationError("collection", "failed to initialize loader", err)
		}
		snapshot, err := loader.LoadCollection(cfg.Collection)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("collection", "failed to load collection", err.Error())
		}
		repo := memory.NewCollectionRepository()
		if err := snapshot.Seed(ctx, repo); err != nil {
			return nil, nil, apperrors.NewValidationError("collection", "failed to seed collection", err.Error())
		}
		return repo, nopCloser{}, nil
	}
}

// Close releases the collection handle.
func (c *Container) Close() error {
	return c.closer.Close()
}

// DeckConfigForUpdateUseCase returns the deck options use case.
func (c *Container) DeckConfigForUpdateUseCase() *services.DeckConfigForUpdateUseCase {
	return c.deckConfigUseCase
}

// Collection returns the opened collection.
func (c *Container) Collection() repositories.CollectionRepository {
	return c.collection
}

// FormatterFactory returns the output formatter factory.
func (c *Container) FormatterFactory() ports.OutputFormatterFactory {
	return c.formatterFactory
}

// SystemConfig returns the system configuration.
func (c *Container) SystemConfig() *system.Config {
	return c.systemCfg
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
