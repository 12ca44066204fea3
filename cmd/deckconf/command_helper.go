package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/deckconf/internal/infrastructure/container"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
// The container is closed once the handler returns.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		c, err := container.New(ctx, containerOptions(logger))
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer func() {
			if err := c.Close(); err != nil {
				logger.Warn("failed to close collection", "error", err)
			}
		}()

		return handler(&CommandContext{
			Container: c,
			Logger:    logger,
			Context:   ctx,
		}, cmd, args)
	}
}

// containerOptions turns flags, environment and config file values into
// container overrides.
func containerOptions(logger *slog.Logger) container.Options {
	return container.Options{
		Logger:           logger,
		SystemConfigPath: viper.ConfigFileUsed(),
		StorageDriver:    viper.GetString("storage.driver"),
		StoragePath:      viper.GetString("storage.path"),
		CollectionPath:   viper.GetString("collection"),
	}
}
