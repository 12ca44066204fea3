package main

import (
	"context"
	"fmt"
	"log/slog"

	infraconfig "github.com/reglet-dev/deckconf/internal/infrastructure/config"
	"github.com/reglet-dev/deckconf/internal/infrastructure/persistence/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// importCmd copies a collection snapshot into a SQLite database.
var importCmd = &cobra.Command{
	Use:   "import <collection.yaml>",
	Short: "Import a collection snapshot into a SQLite database",
	Long: `Validate a collection snapshot and write its presets and decks into the
SQLite database given by --db (or storage.path in the config file). Existing
rows with the same ids are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := viper.GetString("storage.path")
		if dbPath == "" {
			return fmt.Errorf("no database given: use --db or set storage.path")
		}
		return runImportAction(cmd.Context(), slog.Default(), args[0], dbPath)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// runImportAction loads snapshotPath and writes it to the database at dbPath.
func runImportAction(ctx context.Context, logger *slog.Logger, snapshotPath, dbPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	loader, err := infraconfig.NewCollectionLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize loader: %w", err)
	}

	logger.Info("loading collection snapshot", "path", snapshotPath)
	snapshot, err := loader.LoadCollection(snapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	store, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = store.Close() // Best-effort cleanup
	}()

	if err := snapshot.Seed(ctx, store); err != nil {
		return fmt.Errorf("failed to import collection: %w", err)
	}

	logger.Info("collection imported",
		"database", dbPath,
		"deck_configs", len(snapshot.Configs),
		"decks", len(snapshot.Decks))
	return nil
}
