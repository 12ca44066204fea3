package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "deckconf",
	Short: "Inspect deck option presets of a flashcard collection",
	Long: `deckconf reads a spaced-repetition collection and reports the option
presets available to a deck: every preset with the number of decks using it,
the preset of the deck itself, the presets of its parent decks and the
built-in default preset.

The collection is read either from a YAML snapshot held in memory or from a
SQLite database created with 'deckconf import'.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.deckconf/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("storage", "", "collection backend: memory, sqlite")
	rootCmd.PersistentFlags().String("db", "", "SQLite collection database")
	rootCmd.PersistentFlags().String("collection", "", "collection snapshot file for the memory backend")

	_ = viper.BindPFlag("storage.driver", rootCmd.PersistentFlags().Lookup("storage"))
	_ = viper.BindPFlag("storage.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("collection", rootCmd.PersistentFlags().Lookup("collection"))
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".deckconf"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// DECKCONF_STORAGE_DRIVER, DECKCONF_STORAGE_PATH, DECKCONF_COLLECTION
	viper.SetEnvPrefix("DECKCONF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
