// Package system provides infrastructure for system-level configuration.
// This covers the config file (~/.deckconf/config.yaml) that selects where
// the collection is read from and how results are printed.
package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config represents the global configuration file (~/.deckconf/config.yaml).
type Config struct {
	Storage    StorageConfig `yaml:"storage"`
	Output     OutputConfig  `yaml:"output"`
	Collection string        `yaml:"collection"`
}

// StorageConfig selects the collection backend.
type StorageConfig struct {
	// Driver is "memory" (seeded from Config.Collection) or "sqlite"
	Driver StorageDriver `yaml:"driver"`

	// Path is the SQLite database file, used by the sqlite driver
	Path string `yaml:"path"`
}

// OutputConfig configures result formatting.
type OutputConfig struct {
	Format string `yaml:"format"`
	Indent bool   `yaml:"indent"`
}

// StorageDriver names a collection backend.
type StorageDriver string

const (
	// StorageDriverMemory serves a snapshot file from memory
	StorageDriverMemory StorageDriver = "memory"

	// StorageDriverSQLite reads a SQLite collection database
	StorageDriverSQLite StorageDriver = "sqlite"
)

// GetDriver returns the configured driver, defaulting to memory.
func (c *StorageConfig) GetDriver() StorageDriver {
	switch StorageDriver(strings.ToLower(string(c.Driver))) {
	case StorageDriverSQLite:
		return StorageDriverSQLite
	default:
		return StorageDriverMemory
	}
}

// Validate checks that the selected driver has what it needs.
func (c *Config) Validate() error {
	switch StorageDriver(strings.ToLower(string(c.Storage.Driver))) {
	case "", StorageDriverMemory:
		return nil
	case StorageDriverSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q (supported: memory, sqlite)", c.Storage.Driver)
	}
}

// ConfigLoader loads system configuration from disk.
type ConfigLoader struct{}

// NewConfigLoader creates a new system config loader.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{}
}

// DefaultConfig returns a Config with safe defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: StorageDriverMemory,
		},
		Output: OutputConfig{
			Format: "table",
			Indent: true,
		},
	}
}

// Load loads the system configuration from the specified path.
// If the file does not exist, returns DefaultConfig().
func (l *ConfigLoader) Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	//nolint:gosec // G304: path is user-provided config file, validated to exist above
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid system config: %w", err)
	}

	return config, nil
}
