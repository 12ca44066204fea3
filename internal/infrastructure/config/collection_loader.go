// Package config provides infrastructure for loading collection snapshots.
// This package handles YAML parsing, schema validation and file I/O.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/repositories"
	"github.com/reglet-dev/deckconf/internal/domain/values"
	"github.com/reglet-dev/deckconf/internal/infrastructure/config/schema"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SupportedSnapshotVersions is the range of snapshot format versions this
// build can read.
const SupportedSnapshotVersions = "^1.0.0"

// CollectionSnapshot is a collection's presets and decks as read from a file.
type CollectionSnapshot struct {
	Version string
	Configs []*entities.DeckConfig
	Decks   []*entities.Deck
}

type snapshotFile struct {
	Version     string               `yaml:"version"`
	DeckConfigs []snapshotDeckConfig `yaml:"deck_configs"`
	Decks       []snapshotDeck       `yaml:"decks"`
}

type snapshotDeckConfig struct {
	Config    map[string]any `yaml:"config"`
	Name      string         `yaml:"name"`
	ID        int64          `yaml:"id"`
	MtimeSecs int64          `yaml:"mtime_secs"`
	Usn       int32          `yaml:"usn"`
}

type snapshotDeck struct {
	Filtered  *snapshotFiltered `yaml:"filtered"`
	ConfigID  *int64            `yaml:"config_id"`
	Name      string            `yaml:"name"`
	ID        int64             `yaml:"id"`
	MtimeSecs int64             `yaml:"mtime_secs"`
	Usn       int32             `yaml:"usn"`
}

type snapshotFiltered struct {
	Reschedule *bool  `yaml:"reschedule"`
	Search     string `yaml:"search"`
	Limit      uint32 `yaml:"limit"`
}

// CollectionLoader handles loading collection snapshots from YAML files.
type CollectionLoader struct {
	schema      *jsonschema.Schema
	constraints *semver.Constraints
}

// NewCollectionLoader creates a new collection loader with the embedded schema.
func NewCollectionLoader() (*CollectionLoader, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("collection.schema.json", bytes.NewReader(schema.Collection)); err != nil {
		return nil, fmt.Errorf("failed to add collection schema: %w", err)
	}
	compiled, err := compiler.Compile("collection.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile collection schema: %w", err)
	}

	constraints, err := semver.NewConstraint(SupportedSnapshotVersions)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot version constraint: %w", err)
	}

	return &CollectionLoader{schema: compiled, constraints: constraints}, nil
}

// LoadCollection loads and validates a snapshot from a YAML file.
func (l *CollectionLoader) LoadCollection(path string) (*CollectionSnapshot, error) {
	// Security: Use os.OpenRoot to prevent path traversal attacks
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open collection directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return l.LoadCollectionFromReader(file)
}

// LoadCollectionFromReader loads and validates a snapshot from an io.Reader.
func (l *CollectionLoader) LoadCollectionFromReader(r io.Reader) (*CollectionSnapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	if err := l.validateSchema(data); err != nil {
		return nil, err
	}

	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode collection YAML: %w", err)
	}

	if err := l.checkVersion(file.Version); err != nil {
		return nil, err
	}

	return file.toSnapshot()
}

func (l *CollectionLoader) validateSchema(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to decode collection YAML: %w", err)
	}
	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to decode collection YAML: %w", err)
	}

	if err := l.schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return formatSchemaValidationError(validationErr)
		}
		return fmt.Errorf("collection validation failed: %w", err)
	}
	return nil
}

func (l *CollectionLoader) checkVersion(raw string) error {
	version, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("invalid collection version %q: %w", raw, err)
	}
	if !l.constraints.Check(version) {
		return fmt.Errorf("unsupported collection version %s (supported: %s)", version, SupportedSnapshotVersions)
	}
	return nil
}

func (f *snapshotFile) toSnapshot() (*CollectionSnapshot, error) {
	snapshot := &CollectionSnapshot{
		Version: f.Version,
		Configs: make([]*entities.DeckConfig, 0, len(f.DeckConfigs)),
		Decks:   make([]*entities.Deck, 0, len(f.Decks)),
	}

	for _, raw := range f.DeckConfigs {
		conf := entities.DefaultDeckConfig()
		conf.ID = values.DeckConfigID(raw.ID)
		conf.Name = raw.Name
		conf.MtimeSecs = raw.MtimeSecs
		conf.Usn = raw.Usn

		// Settings not given in the file keep their default values
		if len(raw.Config) > 0 {
			encoded, err := yaml.Marshal(raw.Config)
			if err != nil {
				return nil, fmt.Errorf("deck config %d: %w", raw.ID, err)
			}
			if err := yaml.Unmarshal(encoded, &conf.Settings); err != nil {
				return nil, fmt.Errorf("deck config %d: invalid settings: %w", raw.ID, err)
			}
		}
		snapshot.Configs = append(snapshot.Configs, &conf)
	}

	for _, raw := range f.Decks {
		id := values.DeckID(raw.ID)
		var deck *entities.Deck
		if raw.Filtered != nil {
			deck = entities.NewFilteredDeck(id, raw.Name, raw.Filtered.Search)
			kind := deck.Kind.(entities.FilteredDeck)
			if raw.Filtered.Limit > 0 {
				kind.Limit = raw.Filtered.Limit
			}
			if raw.Filtered.Reschedule != nil {
				kind.Reschedule = *raw.Filtered.Reschedule
			}
			deck.Kind = kind
		} else {
			deck = entities.NewNormalDeck(id, raw.Name, values.DeckConfigID(*raw.ConfigID))
		}
		if strings.TrimSpace(deck.Name) == "" {
			return nil, fmt.Errorf("deck %d: name is required", raw.ID)
		}
		deck.MtimeSecs = raw.MtimeSecs
		deck.Usn = raw.Usn
		snapshot.Decks = append(snapshot.Decks, deck)
	}

	return snapshot, nil
}

// Seed writes every preset and deck of the snapshot into a collection.
func (s *CollectionSnapshot) Seed(ctx context.Context, w repositories.CollectionWriter) error {
	for _, conf := range s.Configs {
		if err := w.SaveDeckConfig(ctx, conf); err != nil {
			return fmt.Errorf("failed to save deck config %s: %w", conf.ID, err)
		}
	}
	for _, deck := range s.Decks {
		if err := w.SaveDeck(ctx, deck); err != nil {
			return fmt.Errorf("failed to save deck %s: %w", deck.ID, err)
		}
	}
	return nil
}

// formatSchemaValidationError formats a JSON Schema validation error into a readable message.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collectErrors func(*jsonschema.ValidationError)
	collectErrors = func(e *jsonschema.ValidationError) {
		if e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collectErrors(cause)
		}
	}

	collectErrors(err)

	if len(messages) == 0 {
		return fmt.Errorf("collection validation failed")
	}

	return fmt.Errorf("collection validation failed:\n    - %s", strings.Join(messages, "\n    - "))
}
