package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/values"
	"github.com/reglet-dev/deckconf/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCollection = `
version: 1.2.0
deck_configs:
  - id: 2
    name: Zen
    config:
      new_per_day: 5
      learn_steps: [2, 20, 60]
  - id: 1
    name: Basic
decks:
  - id: 1
    name: Default
    config_id: 1
  - id: 2
    name: Lang
    config_id: 2
  - id: 3
    name: Lang::Japanese
    config_id: 1
  - id: 4
    name: Due today
    filtered:
      search: "is:due"
      reschedule: false
`

func newLoader(t *testing.T) *CollectionLoader {
	t.Helper()
	loader, err := NewCollectionLoader()
	require.NoError(t, err)
	return loader
}

func TestLoadCollectionFromReader_Valid(t *testing.T) {
	snapshot, err := newLoader(t).LoadCollectionFromReader(strings.NewReader(validCollection))
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", snapshot.Version)
	require.Len(t, snapshot.Configs, 2)
	zen := snapshot.Configs[0]
	assert.Equal(t, values.DeckConfigID(2), zen.ID)
	assert.Equal(t, uint32(5), zen.Settings.NewPerDay)
	assert.Equal(t, []float32{2, 20, 60}, zen.Settings.LearnSteps)
	// Unspecified settings fall back to defaults
	assert.Equal(t, uint32(200), zen.Settings.ReviewsPerDay)
	assert.Equal(t, entities.DefaultDeckConfig().Settings, snapshot.Configs[1].Settings)

	require.Len(t, snapshot.Decks, 4)
	assert.Equal(t, "Lang\x1fJapanese", snapshot.Decks[2].Name)
	normal, err := snapshot.Decks[2].Normal()
	require.NoError(t, err)
	assert.Equal(t, values.DeckConfigID(1), normal.ConfigID)

	filtered, ok := snapshot.Decks[3].Kind.(entities.FilteredDeck)
	require.True(t, ok)
	assert.Equal(t, "is:due", filtered.Search)
	assert.Equal(t, uint32(100), filtered.Limit)
	assert.False(t, filtered.Reschedule)
}

func TestLoadCollectionFromReader_InvalidYAML(t *testing.T) {
	_, err := newLoader(t).LoadCollectionFromReader(strings.NewReader(`invalid yaml: [[[`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestLoadCollectionFromReader_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing version",
			yaml: "decks: []\n",
		},
		{
			name: "deck without config or filter",
			yaml: "version: 1.0.0\ndecks:\n  - id: 1\n    name: Default\n",
		},
		{
			name: "deck with both config and filter",
			yaml: "version: 1.0.0\ndecks:\n  - id: 1\n    name: X\n    config_id: 1\n    filtered:\n      search: a\n",
		},
		{
			name: "unknown field",
			yaml: "version: 1.0.0\ncolour: blue\n",
		},
		{
			name: "reserved config id",
			yaml: "version: 1.0.0\ndeck_configs:\n  - id: 0\n    name: Default\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).LoadCollectionFromReader(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "collection validation failed")
		})
	}
}

func TestLoadCollectionFromReader_SchemaErrorLocation(t *testing.T) {
	input := "version: 1.0.0\ndecks:\n  - id: 1\n    name: Default\n    config_id: 1\n  - id: 0\n    name: Broken\n    config_id: 1\n"

	_, err := newLoader(t).LoadCollectionFromReader(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collection validation failed")
	assert.Contains(t, err.Error(), "/decks/1/id")
}

func TestLoader_ValidateSchemaAcceptsWholeNumbers(t *testing.T) {
	// YAML integers reach the validator as JSON numbers
	require.NoError(t, newLoader(t).validateSchema([]byte("version: 1.0.0\ndeck_configs:\n  - id: 12\n    name: Basic\n    mtime_secs: 1700000000\n")))
}

func TestLoadCollectionFromReader_Version(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr string
	}{
		{"supported minor", "1.9.3", ""},
		{"unsupported major", "2.0.0", "unsupported collection version"},
		{"not semver", "banana", "invalid collection version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "version: \"" + tt.version + "\"\n"
			_, err := newLoader(t).LoadCollectionFromReader(strings.NewReader(doc))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCollection_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validCollection), 0o600))

	snapshot, err := newLoader(t).LoadCollection(path)
	require.NoError(t, err)
	assert.Len(t, snapshot.Decks, 4)

	_, err = newLoader(t).LoadCollection(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCollectionSnapshot_Seed(t *testing.T) {
	snapshot, err := newLoader(t).LoadCollectionFromReader(strings.NewReader(validCollection))
	require.NoError(t, err)

	repo := memory.NewCollectionRepository()
	ctx := context.Background()
	require.NoError(t, snapshot.Seed(ctx, repo))

	configs, err := repo.AllDeckConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, configs, 2)

	deck, err := repo.GetDeck(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, deck)
	assert.Equal(t, "Lang::Japanese", deck.HumanName())
}

func TestCollectionSnapshot_SeedStopsOnDuplicateName(t *testing.T) {
	doc := `
version: 1.0.0
decks:
  - id: 1
    name: Default
    config_id: 1
  - id: 2
    name: Default
    config_id: 1
`
	snapshot, err := newLoader(t).LoadCollectionFromReader(strings.NewReader(doc))
	require.NoError(t, err)

	err = snapshot.Seed(context.Background(), memory.NewCollectionRepository())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save deck 2")
}
