package services

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/reglet-dev/deckconf/internal/application/errors"
	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeCollection() *MockCollection {
	return &MockCollection{
		Decks: []*entities.Deck{
			entities.NewNormalDeck(1, "Default", 1),
			entities.NewNormalDeck(2, "Lang", 5),
			entities.NewNormalDeck(3, "Lang::Japanese", 5),
			entities.NewNormalDeck(4, "Lang::Japanese::Kanji", 6),
			entities.NewNormalDeck(5, "Lang::Japanese::Kanji::N5", 7),
			entities.NewFilteredDeck(6, "Cram", "deck:Lang"),
			entities.NewNormalDeck(7, "Orphan::Child", 1),
		},
	}
}

func TestCurrentDeckResolver_Resolve(t *testing.T) {
	tests := []struct {
		name        string
		deckID      values.DeckID
		wantName    string
		wantConfig  values.DeckConfigID
		wantParents []values.DeckConfigID
	}{
		{
			name:        "root deck has no parent configs",
			deckID:      1,
			wantName:    "Default",
			wantConfig:  1,
			wantParents: []values.DeckConfigID{},
		},
		{
			name:        "repeated ancestor configs collapse",
			deckID:      5,
			wantName:    "Lang::Japanese::Kanji::N5",
			wantConfig:  7,
			wantParents: []values.DeckConfigID{5, 6},
		},
		{
			name:        "missing intermediate ancestor is skipped",
			deckID:      7,
			wantName:    "Orphan::Child",
			wantConfig:  1,
			wantParents: []values.DeckConfigID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewCurrentDeckResolver(treeCollection())

			got, err := resolver.Resolve(context.Background(), tt.deckID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantConfig, got.ConfigID)
			assert.Equal(t, tt.wantParents, got.ParentConfigIDs)
		})
	}
}

func TestCurrentDeckResolver_FilteredAncestorSkipped(t *testing.T) {
	coll := &MockCollection{
		Decks: []*entities.Deck{
			entities.NewFilteredDeck(1, "Top", "is:due"),
			entities.NewNormalDeck(2, "Top::Mid", 3),
			entities.NewNormalDeck(3, "Top::Mid::Leaf", 4),
		},
	}
	resolver := NewCurrentDeckResolver(coll)

	got, err := resolver.Resolve(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []values.DeckConfigID{3}, got.ParentConfigIDs)
}

func TestCurrentDeckResolver_DeckNotFound(t *testing.T) {
	coll := treeCollection()
	resolver := NewCurrentDeckResolver(coll)

	_, err := resolver.Resolve(context.Background(), 999)

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "deck", notFound.Resource)
	assert.Equal(t, "999", notFound.ID)
	assert.Equal(t, []string{"GetDeck"}, coll.Calls)
}

func TestCurrentDeckResolver_FilteredDeck(t *testing.T) {
	coll := treeCollection()
	resolver := NewCurrentDeckResolver(coll)

	_, err := resolver.Resolve(context.Background(), 6)

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, err, entities.ErrFilteredDeck)
	assert.Equal(t, []string{"GetDeck"}, coll.Calls)
}

func TestCurrentDeckResolver_StorageFailures(t *testing.T) {
	boom := errors.New("database is locked")

	t.Run("get deck", func(t *testing.T) {
		coll := treeCollection()
		coll.GetErr = boom

		_, err := NewCurrentDeckResolver(coll).Resolve(context.Background(), 1)

		var storageErr *apperrors.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "get deck", storageErr.Operation)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("parent decks", func(t *testing.T) {
		coll := treeCollection()
		coll.ParentsErr = boom

		_, err := NewCurrentDeckResolver(coll).Resolve(context.Background(), 4)

		var storageErr *apperrors.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "list parent decks", storageErr.Operation)
	})
}
