package services

import (
	"context"

	"github.com/reglet-dev/deckconf/internal/application/dto"
	apperrors "github.com/reglet-dev/deckconf/internal/application/errors"
	"github.com/reglet-dev/deckconf/internal/domain/repositories"
	"github.com/reglet-dev/deckconf/internal/domain/services"
	"github.com/reglet-dev/deckconf/internal/domain/values"
)

// CurrentDeckResolver describes the deck being edited: its name, its preset
// and the presets in use above it in the tree.
type CurrentDeckResolver struct {
	decks repositories.DeckRepository
}

// NewCurrentDeckResolver creates a new current deck resolver.
func NewCurrentDeckResolver(decks repositories.DeckRepository) *CurrentDeckResolver {
	return &CurrentDeckResolver{decks: decks}
}

// Resolve looks up the deck and its ancestors.
//
// A missing deck and a filtered deck both yield a *apperrors.NotFoundError;
// in the filtered case it wraps entities.ErrFilteredDeck. Filtered ancestors
// are skipped.
func (r *CurrentDeckResolver) Resolve(ctx context.Context, id values.DeckID) (dto.CurrentDeck, error) {
	deck, err := r.decks.GetDeck(ctx, id)
	if err != nil {
		return dto.CurrentDeck{}, apperrors.NewStorageError("get deck", err)
	}
	if deck == nil {
		return dto.CurrentDeck{}, apperrors.NewNotFoundError("deck", id.String(), nil)
	}

	normal, err := deck.Normal()
	if err != nil {
		return dto.CurrentDeck{}, apperrors.NewNotFoundError("deck config for deck", id.String(), err)
	}

	parents, err := r.decks.ParentDecks(ctx, deck)
	if err != nil {
		return dto.CurrentDeck{}, apperrors.NewStorageError("list parent decks", err)
	}

	return dto.CurrentDeck{
		Name:            deck.HumanName(),
		ConfigID:        normal.ConfigID,
		ParentConfigIDs: services.SortedConfigIDs(services.ParentConfigIDs(parents)),
	}, nil
}
