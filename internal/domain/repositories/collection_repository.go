// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"

	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/values"
)

// DeckConfigRepository provides read access to deck option presets.
type DeckConfigRepository interface {
	// AllDeckConfigs returns every preset in storage order.
	AllDeckConfigs(ctx context.Context) ([]*entities.DeckConfig, error)
}

// DeckRepository provides read access to the deck tree.
type DeckRepository interface {
	// AllDecks returns every deck, normal and filtered.
	AllDecks(ctx context.Context) ([]*entities.Deck, error)

	// GetDeck returns the deck with the given id, or nil if there is none.
	GetDeck(ctx context.Context, id values.DeckID) (*entities.Deck, error)

	// ParentDecks returns the ancestors of deck, nearest first. Ancestors
	// missing from storage are omitted.
	ParentDecks(ctx context.Context, deck *entities.Deck) ([]*entities.Deck, error)
}

// CollectionRepository is the read side of a collection used by the deck
// options screen.
type CollectionRepository interface {
	DeckConfigRepository
	DeckRepository
}

// CollectionWriter stores presets and decks. It is used to seed a
// collection from a snapshot, never by the deck options query.
type CollectionWriter interface {
	SaveDeckConfig(ctx context.Context, conf *entities.DeckConfig) error
	SaveDeck(ctx context.Context, deck *entities.Deck) error
}
