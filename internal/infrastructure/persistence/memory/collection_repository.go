// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/repositories"
	"github.com/reglet-dev/deckconf/internal/domain/services"
	"github.com/reglet-dev/deckconf/internal/domain/values"
)

// Ensure interface compliance
var _ repositories.CollectionRepository = (*CollectionRepository)(nil)

// CollectionRepository is an in-memory collection of decks and presets.
// Useful for testing and for serving a collection snapshot file.
type CollectionRepository struct {
	configs     map[values.DeckConfigID]*entities.DeckConfig
	decks       map[values.DeckID]*entities.Deck
	decksByName map[string]values.DeckID
	configOrder []values.DeckConfigID
	deckOrder   []values.DeckID
	mu          sync.RWMutex
}

// NewCollectionRepository creates a new empty in-memory collection.
func NewCollectionRepository() *CollectionRepository {
	return &CollectionRepository{
		configs:     make(map[values.DeckConfigID]*entities.DeckConfig),
		decks:       make(map[values.DeckID]*entities.Deck),
		decksByName: make(map[string]values.DeckID),
	}
}

// SaveDeckConfig adds or replaces a preset. Insertion order is kept as the
// storage order.
func (r *CollectionRepository) SaveDeckConfig(_ context.Context, conf *entities.DeckConfig) error {
	if err := conf.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[conf.ID]; !exists {
		r.configOrder = append(r.configOrder, conf.ID)
	}
	r.configs[conf.ID] = services.DeepCopyDeckConfig(conf)
	return nil
}

// SaveDeck adds or replaces a deck. Deck names must be unique.
func (r *CollectionRepository) SaveDeck(_ context.Context, deck *entities.Deck) error {
	if deck.Name == "" {
		return fmt.Errorf("deck %s: name is required", deck.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, taken := r.decksByName[deck.Name]; taken && owner != deck.ID {
		return fmt.Errorf("deck name %q already used by deck %s", deck.HumanName(), owner)
	}
	if prev, exists := r.decks[deck.ID]; exists {
		delete(r.decksByName, prev.Name)
	} else {
		r.deckOrder = append(r.deckOrder, deck.ID)
	}

	r.decks[deck.ID] = services.DeepCopyDeck(deck)
	r.decksByName[deck.Name] = deck.ID
	return nil
}

// AllDeckConfigs returns copies of every preset in insertion order.
func (r *CollectionRepository) AllDeckConfigs(_ context.Context) ([]*entities.DeckConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.DeckConfig, 0, len(r.configOrder))
	for _, id := range r.configOrder {
		out = append(out, services.DeepCopyDeckConfig(r.configs[id]))
	}
	return out, nil
}

// AllDecks returns copies of every deck in insertion order.
func (r *CollectionRepository) AllDecks(_ context.Context) ([]*entities.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Deck, 0, len(r.deckOrder))
	for _, id := range r.deckOrder {
		out = append(out, services.DeepCopyDeck(r.decks[id]))
	}
	return out, nil
}

// GetDeck returns a copy of the deck, or nil if it does not exist.
func (r *CollectionRepository) GetDeck(_ context.Context, id values.DeckID) (*entities.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	deck, ok := r.decks[id]
	if !ok {
		return nil, nil
	}
	return services.DeepCopyDeck(deck), nil
}

// ParentDecks resolves ancestors by name, nearest first.
func (r *CollectionRepository) ParentDecks(_ context.Context, deck *entities.Deck) ([]*entities.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var parents []*entities.Deck
	for _, name := range deck.ParentNames() {
		id, ok := r.decksByName[name]
		if !ok {
			continue
		}
		parents = append(parents, services.DeepCopyDeck(r.decks[id]))
	}
	return parents, nil
}
