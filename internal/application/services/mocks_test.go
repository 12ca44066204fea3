package services

import (
	"context"

	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/values"
)

// MockCollection is an in-memory collection with injectable failures.
type MockCollection struct {
	Configs []*entities.DeckConfig
	Decks   []*entities.Deck

	ConfigsErr error
	DecksErr   error
	GetErr     error
	ParentsErr error

	Calls []string
}

func (m *MockCollection) AllDeckConfigs(_ context.Context) ([]*entities.DeckConfig, error) {
	m.Calls = append(m.Calls, "AllDeckConfigs")
	if m.ConfigsErr != nil {
		return nil, m.ConfigsErr
	}
	// Hand out copies so sorting cannot disturb the fixture
	out := make([]*entities.DeckConfig, len(m.Configs))
	for i, c := range m.Configs {
		cp := *c
		out[i] = &cp
	}
	return out, nil
}

func (m *MockCollection) AllDecks(_ context.Context) ([]*entities.Deck, error) {
	m.Calls = append(m.Calls, "AllDecks")
	if m.DecksErr != nil {
		return nil, m.DecksErr
	}
	return append([]*entities.Deck(nil), m.Decks...), nil
}

func (m *MockCollection) GetDeck(_ context.Context, id values.DeckID) (*entities.Deck, error) {
	m.Calls = append(m.Calls, "GetDeck")
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, d := range m.Decks {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (m *MockCollection) ParentDecks(_ context.Context, deck *entities.Deck) ([]*entities.Deck, error) {
	m.Calls = append(m.Calls, "ParentDecks")
	if m.ParentsErr != nil {
		return nil, m.ParentsErr
	}
	var parents []*entities.Deck
	for _, name := range deck.ParentNames() {
		for _, d := range m.Decks {
			if d.Name == name {
				parents = append(parents, d)
			}
		}
	}
	return parents, nil
}

// MockDefaults returns a fixed preset.
type MockDefaults struct {
	Config entities.DeckConfig
}

func (m MockDefaults) DefaultDeckConfig() entities.DeckConfig {
	return m.Config
}
