package dto

import (
	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/values"
)

// DeckConfigForUpdateResponse is the data for the deck options screen.
type DeckConfigForUpdateResponse struct {
	// AllConfig lists every preset sorted by name, with its use count
	AllConfig []ConfigWithExtra `json:"all_config" yaml:"all_config"`

	// CurrentDeck describes the deck whose options are being edited
	CurrentDeck CurrentDeck `json:"current_deck" yaml:"current_deck"`

	// Defaults is offered as the starting point for a new preset
	Defaults entities.DeckConfig `json:"defaults" yaml:"defaults"`

	// Metadata echoes the request
	Metadata ResponseMetadata `json:"-" yaml:"-"`
}

// ConfigWithExtra pairs a preset with the number of normal decks using it.
type ConfigWithExtra struct {
	Config   entities.DeckConfig `json:"config" yaml:"config"`
	UseCount uint32              `json:"use_count" yaml:"use_count"`
}

// CurrentDeck describes the deck being edited.
type CurrentDeck struct {
	// Name is the human-readable name ("A::B")
	Name string `json:"name" yaml:"name"`

	// ParentConfigIDs are the distinct presets used by ancestors, ascending
	ParentConfigIDs []values.DeckConfigID `json:"parent_config_ids" yaml:"parent_config_ids"`

	// ConfigID is the preset the deck currently uses
	ConfigID values.DeckConfigID `json:"config_id" yaml:"config_id"`
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// RequestID from the original request
	RequestID string
}
