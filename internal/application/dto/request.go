// Package dto contains data transfer objects for application layer use cases.
package dto

import (
	"github.com/reglet-dev/deckconf/internal/domain/values"
)

// DeckConfigForUpdateRequest asks for everything the deck options screen
// needs to edit the presets of one deck.
type DeckConfigForUpdateRequest struct {
	Metadata RequestMetadata
	DeckID   values.DeckID
}

// RequestMetadata contains metadata for request tracking.
type RequestMetadata struct {
	// RequestID uniquely identifies this request
	RequestID string
}
