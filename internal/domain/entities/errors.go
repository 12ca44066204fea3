package entities

import "errors"

// ErrFilteredDeck indicates an operation that needs a preset was given a
// filtered deck.
var ErrFilteredDeck = errors.New("deck is a filtered deck")
