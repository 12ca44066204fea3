package entities

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/deckconf/internal/domain/values"
)

// DeckNameSeparator joins the components of a deck's native name.
const DeckNameSeparator = "\x1f"

// HumanNameSeparator joins the components of a deck's display name.
const HumanNameSeparator = "::"

// Deck is a node in the collection's deck tree.
//
// The hierarchy is encoded in the name: a deck named "A\x1fB\x1fC" is a child
// of "A\x1fB", which is a child of "A".
type Deck struct {
	Kind      DeckKind
	Name      string
	ID        values.DeckID
	MtimeSecs int64
	Usn       int32
}

// DeckKind is the variant part of a deck. It is implemented only by
// NormalDeck and FilteredDeck.
type DeckKind interface {
	deckKind()
}

// NormalDeck is a deck that holds cards directly and uses a preset.
type NormalDeck struct {
	ConfigID values.DeckConfigID
}

// FilteredDeck gathers cards from other decks by search and has no preset.
type FilteredDeck struct {
	Search     string
	Limit      uint32
	Reschedule bool
}

func (NormalDeck) deckKind()   {}
func (FilteredDeck) deckKind() {}

// NewNormalDeck creates a normal deck from a display or native name.
func NewNormalDeck(id values.DeckID, name string, configID values.DeckConfigID) *Deck {
	return &Deck{
		ID:   id,
		Name: NativeDeckName(name),
		Kind: NormalDeck{ConfigID: configID},
	}
}

// NewFilteredDeck creates a filtered deck from a display or native name.
func NewFilteredDeck(id values.DeckID, name, search string) *Deck {
	return &Deck{
		ID:   id,
		Name: NativeDeckName(name),
		Kind: FilteredDeck{Search: search, Limit: 100, Reschedule: true},
	}
}

// Normal returns the normal variant of the deck, or ErrFilteredDeck.
func (d *Deck) Normal() (NormalDeck, error) {
	if normal, ok := d.Kind.(NormalDeck); ok {
		return normal, nil
	}
	return NormalDeck{}, fmt.Errorf("deck %s: %w", d.ID, ErrFilteredDeck)
}

// HumanName returns the name as shown to users, with "::" between levels.
func (d *Deck) HumanName() string {
	return strings.ReplaceAll(d.Name, DeckNameSeparator, HumanNameSeparator)
}

// Components returns the individual levels of the deck's name.
func (d *Deck) Components() []string {
	return strings.Split(d.Name, DeckNameSeparator)
}

// ParentNames returns the native names of all ancestors, nearest first.
func (d *Deck) ParentNames() []string {
	components := d.Components()
	parents := make([]string, 0, len(components)-1)
	for i := len(components) - 1; i > 0; i-- {
		parents = append(parents, strings.Join(components[:i], DeckNameSeparator))
	}
	return parents
}

// NativeDeckName converts a display name ("A::B") into native form. Empty
// components are dropped and surrounding whitespace trimmed.
func NativeDeckName(name string) string {
	parts := strings.Split(strings.ReplaceAll(name, HumanNameSeparator, DeckNameSeparator), DeckNameSeparator)
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, DeckNameSeparator)
}
