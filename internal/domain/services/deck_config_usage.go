// Package services contains domain services that encapsulate business logic
// spanning multiple entities. These services are stateless and pure.
package services

import (
	"slices"
	"strings"

	"github.com/reglet-dev/deckconf/internal/domain/entities"
	"github.com/reglet-dev/deckconf/internal/domain/values"
)

// SortDeckConfigsByName sorts presets ascending by name in place.
// Comparison is byte-wise and locale independent; equal names keep their
// storage order.
func SortDeckConfigsByName(configs []*entities.DeckConfig) {
	slices.SortStableFunc(configs, func(a, b *entities.DeckConfig) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// CountDeckConfigUses counts how many normal decks reference each preset.
//
// Filtered decks are skipped. A deck pointing at a preset that no longer
// exists is still counted under that id; callers only look up ids they have.
func CountDeckConfigUses(decks []*entities.Deck) map[values.DeckConfigID]int {
	counts := make(map[values.DeckConfigID]int)
	for _, deck := range decks {
		normal, err := deck.Normal()
		if err != nil {
			continue
		}
		counts[normal.ConfigID]++
	}
	return counts
}

// ParentConfigIDs returns the distinct presets used by the given ancestors.
// Filtered ancestors are ignored.
func ParentConfigIDs(parents []*entities.Deck) map[values.DeckConfigID]struct{} {
	ids := make(map[values.DeckConfigID]struct{}, len(parents))
	for _, parent := range parents {
		normal, err := parent.Normal()
		if err != nil {
			continue
		}
		ids[normal.ConfigID] = struct{}{}
	}
	return ids
}

// SortedConfigIDs flattens an id set into ascending order.
func SortedConfigIDs(set map[values.DeckConfigID]struct{}) []values.DeckConfigID {
	ids := make([]values.DeckConfigID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
