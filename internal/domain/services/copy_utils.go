package services

import (
	"github.com/reglet-dev/deckconf/internal/domain/entities"
)

// ===== DEEP COPY UTILITIES =====
//
// Repositories hand out copies so callers can never reach stored state.

// DeepCopyDeckConfig creates a complete deep copy of a preset.
func DeepCopyDeckConfig(original *entities.DeckConfig) *entities.DeckConfig {
	if original == nil {
		return nil
	}

	cp := *original
	cp.Settings.LearnSteps = CopyStepSlice(original.Settings.LearnSteps)
	cp.Settings.RelearnSteps = CopyStepSlice(original.Settings.RelearnSteps)
	return &cp
}

// DeepCopyDeck creates a copy of a deck. Deck kinds are plain values, so a
// struct copy is already independent.
func DeepCopyDeck(original *entities.Deck) *entities.Deck {
	if original == nil {
		return nil
	}

	cp := *original
	return &cp
}

// CopyStepSlice creates a deep copy of a learning step slice.
func CopyStepSlice(src []float32) []float32 {
	if src == nil {
		return nil
	}
	dst := make([]float32, len(src))
	copy(dst, src)
	return dst
}
