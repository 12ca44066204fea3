// Package services contains application use cases.
package services

import (
	"context"

	"github.com/reglet-dev/deckconf/internal/application/dto"
	apperrors "github.com/reglet-dev/deckconf/internal/application/errors"
	"github.com/reglet-dev/deckconf/internal/domain/repositories"
	"github.com/reglet-dev/deckconf/internal/domain/services"
)

// ConfigAggregator lists every preset together with how many decks use it.
type ConfigAggregator struct {
	configs repositories.DeckConfigRepository
	decks   repositories.DeckRepository
}

// NewConfigAggregator creates a new config aggregator.
func NewConfigAggregator(configs repositories.DeckConfigRepository, decks repositories.DeckRepository) *ConfigAggregator {
	return &ConfigAggregator{
		configs: configs,
		decks:   decks,
	}
}

// AllConfigWithUseCounts returns all presets sorted by name, each with the
// number of normal decks referencing it (zero if unused).
func (a *ConfigAggregator) AllConfigWithUseCounts(ctx context.Context) ([]dto.ConfigWithExtra, error) {
	configs, err := a.configs.AllDeckConfigs(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("list deck configs", err)
	}
	services.SortDeckConfigsByName(configs)

	decks, err := a.decks.AllDecks(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("list decks", err)
	}
	counts := services.CountDeckConfigUses(decks)

	result := make([]dto.ConfigWithExtra, 0, len(configs))
	for _, conf := range configs {
		result = append(result, dto.ConfigWithExtra{
			Config:   *conf,
			UseCount: uint32(counts[conf.ID]), //nolint:gosec // G115: bounded by deck count
		})
	}
	return result, nil
}
