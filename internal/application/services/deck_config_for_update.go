package services

import (
	"context"
	"log/slog"

	"github.com/reglet-dev/deckconf/internal/application/dto"
	"github.com/reglet-dev/deckconf/internal/application/ports"
)

// DeckConfigForUpdateUseCase gathers the information required by the deck
// options screen. It only reads from the collection.
type DeckConfigForUpdateUseCase struct {
	aggregator *ConfigAggregator
	resolver   *CurrentDeckResolver
	defaults   ports.DefaultsProvider
	logger     *slog.Logger
}

// NewDeckConfigForUpdateUseCase creates a new deck options use case.
func NewDeckConfigForUpdateUseCase(
	aggregator *ConfigAggregator,
	resolver *CurrentDeckResolver,
	defaults ports.DefaultsProvider,
	logger *slog.Logger,
) *DeckConfigForUpdateUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &DeckConfigForUpdateUseCase{
		aggregator: aggregator,
		resolver:   resolver,
		defaults:   defaults,
		logger:     logger,
	}
}

// Execute builds the response. Any failure aborts the whole request.
func (uc *DeckConfigForUpdateUseCase) Execute(ctx context.Context, req dto.DeckConfigForUpdateRequest) (*dto.DeckConfigForUpdateResponse, error) {
	uc.logger.Debug("loading deck options", "deck_id", req.DeckID, "request_id", req.Metadata.RequestID)

	allConfig, err := uc.aggregator.AllConfigWithUseCounts(ctx)
	if err != nil {
		return nil, err
	}

	current, err := uc.resolver.Resolve(ctx, req.DeckID)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("deck options loaded",
		"deck", current.Name,
		"configs", len(allConfig),
		"parent_configs", len(current.ParentConfigIDs))

	return &dto.DeckConfigForUpdateResponse{
		AllConfig:   allConfig,
		CurrentDeck: current,
		Defaults:    uc.defaults.DefaultDeckConfig(),
		Metadata: dto.ResponseMetadata{
			RequestID: req.Metadata.RequestID,
		},
	}, nil
}
