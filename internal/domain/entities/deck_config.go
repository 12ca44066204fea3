// Package entities contains domain entities for the deck options domain model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"fmt"
	"strings"

	"github.com/reglet-dev/deckconf/internal/domain/values"
)

// DeckConfig is a named preset of scheduling options shared by one or more
// normal decks. The collection owns the settings payload; this module only
// reads it and passes it through.
type DeckConfig struct {
	Name      string              `json:"name" yaml:"name"`
	Settings  DeckConfigSettings  `json:"config" yaml:"config"`
	ID        values.DeckConfigID `json:"id" yaml:"id"`
	MtimeSecs int64               `json:"mtime_secs" yaml:"mtime_secs"`
	Usn       int32               `json:"usn" yaml:"usn"`
}

// NewPolicy controls how new cards are inserted into the queue.
type NewPolicy string

const (
	// NewCardInsertDue shows new cards in the order they were added
	NewCardInsertDue NewPolicy = "due"
	// NewCardInsertRandom shuffles new cards
	NewCardInsertRandom NewPolicy = "random"
)

// LeechAction controls what happens when a card becomes a leech.
type LeechAction string

const (
	// LeechActionSuspend suspends the card
	LeechActionSuspend LeechAction = "suspend"
	// LeechActionTagOnly only tags the note
	LeechActionTagOnly LeechAction = "tag_only"
)

// DeckConfigSettings holds the scheduling options of a preset.
// Step lengths are expressed in minutes, intervals in days.
type DeckConfigSettings struct {
	NewCardInsertOrder NewPolicy   `json:"new_card_insert_order" yaml:"new_card_insert_order"`
	LeechAction        LeechAction `json:"leech_action" yaml:"leech_action"`

	LearnSteps   []float32 `json:"learn_steps" yaml:"learn_steps"`
	RelearnSteps []float32 `json:"relearn_steps" yaml:"relearn_steps"`

	NewPerDay              uint32 `json:"new_per_day" yaml:"new_per_day"`
	ReviewsPerDay          uint32 `json:"reviews_per_day" yaml:"reviews_per_day"`
	GraduatingIntervalGood uint32 `json:"graduating_interval_good" yaml:"graduating_interval_good"`
	GraduatingIntervalEasy uint32 `json:"graduating_interval_easy" yaml:"graduating_interval_easy"`
	MaximumReviewInterval  uint32 `json:"maximum_review_interval" yaml:"maximum_review_interval"`
	MinimumLapseInterval   uint32 `json:"minimum_lapse_interval" yaml:"minimum_lapse_interval"`
	LeechThreshold         uint32 `json:"leech_threshold" yaml:"leech_threshold"`
	CapAnswerTimeToSecs    uint32 `json:"cap_answer_time_to_secs" yaml:"cap_answer_time_to_secs"`
	VisibleTimerSecs       uint32 `json:"visible_timer_secs" yaml:"visible_timer_secs"`

	InitialEase        float32 `json:"initial_ease" yaml:"initial_ease"`
	EasyMultiplier     float32 `json:"easy_multiplier" yaml:"easy_multiplier"`
	HardMultiplier     float32 `json:"hard_multiplier" yaml:"hard_multiplier"`
	LapseMultiplier    float32 `json:"lapse_multiplier" yaml:"lapse_multiplier"`
	IntervalMultiplier float32 `json:"interval_multiplier" yaml:"interval_multiplier"`

	DisableAutoplay                 bool `json:"disable_autoplay" yaml:"disable_autoplay"`
	SkipQuestionWhenReplayingAnswer bool `json:"skip_question_when_replaying_answer" yaml:"skip_question_when_replaying_answer"`
	BuryNew                         bool `json:"bury_new" yaml:"bury_new"`
	BuryReviews                     bool `json:"bury_reviews" yaml:"bury_reviews"`
}

// DefaultDeckConfig returns the built-in preset offered when the user adds
// a new preset. It has the zero id and is never persisted.
func DefaultDeckConfig() DeckConfig {
	return DeckConfig{
		ID:   0,
		Name: "Default",
		Settings: DeckConfigSettings{
			LearnSteps:             []float32{1, 10},
			RelearnSteps:           []float32{10},
			NewPerDay:              20,
			ReviewsPerDay:          200,
			GraduatingIntervalGood: 1,
			GraduatingIntervalEasy: 4,
			MaximumReviewInterval:  36_500,
			MinimumLapseInterval:   1,
			LeechThreshold:         8,
			CapAnswerTimeToSecs:    60,
			InitialEase:            2.5,
			EasyMultiplier:         1.3,
			HardMultiplier:         1.2,
			LapseMultiplier:        0,
			IntervalMultiplier:     1,
			NewCardInsertOrder:     NewCardInsertDue,
			LeechAction:            LeechActionTagOnly,
		},
	}
}

// Validate checks the structural invariants of a stored preset.
func (c *DeckConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("deck config %s: name is required", c.ID)
	}
	if c.ID.IsZero() {
		return fmt.Errorf("deck config %q: id 0 is reserved for defaults", c.Name)
	}
	return nil
}
