package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level()).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("holes", e.Holes).
			Int("initial_beads", e.InitialBeads).
			Int("first_player", e.FirstPlayer)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Int("store_0", e.Stores[0]).
			Int("store_1", e.Stores[1]).
			Dur("duration", e.Duration).
			Int("final_turn", e.FinalTurn)

	case *events.MoveAppliedEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("player_id", e.PlayerID).
			Int("side", e.Action.Side).
			Int("hole", e.Action.Hole).
			Int("passes", e.Passes).
			Int("beads_sown", e.BeadsSown).
			Bool("ended_in_store", e.EndedInStore)

	case *events.MoveRejectedEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("player_id", e.PlayerID).
			Int("side", e.Action.Side).
			Int("hole", e.Action.Hole).
			Str("reason", e.Reason)

	case *events.TurnChangedEvent:
		logEvent.
			Int("turn", e.Turn).
			Int("from_player", e.FromPlayer).
			Int("to_player", e.ToPlayer)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	default:
		return zerolog.InfoLevel
	}
}
