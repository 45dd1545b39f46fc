// Package subscribers contains ready-made event bus subscribers.
package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/blokus-rl/blokus-engine/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	eventTypeFilter map[string]bool // if non-nil, only log these event types
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:     id,
		logger: logger.With().Str("subscriber", "event_logger").Logger(),
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter sets which event types to log (empty means log all)
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

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.Debug().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.Int("rows", e.Rows).Int("cols", e.Cols).Int("players", e.NumPlayers)
	case *events.PiecePlacedEvent:
		logEvent.Int("player", e.Player).Str("piece", e.PieceName).Int("action", e.Action)
	case *events.PlayerPassedEvent:
		logEvent.Int("player", e.Player)
	case *events.PlayerFinishedEvent:
		logEvent.Int("player", e.Player).Int("score", e.Score)
	case *events.GameEndedEvent:
		logEvent.Int("winner", e.Winner).Interface("scores", e.Scores)
	}

	logEvent.Msg("Game event")
}
