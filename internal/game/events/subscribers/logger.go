package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CivSim/internal/game/events"
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
	meta := event.Meta()
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Int("turn", meta.Turn).
		Int("player_id", meta.PlayerID).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)
	if ls.logLevel == zerolog.NoLevel {
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameInitializedEvent:
		logEvent.
			Int("num_players", len(e.State.Players)).
			Int("map_width", e.State.Width).
			Int("map_height", e.State.Height).
			Int("units", len(e.State.Units))

	case *events.GameEndedEvent:
		logEvent.Int("winner", e.Winner)

	case *events.GamePhaseChangedEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)

	case *events.TurnEndedEvent:
		logEvent.
			Int("previous_player", e.PreviousPlayer).
			Int("units", len(e.State.Units)).
			Int("cities", len(e.State.Cities))

	case *events.UnitMovedEvent:
		logEvent.
			Int("unit_id", e.Unit.ID).
			Int("from_x", e.From.X).
			Int("from_y", e.From.Y).
			Int("to_x", e.NewPosition.X).
			Int("to_y", e.NewPosition.Y).
			Int("movement_left", e.Unit.MovementPoints)

	case *events.UnitCreatedEvent:
		logEvent.
			Int("unit_id", e.Unit.ID).
			Str("unit_type", string(e.Unit.Type)).
			Stringer("position", e.Unit.Pos)

	case *events.UnitDestroyedEvent:
		logEvent.
			Int("unit_id", e.Unit.ID).
			Str("unit_type", string(e.Unit.Type)).
			Int("killed_by", e.KilledBy)

	case *events.UnitFortifiedEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Stringer("state", e.State)

	case *events.CityFoundedEvent:
		logEvent.
			Int("city_id", e.City.ID).
			Str("city", e.City.Name).
			Stringer("position", e.City.Pos)

	case *events.CityCapturedEvent:
		logEvent.
			Int("city_id", e.City.ID).
			Str("city", e.City.Name).
			Int("previous_owner", e.PreviousOwner)

	case *events.CityGrewEvent:
		logEvent.
			Int("city_id", e.CityID).
			Int("population", e.Population).
			Int("delta", e.Delta)

	case *events.ProductionCompletedEvent:
		logEvent.
			Int("city_id", e.CityID).
			Stringer("kind", e.Kind).
			Str("item", e.Item)

	case *events.CombatResolvedEvent:
		logEvent.
			Int("attacker_id", e.AttackerID).
			Int("defender_id", e.DefenderID).
			Int("location_x", e.Location.X).
			Int("location_y", e.Location.Y).
			Int("attacker_delta", e.Result.AttackerHealthDelta).
			Int("defender_delta", e.Result.DefenderHealthDelta).
			Bool("attacker_survived", e.Result.AttackerSurvived).
			Bool("defender_survived", e.Result.DefenderSurvived).
			Int("rounds", e.Result.Rounds)

	case *events.TechnologyResearchedEvent:
		logEvent.
			Str("tech", string(e.Tech)).
			Int("science_left", e.ScienceLeft)

	case *events.RevolutionStartedEvent:
		logEvent.
			Int("turns", e.Turns).
			Str("target", string(e.Target))

	case *events.GovernmentChangedEvent:
		logEvent.
			Str("from", string(e.From)).
			Str("to", string(e.To))
	}

	// Snapshots are large; only dev mode dumps the whole payload
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
