package events

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/combat"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// Event type constants
const (
	TypeGameInitialized      = "game.initialized"
	TypeGameEnded            = "game.ended"
	TypeGamePhaseChanged     = "game.phase_changed"
	TypeTurnEnded            = "turn.ended"
	TypeEndOfTurn            = "turn.queue_exhausted"
	TypeUnitMoved            = "unit.moved"
	TypeUnitCreated          = "unit.created"
	TypeUnitDestroyed        = "unit.destroyed"
	TypeUnitSelected         = "unit.selected"
	TypeUnitDeselected       = "unit.deselected"
	TypeUnitBlink            = "unit.blink"
	TypeUnitFortified        = "unit.fortified"
	TypeCityFounded          = "city.founded"
	TypeCityCaptured         = "city.captured"
	TypeCityGrew             = "city.grew"
	TypeProductionCompleted  = "production.completed"
	TypeCombatResolved       = "combat.resolved"
	TypeTechnologyResearched = "tech.researched"
	TypeRevolutionStarted    = "government.revolution_started"
	TypeGovernmentChanged    = "government.changed"
	TypePlayerEliminated     = "player.eliminated"
)

// GameInitializedEvent is published once the game is set up and playing
type GameInitializedEvent struct {
	BaseEvent
	State Snapshot
}

func NewGameInitializedEvent(gameID string, state Snapshot) *GameInitializedEvent {
	return &GameInitializedEvent{
		BaseEvent: newBase(TypeGameInitialized, gameID, state.Turn, state.CurrentPlayerID),
		State:     state,
	}
}

// GameEndedEvent is published when a game ends. Winner is -1 for no winner.
type GameEndedEvent struct {
	BaseEvent
	Winner    int
	FinalTurn int
}

func NewGameEndedEvent(gameID string, winner, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID, finalTurn, winner),
		Winner:    winner,
		FinalTurn: finalTurn,
	}
}

// GamePhaseChangedEvent is published by the phase state machine
type GamePhaseChangedEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

func NewGamePhaseChangedEvent(gameID string, turn int, fromPhase, toPhase, reason string) *GamePhaseChangedEvent {
	return &GamePhaseChangedEvent{
		BaseEvent: newBase(TypeGamePhaseChanged, gameID, turn, -1),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}

// TurnEndedEvent is published on every player handoff
type TurnEndedEvent struct {
	BaseEvent
	PreviousPlayer int
	State          Snapshot
}

func NewTurnEndedEvent(gameID string, previousPlayer int, state Snapshot) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:      newBase(TypeTurnEnded, gameID, state.Turn, state.CurrentPlayerID),
		PreviousPlayer: previousPlayer,
		State:          state,
	}
}

// EndOfTurnEvent is published when the current player's unit queue runs dry
type EndOfTurnEvent struct {
	BaseEvent
}

func NewEndOfTurnEvent(gameID string, turn, playerID int) *EndOfTurnEvent {
	return &EndOfTurnEvent{BaseEvent: newBase(TypeEndOfTurn, gameID, turn, playerID)}
}

// UnitMovedEvent is published after a successful move
type UnitMovedEvent struct {
	BaseEvent
	Unit        core.Unit
	From        core.Position
	NewPosition core.Position
}

func NewUnitMovedEvent(gameID string, turn int, unit *core.Unit, from core.Position) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent:   newBase(TypeUnitMoved, gameID, turn, unit.Owner),
		Unit:        *unit,
		From:        from,
		NewPosition: unit.Pos,
	}
}

// UnitCreatedEvent is published when a unit enters play
type UnitCreatedEvent struct {
	BaseEvent
	Unit core.Unit
}

func NewUnitCreatedEvent(gameID string, turn int, unit *core.Unit) *UnitCreatedEvent {
	return &UnitCreatedEvent{
		BaseEvent: newBase(TypeUnitCreated, gameID, turn, unit.Owner),
		Unit:      *unit,
	}
}

// UnitDestroyedEvent is published when a unit is removed after combat.
// KilledBy is the ID of the opposing unit.
type UnitDestroyedEvent struct {
	BaseEvent
	Unit     core.Unit
	KilledBy int
}

func NewUnitDestroyedEvent(gameID string, turn int, unit *core.Unit, killedBy int) *UnitDestroyedEvent {
	return &UnitDestroyedEvent{
		BaseEvent: newBase(TypeUnitDestroyed, gameID, turn, unit.Owner),
		Unit:      *unit,
		KilledBy:  killedBy,
	}
}

// UnitSelectedEvent is published when the queue cursor lands on a unit
type UnitSelectedEvent struct {
	BaseEvent
	UnitID   int
	Position core.Position
}

func NewUnitSelectedEvent(gameID string, turn int, unit *core.Unit) *UnitSelectedEvent {
	return &UnitSelectedEvent{
		BaseEvent: newBase(TypeUnitSelected, gameID, turn, unit.Owner),
		UnitID:    unit.ID,
		Position:  unit.Pos,
	}
}

// UnitDeselectedEvent is published when the cursor is cleared
type UnitDeselectedEvent struct {
	BaseEvent
	UnitID int
}

func NewUnitDeselectedEvent(gameID string, turn, playerID, unitID int) *UnitDeselectedEvent {
	return &UnitDeselectedEvent{
		BaseEvent: newBase(TypeUnitDeselected, gameID, turn, playerID),
		UnitID:    unitID,
	}
}

// UnitBlinkEvent asks the presentation layer to highlight the selected unit
type UnitBlinkEvent struct {
	BaseEvent
	UnitID   int
	Position core.Position
}

func NewUnitBlinkEvent(gameID string, turn int, unit *core.Unit) *UnitBlinkEvent {
	return &UnitBlinkEvent{
		BaseEvent: newBase(TypeUnitBlink, gameID, turn, unit.Owner),
		UnitID:    unit.ID,
		Position:  unit.Pos,
	}
}

// UnitFortifiedEvent is published on fortify orders and on promotion to Fortified
type UnitFortifiedEvent struct {
	BaseEvent
	UnitID int
	State  core.UnitState
}

func NewUnitFortifiedEvent(gameID string, turn int, unit *core.Unit) *UnitFortifiedEvent {
	return &UnitFortifiedEvent{
		BaseEvent: newBase(TypeUnitFortified, gameID, turn, unit.Owner),
		UnitID:    unit.ID,
		State:     unit.State,
	}
}

// CityFoundedEvent is published when a settler founds a city
type CityFoundedEvent struct {
	BaseEvent
	City core.City
}

func NewCityFoundedEvent(gameID string, turn int, city *core.City) *CityFoundedEvent {
	return &CityFoundedEvent{
		BaseEvent: newBase(TypeCityFounded, gameID, turn, city.Owner),
		City:      *city.Clone(),
	}
}

// CityCapturedEvent is published when a unit walks into an undefended enemy city
type CityCapturedEvent struct {
	BaseEvent
	City          core.City
	PreviousOwner int
}

func NewCityCapturedEvent(gameID string, turn int, city *core.City, previousOwner int) *CityCapturedEvent {
	return &CityCapturedEvent{
		BaseEvent:     newBase(TypeCityCaptured, gameID, turn, city.Owner),
		City:          *city.Clone(),
		PreviousOwner: previousOwner,
	}
}

// CityGrewEvent is published when a city gains or loses population
type CityGrewEvent struct {
	BaseEvent
	CityID     int
	Population int
	Delta      int
}

func NewCityGrewEvent(gameID string, turn int, city *core.City, delta int) *CityGrewEvent {
	return &CityGrewEvent{
		BaseEvent:  newBase(TypeCityGrew, gameID, turn, city.Owner),
		CityID:     city.ID,
		Population: city.Population,
		Delta:      delta,
	}
}

// ProductionCompletedEvent is published when a city finishes an item.
// UnitID is set for units, -1 otherwise.
type ProductionCompletedEvent struct {
	BaseEvent
	CityID int
	Kind   core.ProductionKind
	Item   string
	UnitID int
}

func NewProductionCompletedEvent(gameID string, turn int, city *core.City, kind core.ProductionKind, item string, unitID int) *ProductionCompletedEvent {
	return &ProductionCompletedEvent{
		BaseEvent: newBase(TypeProductionCompleted, gameID, turn, city.Owner),
		CityID:    city.ID,
		Kind:      kind,
		Item:      item,
		UnitID:    unitID,
	}
}

// CombatResolvedEvent is published after every attack
type CombatResolvedEvent struct {
	BaseEvent
	AttackerID    int
	DefenderID    int
	AttackerOwner int
	DefenderOwner int
	Location      core.Position
	Result        combat.Result
}

func NewCombatResolvedEvent(gameID string, turn int, attacker, defender *core.Unit, result combat.Result) *CombatResolvedEvent {
	return &CombatResolvedEvent{
		BaseEvent:     newBase(TypeCombatResolved, gameID, turn, attacker.Owner),
		AttackerID:    attacker.ID,
		DefenderID:    defender.ID,
		AttackerOwner: attacker.Owner,
		DefenderOwner: defender.Owner,
		Location:      defender.Pos,
		Result:        result,
	}
}

// TechnologyResearchedEvent is published when a player learns a technology
type TechnologyResearchedEvent struct {
	BaseEvent
	Tech           catalog.TechID
	ScienceLeft    int
	KnownTechCount int
}

func NewTechnologyResearchedEvent(gameID string, turn int, player *core.Player, tech catalog.TechID) *TechnologyResearchedEvent {
	return &TechnologyResearchedEvent{
		BaseEvent:      newBase(TypeTechnologyResearched, gameID, turn, player.ID),
		Tech:           tech,
		ScienceLeft:    player.Science,
		KnownTechCount: len(player.Technologies),
	}
}

// RevolutionStartedEvent is published when a player falls into Anarchy
type RevolutionStartedEvent struct {
	BaseEvent
	Turns  int
	Target catalog.GovernmentID
}

func NewRevolutionStartedEvent(gameID string, turn int, player *core.Player) *RevolutionStartedEvent {
	return &RevolutionStartedEvent{
		BaseEvent: newBase(TypeRevolutionStarted, gameID, turn, player.ID),
		Turns:     player.RevolutionTurnsRemaining,
		Target:    player.PendingGovernment,
	}
}

// GovernmentChangedEvent is published when Anarchy ends in a new government
type GovernmentChangedEvent struct {
	BaseEvent
	From catalog.GovernmentID
	To   catalog.GovernmentID
}

func NewGovernmentChangedEvent(gameID string, turn, playerID int, from, to catalog.GovernmentID) *GovernmentChangedEvent {
	return &GovernmentChangedEvent{
		BaseEvent: newBase(TypeGovernmentChanged, gameID, turn, playerID),
		From:      from,
		To:        to,
	}
}

// PlayerEliminatedEvent is published when a player has no units and no cities
type PlayerEliminatedEvent struct {
	BaseEvent
}

func NewPlayerEliminatedEvent(gameID string, turn, playerID int) *PlayerEliminatedEvent {
	return &PlayerEliminatedEvent{BaseEvent: newBase(TypePlayerEliminated, gameID, turn, playerID)}
}
