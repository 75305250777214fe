// Package ai drives computer players. A turn is a synchronous, deterministic
// function of the world state and the injected RNG; it issues the same
// commands a human would and treats every rejected command as a cue to fall
// back to the next heuristic.
package ai

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CivSim/internal/config"
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/combat"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/rules"
)

// World is the read-only view of the game the AI inspects
type World interface {
	rules.Board
	CurrentTurn() int
	Player(id int) *core.Player
	Unit(id int) *core.Unit
	UnitsOf(playerID int) []*core.Unit
	CitiesOf(playerID int) []*core.City
	AllUnits() []*core.Unit
}

// Commander is the command surface the AI issues orders through
type Commander interface {
	MoveUnit(unitID int, target core.Position) bool
	FoundCity(unitID int, name string) bool
	AttackUnit(attackerID, defenderID int) *combat.Report
	FortifyUnit(unitID int) bool
	SetCityProduction(cityID int, kind core.ProductionKind, item string) bool
	SetCurrentResearch(playerID int, tech catalog.TechID) bool
	ResearchTechnology(playerID int, tech catalog.TechID) bool
	ChangeGovernment(playerID int, gov catalog.GovernmentID) bool
}

// TurnReport counts what an AI turn did
type TurnReport struct {
	PlayerID      int
	Moves         int
	CitiesFounded int
	Attacks       int
	Fortified     int
	ProductionSet int
	Researched    int
	Failed        int
}

// Player is the decision engine shared by all computer players
type Player struct {
	cfg    config.AIConfig
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewPlayer creates a decision engine. rng drives random walks.
func NewPlayer(cfg config.AIConfig, rng *rand.Rand, logger zerolog.Logger) *Player {
	return &Player{
		cfg:    cfg,
		rng:    rng,
		logger: logger.With().Str("component", "AI").Logger(),
	}
}

// turn carries the state of one AI turn
type turn struct {
	*Player
	w      World
	c      Commander
	pid    int
	number int
	report TurnReport
}

func (t *turn) early() bool { return t.number <= t.cfg.EarlyGameTurns }

// PlayTurn runs a full turn for playerID
func (p *Player) PlayTurn(w World, c Commander, playerID int) TurnReport {
	t := &turn{Player: p, w: w, c: c, pid: playerID, number: w.CurrentTurn()}
	t.report.PlayerID = playerID

	t.research()
	t.government()
	t.production()

	// Units created during this turn wait for the next one
	var ids []int
	for _, u := range w.UnitsOf(playerID) {
		ids = append(ids, u.ID)
	}
	for _, id := range ids {
		t.runUnit(id)
	}

	p.logger.Debug().
		Int("player_id", playerID).
		Int("turn", t.number).
		Int("moves", t.report.Moves).
		Int("cities_founded", t.report.CitiesFounded).
		Int("attacks", t.report.Attacks).
		Int("production_set", t.report.ProductionSet).
		Int("failed", t.report.Failed).
		Msg("AI turn complete")
	return t.report
}

func (t *turn) runUnit(id int) {
	for i := 0; i < t.cfg.MaxActionsPerUnit; i++ {
		u := t.w.Unit(id)
		if u == nil || u.Owner != t.pid || !u.Queueable() {
			return
		}
		var acted bool
		switch u.Spec().Role {
		case catalog.RoleSettler:
			acted = t.settle(u)
		case catalog.RoleMilitary:
			acted = t.soldier(u)
		default:
			acted = t.randomWalk(u)
		}
		if !acted {
			return
		}
	}
}
