package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/combat"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// Executor is the command surface of the game engine.
// This avoids importing the game package.
type Executor interface {
	MoveUnit(unitID int, target core.Position) bool
	FoundCity(unitID int, name string) bool
	AttackUnit(attackerID, defenderID int) *combat.Report
	FortifyUnit(unitID int) bool
	WakeUnit(unitID int) bool
	SleepUnit(unitID int) bool
	BuildRoad(unitID int) bool
	ResearchTechnology(playerID int, tech catalog.TechID) bool
	SetCityProduction(cityID int, kind core.ProductionKind, item string) bool
	StartRevolution(playerID int) bool
	ChangeGovernment(playerID int, gov catalog.GovernmentID) bool
	EndTurn() bool
}

// ErrRejected is recorded for a command the engine refused
var ErrRejected = errors.New("command rejected")

// Result summarizes one batch
type Result struct {
	Applied  int
	Rejected int
	Attacks  []combat.Report
	// Errors holds one entry per rejected command, in script order
	Errors []error
}

// CommandProcessor applies scripted commands in order
type CommandProcessor struct {
	exec   Executor
	logger zerolog.Logger
}

// NewCommandProcessor creates a new command processor
func NewCommandProcessor(exec Executor, logger zerolog.Logger) *CommandProcessor {
	return &CommandProcessor{
		exec:   exec,
		logger: logger.With().Str("component", "CommandProcessor").Logger(),
	}
}

// Process applies cmds in order. A rejected command is logged and counted
// and the batch continues; only context cancellation stops it early.
func (cp *CommandProcessor) Process(ctx context.Context, cmds []Command) (Result, error) {
	var res Result

	for i, cmd := range cmds {
		select {
		case <-ctx.Done():
			cp.logger.Warn().Err(ctx.Err()).Int("index", i).Msg("Command processing interrupted by context cancellation")
			return res, ctx.Err()
		default:
		}

		// Commands built in code skip Load, so check them here as well
		if err := cmd.Validate(); err != nil {
			res.Rejected++
			res.Errors = append(res.Errors, fmt.Errorf("command %d: %w", i, err))
			cp.logger.Warn().Err(err).Int("index", i).Str("op", string(cmd.Op)).Msg("Invalid command skipped")
			continue
		}

		cp.logger.Debug().Int("index", i).Str("op", string(cmd.Op)).Interface("command", cmd).Msg("Applying command")
		ok, report := cp.apply(cmd)
		if report != nil {
			res.Attacks = append(res.Attacks, *report)
		}
		if ok {
			res.Applied++
			continue
		}

		err := fmt.Errorf("command %d (%s): %w", i, cmd.Op, ErrRejected)
		res.Rejected++
		res.Errors = append(res.Errors, err)
		cp.logger.Warn().
			Int("index", i).
			Str("op", string(cmd.Op)).
			Int("unit_id", cmd.Unit).
			Int("city_id", cmd.City).
			Int("player_id", cmd.Player).
			Msg("Command rejected")
	}

	cp.logger.Info().Int("applied", res.Applied).Int("rejected", res.Rejected).Msg("Command batch complete")
	return res, nil
}

// Run applies a loaded script
func (cp *CommandProcessor) Run(ctx context.Context, s *Script) (Result, error) {
	cp.logger.Info().Str("script", s.Name).Int("commands", len(s.Commands)).Msg("Running script")
	return cp.Process(ctx, s.Commands)
}

func (cp *CommandProcessor) apply(cmd Command) (bool, *combat.Report) {
	e := cp.exec
	switch cmd.Op {
	case OpMove:
		if cmd.To == nil {
			return false, nil
		}
		return e.MoveUnit(cmd.Unit, cmd.To.Position()), nil
	case OpFound:
		return e.FoundCity(cmd.Unit, cmd.Name), nil
	case OpAttack:
		report := e.AttackUnit(cmd.Unit, cmd.Target)
		return report != nil, report
	case OpFortify:
		return e.FortifyUnit(cmd.Unit), nil
	case OpWake:
		return e.WakeUnit(cmd.Unit), nil
	case OpSleep:
		return e.SleepUnit(cmd.Unit), nil
	case OpRoad:
		return e.BuildRoad(cmd.Unit), nil
	case OpResearch:
		return e.ResearchTechnology(cmd.Player, catalog.TechID(cmd.Tech)), nil
	case OpProduce:
		kind, ok := core.ParseProductionKind(cmd.Kind)
		if !ok {
			return false, nil
		}
		return e.SetCityProduction(cmd.City, kind, cmd.Item), nil
	case OpRevolution:
		return e.StartRevolution(cmd.Player), nil
	case OpGovernment:
		return e.ChangeGovernment(cmd.Player, catalog.GovernmentID(cmd.Government)), nil
	case OpEndTurn:
		return e.EndTurn(), nil
	default:
		cp.logger.Warn().Str("op", string(cmd.Op)).Msg("Unhandled command op")
		return false, nil
	}
}
