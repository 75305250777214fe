// Package combat resolves a single attack between two units. Resolution is a
// pure function of its inputs; randomness comes from an injected Dice.
package combat

import (
	"github.com/mitchelldurbincs/CivSim/internal/config"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// Dice yields uniform values in [0,1). *rand.Rand satisfies it.
type Dice interface {
	Float64() float64
}

// Combatant is the combat-relevant snapshot of a unit
type Combatant struct {
	Attack    int
	Defense   int
	Health    int
	Firepower int
	Veteran   bool
	Fortified bool
}

// FromUnit builds a Combatant from a unit and its type table entry
func FromUnit(u *core.Unit) Combatant {
	spec := u.Spec()
	return Combatant{
		Attack:    spec.Attack,
		Defense:   spec.Defense,
		Health:    u.Health,
		Firepower: spec.Firepower,
		Veteran:   u.Veteran,
		Fortified: u.IsFortified(),
	}
}

// TerrainContext describes the defender's tile
type TerrainContext struct {
	DefenseBonus float64 // fraction added to defense, e.g. 0.5 on hills
	// WallsMultiplier applies when the defender stands in a walled city.
	// Values <= 1 mean no walls.
	WallsMultiplier float64
}

// Result is the outcome of one attack. Health deltas are <= 0.
type Result struct {
	AttackerSurvived    bool
	DefenderSurvived    bool
	AttackerHealthDelta int
	DefenderHealthDelta int
	Rounds              int
	AttackerStrength    float64
	DefenderStrength    float64
}

// Report is a resolved attack between two identified units
type Report struct {
	AttackerID int
	DefenderID int
	Location   core.Position
	Result
}

// Params are the tunable constants of the odds model
type Params struct {
	VeteranMultiplier   float64
	FortifiedMultiplier float64
	DamagePerRound      int
	MaxRounds           int // 0 means fight to the death
}

// ParamsFromConfig converts the combat config section
func ParamsFromConfig(c config.CombatConfig) Params {
	return Params{
		VeteranMultiplier:   c.VeteranMultiplier,
		FortifiedMultiplier: c.FortifiedMultiplier,
		DamagePerRound:      c.DamagePerRound,
		MaxRounds:           c.MaxRounds,
	}
}

// DefaultParams mirrors the configuration defaults
func DefaultParams() Params {
	return Params{VeteranMultiplier: 1.5, FortifiedMultiplier: 1.5, DamagePerRound: 1}
}

// Resolve runs an attack with DefaultParams
func Resolve(attacker, defender Combatant, ctx TerrainContext, dice Dice) Result {
	return DefaultParams().Resolve(attacker, defender, ctx, dice)
}

// AttackStrength is attack scaled by veterancy
func (p Params) AttackStrength(c Combatant) float64 {
	s := float64(c.Attack)
	if c.Veteran {
		s *= p.VeteranMultiplier
	}
	return s
}

// DefenseStrength is defense scaled by terrain, fortification, veterancy
// and city walls.
func (p Params) DefenseStrength(c Combatant, ctx TerrainContext) float64 {
	s := float64(c.Defense) * (1 + ctx.DefenseBonus)
	if c.Fortified {
		s *= p.FortifiedMultiplier
	}
	if c.Veteran {
		s *= p.VeteranMultiplier
	}
	if ctx.WallsMultiplier > 1 {
		s *= ctx.WallsMultiplier
	}
	return s
}

// Resolve fights rounds until one side is out of health or MaxRounds is
// reached. The attacker wins each round with probability A/(A+D); the
// loser of a round takes DamagePerRound times the winner's firepower.
func (p Params) Resolve(attacker, defender Combatant, ctx TerrainContext, dice Dice) Result {
	a := p.AttackStrength(attacker)
	d := p.DefenseStrength(defender, ctx)
	res := Result{AttackerStrength: a, DefenderStrength: d}

	ah, dh := attacker.Health, defender.Health
	if d <= 0 {
		// An undefended unit is overrun without a fight
		dh = 0
	} else {
		odds := a / (a + d)
		dmg := p.DamagePerRound
		if dmg < 1 {
			dmg = 1
		}
		for ah > 0 && dh > 0 && (p.MaxRounds == 0 || res.Rounds < p.MaxRounds) {
			if dice.Float64() < odds {
				dh -= dmg * firepower(attacker)
			} else {
				ah -= dmg * firepower(defender)
			}
			res.Rounds++
		}
	}

	if ah < 0 {
		ah = 0
	}
	if dh < 0 {
		dh = 0
	}
	res.AttackerSurvived = ah > 0
	res.DefenderSurvived = dh > 0
	res.AttackerHealthDelta = ah - attacker.Health
	res.DefenderHealthDelta = dh - defender.Health
	return res
}

func firepower(c Combatant) int {
	if c.Firepower < 1 {
		return 1
	}
	return c.Firepower
}
