package core

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
)

// UnitState is the fortification/activity state of a unit
type UnitState int

const (
	UnitActive UnitState = iota
	UnitFortifying
	UnitFortified
	UnitSleeping
	UnitBuildingRoad
)

func (s UnitState) String() string {
	switch s {
	case UnitActive:
		return "Active"
	case UnitFortifying:
		return "Fortifying"
	case UnitFortified:
		return "Fortified"
	case UnitSleeping:
		return "Sleeping"
	case UnitBuildingRoad:
		return "BuildingRoad"
	default:
		return "Unknown"
	}
}

// Unit is a single piece on the map.
// Invariant: 0 <= MovementPoints <= MaxMovementPoints.
type Unit struct {
	ID                 int
	Owner              int
	Type               catalog.UnitType
	Pos                Position
	MovementPoints     int
	MaxMovementPoints  int
	Health             int
	MaxHealth          int
	Experience         int
	Veteran            bool
	State              UnitState
	RoadTurnsRemaining int
}

// NewUnit creates a unit at full movement and health
func NewUnit(id, owner int, spec catalog.UnitSpec, pos Position) *Unit {
	return &Unit{
		ID:                id,
		Owner:             owner,
		Type:              spec.ID,
		Pos:               pos,
		MovementPoints:    spec.Movement,
		MaxMovementPoints: spec.Movement,
		Health:            spec.Health,
		MaxHealth:         spec.Health,
		State:             UnitActive,
	}
}

// Spec returns the unit type's table entry
func (u *Unit) Spec() catalog.UnitSpec { return catalog.MustUnit(u.Type) }

func (u *Unit) IsAlive() bool { return u.Health > 0 }

// Queueable reports whether the unit belongs in the command queue
func (u *Unit) Queueable() bool {
	return u.State == UnitActive && u.MovementPoints > 0
}

// SpendMovement deducts n points, clamping at zero
func (u *Unit) SpendMovement(n int) {
	u.MovementPoints -= n
	if u.MovementPoints < 0 {
		u.MovementPoints = 0
	}
}

func (u *Unit) RestoreMovement() { u.MovementPoints = u.MaxMovementPoints }

// Heal adds n health up to the maximum
func (u *Unit) Heal(n int) {
	u.Health += n
	if u.Health > u.MaxHealth {
		u.Health = u.MaxHealth
	}
}

// Fortify starts fortification; the unit forfeits the rest of its turn.
func (u *Unit) Fortify() {
	u.State = UnitFortifying
	u.MovementPoints = 0
	u.RoadTurnsRemaining = 0
}

// Wake returns the unit to Active, abandoning any fortification, sleep or
// road work. Movement is not restored until the next turn start.
func (u *Unit) Wake() {
	u.State = UnitActive
	u.RoadTurnsRemaining = 0
}

// IsFortified reports whether the unit gets the fortification defense bonus
func (u *Unit) IsFortified() bool { return u.State == UnitFortified }

func (u *Unit) Clone() *Unit {
	cp := *u
	return &cp
}
