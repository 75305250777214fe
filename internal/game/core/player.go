package core

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
)

// Player is a human or computer participant.
// RevolutionTurnsRemaining is only non-zero while in Anarchy.
type Player struct {
	ID                       int
	Name                     string
	IsHuman                  bool
	Color                    string
	Civilization             string
	Government               catalog.GovernmentID
	PendingGovernment        catalog.GovernmentID
	Technologies             map[catalog.TechID]bool
	Science                  int
	Gold                     int
	Culture                  int
	CurrentResearch          catalog.TechID
	CurrentResearchProgress  int
	RevolutionTurnsRemaining int
	UsedCityNames            map[string]bool
	Eliminated               bool
}

// NewPlayer creates a player under Despotism with no technologies
func NewPlayer(id int, name string, human bool, civ catalog.Civilization) *Player {
	return &Player{
		ID:            id,
		Name:          name,
		IsHuman:       human,
		Color:         civ.Color,
		Civilization:  civ.ID,
		Government:    catalog.Despotism,
		Technologies:  make(map[catalog.TechID]bool),
		UsedCityNames: make(map[string]bool),
	}
}

func (p *Player) Knows(t catalog.TechID) bool {
	return t == "" || p.Technologies[t]
}

func (p *Player) InAnarchy() bool { return p.Government == catalog.Anarchy }

// Clone returns a deep copy
func (p *Player) Clone() *Player {
	cp := *p
	cp.Technologies = make(map[catalog.TechID]bool, len(p.Technologies))
	for k, v := range p.Technologies {
		cp.Technologies[k] = v
	}
	cp.UsedCityNames = make(map[string]bool, len(p.UsedCityNames))
	for k, v := range p.UsedCityNames {
		cp.UsedCityNames[k] = v
	}
	return &cp
}
