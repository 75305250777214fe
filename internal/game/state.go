package game

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
)

// GameState is the aggregate root of a game. Units and cities keep creation
// order, which is the order the AI and the unit queue visit them in.
type GameState struct {
	Turn            int
	CurrentPlayerID int
	Players         []*core.Player
	Units           []*core.Unit
	Cities          []*core.City

	grid         *core.Grid
	nextUnitID   int
	nextCityID   int
	builtWonders map[catalog.BuildingID]int // wonder -> city id
}

func newGameState(grid *core.Grid) *GameState {
	return &GameState{
		Turn:         1,
		grid:         grid,
		nextUnitID:   1,
		nextCityID:   1,
		builtWonders: make(map[catalog.BuildingID]int),
	}
}

func (gs *GameState) Grid() *core.Grid { return gs.grid }
func (gs *GameState) CurrentTurn() int { return gs.Turn }

// Player returns the player with the given id or nil
func (gs *GameState) Player(id int) *core.Player {
	if id < 0 || id >= len(gs.Players) {
		return nil
	}
	return gs.Players[id]
}

func (gs *GameState) Unit(id int) *core.Unit {
	for _, u := range gs.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (gs *GameState) City(id int) *core.City {
	for _, c := range gs.Cities {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// UnitsAt returns the units on p in creation order
func (gs *GameState) UnitsAt(p core.Position) []*core.Unit {
	p = gs.grid.Normalize(p)
	var out []*core.Unit
	for _, u := range gs.Units {
		if u.Pos == p {
			out = append(out, u)
		}
	}
	return out
}

func (gs *GameState) CityAt(p core.Position) *core.City {
	p = gs.grid.Normalize(p)
	for _, c := range gs.Cities {
		if c.Pos == p {
			return c
		}
	}
	return nil
}

func (gs *GameState) AllUnits() []*core.Unit  { return gs.Units }
func (gs *GameState) AllCities() []*core.City { return gs.Cities }

func (gs *GameState) UnitsOf(playerID int) []*core.Unit {
	var out []*core.Unit
	for _, u := range gs.Units {
		if u.Owner == playerID {
			out = append(out, u)
		}
	}
	return out
}

func (gs *GameState) CitiesOf(playerID int) []*core.City {
	var out []*core.City
	for _, c := range gs.Cities {
		if c.Owner == playerID {
			out = append(out, c)
		}
	}
	return out
}

// PlayerIDs, UnitCount and CityCount feed the conquest check
func (gs *GameState) PlayerIDs() []int {
	ids := make([]int, len(gs.Players))
	for i, p := range gs.Players {
		ids[i] = p.ID
	}
	return ids
}

func (gs *GameState) UnitCount(playerID int) int { return len(gs.UnitsOf(playerID)) }
func (gs *GameState) CityCount(playerID int) int { return len(gs.CitiesOf(playerID)) }

func (gs *GameState) addUnit(u *core.Unit) {
	gs.Units = append(gs.Units, u)
}

func (gs *GameState) removeUnit(id int) *core.Unit {
	for i, u := range gs.Units {
		if u.ID == id {
			gs.Units = append(gs.Units[:i], gs.Units[i+1:]...)
			return u
		}
	}
	return nil
}

func (gs *GameState) takeUnitID() int {
	id := gs.nextUnitID
	gs.nextUnitID++
	return id
}

func (gs *GameState) takeCityID() int {
	id := gs.nextCityID
	gs.nextCityID++
	return id
}

// cityNameTaken reports whether any city in the game already uses name
func (gs *GameState) cityNameTaken(name string) bool {
	for _, p := range gs.Players {
		if p.UsedCityNames[name] {
			return true
		}
	}
	for _, c := range gs.Cities {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Snapshot deep-copies the state for event payloads
func (gs *GameState) Snapshot(phase string) events.Snapshot {
	s := events.Snapshot{
		Turn:            gs.Turn,
		CurrentPlayerID: gs.CurrentPlayerID,
		Phase:           phase,
		Width:           gs.grid.W,
		Height:          gs.grid.H,
		Players:         make([]*core.Player, len(gs.Players)),
		Units:           make([]*core.Unit, len(gs.Units)),
		Cities:          make([]*core.City, len(gs.Cities)),
	}
	for i, p := range gs.Players {
		s.Players[i] = p.Clone()
	}
	for i, u := range gs.Units {
		s.Units[i] = u.Clone()
	}
	for i, c := range gs.Cities {
		s.Cities[i] = c.Clone()
	}
	return s
}
