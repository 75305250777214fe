package core

import "errors"

var (
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrCityNotFound        = errors.New("city not found")
	ErrInvalidPlayer       = errors.New("invalid player ID")
	ErrNotYourTurn         = errors.New("not the current player's turn")
	ErrGameNotPlaying      = errors.New("game is not in the playing phase")
	ErrNoMovement          = errors.New("unit has no movement left")
	ErrSameTile            = errors.New("target is the unit's own tile")
	ErrOutOfRange          = errors.New("target is out of movement range")
	ErrImpassable          = errors.New("target tile is impassable")
	ErrOccupied            = errors.New("target tile holds an enemy unit")
	ErrNotAdjacent         = errors.New("tiles are not adjacent")
	ErrSameOwner           = errors.New("units belong to the same player")
	ErrNoAttack            = errors.New("unit has no attack strength")
	ErrCannotFortify       = errors.New("unit type cannot fortify")
	ErrCannotFoundCity     = errors.New("unit type cannot found cities")
	ErrTerrainUnsuitable   = errors.New("terrain does not allow a city")
	ErrTileHasCity         = errors.New("tile already holds a city")
	ErrCityTooClose        = errors.New("too close to an existing city")
	ErrCannotBuildRoad     = errors.New("unit cannot build a road here")
	ErrUnknownItem         = errors.New("unknown production item")
	ErrTechLocked          = errors.New("required technology not known")
	ErrAlreadyBuilt        = errors.New("already built")
	ErrTechKnown           = errors.New("technology already known")
	ErrInsufficientScience = errors.New("not enough science")
	ErrInAnarchy           = errors.New("player is in anarchy")
	ErrUnknownGovernment   = errors.New("unknown government")
	ErrGameOver            = errors.New("game is over")
)
