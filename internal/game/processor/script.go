// Package processor replays scripted player commands against an engine.
package processor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// Op names a scripted command
type Op string

const (
	OpMove       Op = "move"
	OpFound      Op = "found"
	OpAttack     Op = "attack"
	OpFortify    Op = "fortify"
	OpWake       Op = "wake"
	OpSleep      Op = "sleep"
	OpRoad       Op = "road"
	OpResearch   Op = "research"
	OpProduce    Op = "produce"
	OpRevolution Op = "revolution"
	OpGovernment Op = "government"
	OpEndTurn    Op = "end_turn"
)

// Point is a map coordinate in a script
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Position converts p to a core position
func (p Point) Position() core.Position { return core.NewPosition(p.X, p.Y) }

// Command is one scripted player command. Only the fields its Op needs are
// read.
type Command struct {
	Op         Op     `yaml:"op"`
	Player     int    `yaml:"player"`
	Unit       int    `yaml:"unit"`
	Target     int    `yaml:"target"`
	City       int    `yaml:"city"`
	To         *Point `yaml:"to"`
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Item       string `yaml:"item"`
	Tech       string `yaml:"tech"`
	Government string `yaml:"government"`
}

// Script is a named batch of commands
type Script struct {
	Name     string    `yaml:"name"`
	Commands []Command `yaml:"commands"`
}

// ErrInvalidCommand marks a script entry that is malformed
var ErrInvalidCommand = errors.New("invalid command")

// Validate checks that c carries the fields its Op needs
func (c Command) Validate() error {
	switch c.Op {
	case OpMove:
		if c.To == nil {
			return fmt.Errorf("%s: missing destination: %w", c.Op, ErrInvalidCommand)
		}
	case OpFound, OpFortify, OpWake, OpSleep, OpRoad:
	case OpAttack:
		if c.Target <= 0 {
			return fmt.Errorf("%s: missing target: %w", c.Op, ErrInvalidCommand)
		}
	case OpResearch:
		if c.Tech == "" {
			return fmt.Errorf("%s: missing tech: %w", c.Op, ErrInvalidCommand)
		}
		if _, ok := catalog.LookupTechnology(catalog.TechID(c.Tech)); !ok {
			return fmt.Errorf("%s: unknown tech %q: %w", c.Op, c.Tech, ErrInvalidCommand)
		}
	case OpProduce:
		if _, ok := core.ParseProductionKind(c.Kind); !ok {
			return fmt.Errorf("%s: unknown kind %q: %w", c.Op, c.Kind, ErrInvalidCommand)
		}
		if c.Item == "" {
			return fmt.Errorf("%s: missing item: %w", c.Op, ErrInvalidCommand)
		}
	case OpGovernment:
		if c.Government == "" {
			return fmt.Errorf("%s: missing government: %w", c.Op, ErrInvalidCommand)
		}
	case OpRevolution, OpEndTurn:
	default:
		return fmt.Errorf("unknown op %q: %w", c.Op, ErrInvalidCommand)
	}

	switch c.Op {
	case OpMove, OpFound, OpAttack, OpFortify, OpWake, OpSleep, OpRoad:
		if c.Unit <= 0 {
			return fmt.Errorf("%s: missing unit: %w", c.Op, ErrInvalidCommand)
		}
	case OpProduce:
		if c.City <= 0 {
			return fmt.Errorf("%s: missing city: %w", c.Op, ErrInvalidCommand)
		}
	}
	return nil
}

// Load decodes a script and validates every command
func Load(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	for i, c := range s.Commands {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("script %q command %d: %w", s.Name, i, err)
		}
	}
	return &s, nil
}

// LoadFile reads a script from path
func LoadFile(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Load(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
