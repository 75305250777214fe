// Package catalog holds the static, read-only rule tables of the game:
// terrain, unit types, buildings and wonders, technologies, governments and
// civilizations. The tables are embedded yaml decoded once at process start;
// a malformed table is a build defect and panics during init.
package catalog

import (
	"bytes"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

func init() {
	// Technologies first: every other table validates its requirements against them.
	loadTechnologies()
	loadTerrain()
	loadUnits()
	loadBuildings()
	loadGovernments()
	loadCivilizations()
}

func mustDecode(name string, out interface{}) {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		panic(fmt.Sprintf("catalog: read %s: %v", name, err))
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		panic(fmt.Sprintf("catalog: decode %s: %v", name, err))
	}
}

func checkRequires(table, id string, tech TechID) {
	if tech == "" {
		return
	}
	if _, ok := technologies[tech]; !ok {
		panic(fmt.Sprintf("catalog: %s %q requires unknown technology %q", table, id, tech))
	}
}
