package catalog

import "fmt"

// TechID identifies a technology
type TechID string

// Technology is one node of the research DAG
type Technology struct {
	ID       TechID   `yaml:"id"`
	Name     string   `yaml:"name"`
	Cost     int      `yaml:"cost"`
	Requires []TechID `yaml:"requires"`
}

var (
	technologies map[TechID]Technology
	techOrder    []TechID
)

func loadTechnologies() {
	var doc struct {
		Technologies []Technology `yaml:"technologies"`
	}
	mustDecode("technologies.yaml", &doc)

	technologies = make(map[TechID]Technology, len(doc.Technologies))
	techOrder = make([]TechID, 0, len(doc.Technologies))
	for _, t := range doc.Technologies {
		if _, dup := technologies[t.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate technology %q", t.ID))
		}
		if t.Cost <= 0 {
			panic(fmt.Sprintf("catalog: technology %q has non-positive cost", t.ID))
		}
		technologies[t.ID] = t
		techOrder = append(techOrder, t.ID)
	}
	for _, id := range techOrder {
		for _, req := range technologies[id].Requires {
			if _, ok := technologies[req]; !ok {
				panic(fmt.Sprintf("catalog: technology %q requires unknown %q", id, req))
			}
		}
	}
	if cycle := findTechCycle(); cycle != "" {
		panic("catalog: technology prerequisites form a cycle through " + string(cycle))
	}
}

// findTechCycle returns a technology on a prerequisite cycle, or "".
func findTechCycle() TechID {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[TechID]int, len(technologies))
	var visit func(id TechID) TechID
	visit = func(id TechID) TechID {
		switch state[id] {
		case visiting:
			return id
		case done:
			return ""
		}
		state[id] = visiting
		for _, req := range technologies[id].Requires {
			if c := visit(req); c != "" {
				return c
			}
		}
		state[id] = done
		return ""
	}
	for _, id := range techOrder {
		if c := visit(id); c != "" {
			return c
		}
	}
	return ""
}

// LookupTechnology returns the technology with the given id
func LookupTechnology(id TechID) (Technology, bool) {
	t, ok := technologies[id]
	return t, ok
}

// MustTechnology returns the technology or panics; callers use it where an
// unknown id can only come from corrupted data.
func MustTechnology(id TechID) Technology {
	t, ok := technologies[id]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown technology %q", id))
	}
	return t
}

// Technologies returns all technology ids in table order
func Technologies() []TechID {
	out := make([]TechID, len(techOrder))
	copy(out, techOrder)
	return out
}

// PrerequisitesMet reports whether every prerequisite of id is in known.
func PrerequisitesMet(id TechID, known map[TechID]bool) bool {
	for _, req := range MustTechnology(id).Requires {
		if !known[req] {
			return false
		}
	}
	return true
}
