package catalog

import "fmt"

// GovernmentID identifies a form of government
type GovernmentID string

const (
	Anarchy   GovernmentID = "anarchy"
	Despotism GovernmentID = "despotism"
)

// Government describes how a player's trade is split and taxed.
// Rates are percentages of city trade.
type Government struct {
	ID              GovernmentID `yaml:"id"`
	Name            string       `yaml:"name"`
	ScienceRate     int          `yaml:"science_rate"`
	TaxRate         int          `yaml:"tax_rate"`
	ProductionBonus int          `yaml:"production_bonus"`
	TradeBonus      int          `yaml:"trade_bonus"`
	Requires        TechID       `yaml:"requires"`
}

var (
	governments     map[GovernmentID]Government
	governmentOrder []GovernmentID
)

func loadGovernments() {
	var doc struct {
		Governments []Government `yaml:"governments"`
	}
	mustDecode("governments.yaml", &doc)

	governments = make(map[GovernmentID]Government, len(doc.Governments))
	for _, g := range doc.Governments {
		if _, dup := governments[g.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate government %q", g.ID))
		}
		if g.ScienceRate < 0 || g.TaxRate < 0 || g.ScienceRate+g.TaxRate > 100 {
			panic(fmt.Sprintf("catalog: government %q has invalid rates", g.ID))
		}
		checkRequires("government", string(g.ID), g.Requires)
		governments[g.ID] = g
		governmentOrder = append(governmentOrder, g.ID)
	}
	for _, required := range []GovernmentID{Anarchy, Despotism} {
		if _, ok := governments[required]; !ok {
			panic(fmt.Sprintf("catalog: governments.yaml is missing %q", required))
		}
	}
	if a := governments[Anarchy]; a.ScienceRate != 0 || a.TaxRate != 0 {
		panic("catalog: anarchy must not collect science or taxes")
	}
}

// LookupGovernment returns the government with the given id
func LookupGovernment(id GovernmentID) (Government, bool) {
	g, ok := governments[id]
	return g, ok
}

// MustGovernment returns the government or panics
func MustGovernment(id GovernmentID) Government {
	g, ok := governments[id]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown government %q", id))
	}
	return g
}

// Governments returns all governments in table order
func Governments() []GovernmentID {
	out := make([]GovernmentID, len(governmentOrder))
	copy(out, governmentOrder)
	return out
}
