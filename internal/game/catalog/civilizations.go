package catalog

import "fmt"

// Civilization is a playable people with its ordered city-name list
type Civilization struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Color  string   `yaml:"color"`
	Cities []string `yaml:"cities"`
}

var (
	civilizations map[string]Civilization
	civOrder      []string
	namePrefixes  []string
	nameSuffixes  []string
)

func loadCivilizations() {
	var doc struct {
		Civilizations []Civilization `yaml:"civilizations"`
		NameBank      struct {
			Prefixes []string `yaml:"prefixes"`
			Suffixes []string `yaml:"suffixes"`
		} `yaml:"name_bank"`
	}
	mustDecode("civilizations.yaml", &doc)

	civilizations = make(map[string]Civilization, len(doc.Civilizations))
	for _, c := range doc.Civilizations {
		if _, dup := civilizations[c.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate civilization %q", c.ID))
		}
		if len(c.Cities) == 0 {
			panic(fmt.Sprintf("catalog: civilization %q has no city names", c.ID))
		}
		civilizations[c.ID] = c
		civOrder = append(civOrder, c.ID)
	}
	if len(doc.NameBank.Prefixes) == 0 || len(doc.NameBank.Suffixes) == 0 {
		panic("catalog: civilizations.yaml name_bank must not be empty")
	}
	namePrefixes = doc.NameBank.Prefixes
	nameSuffixes = doc.NameBank.Suffixes
}

// LookupCivilization returns the civilization with the given id
func LookupCivilization(id string) (Civilization, bool) {
	c, ok := civilizations[id]
	return c, ok
}

// Civilizations returns all civilization ids in table order
func Civilizations() []string {
	out := make([]string, len(civOrder))
	copy(out, civOrder)
	return out
}

// NameBank returns the word lists used for procedural city names
func NameBank() (prefixes, suffixes []string) {
	return append([]string(nil), namePrefixes...), append([]string(nil), nameSuffixes...)
}
