package ai

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
)

// GenerateCityName picks a name for a new city. It walks the civilization's
// list first, then tries random prefix+suffix combinations, and finally
// numbers the last candidate until it is free.
func GenerateCityName(civ catalog.Civilization, taken func(string) bool, rng *rand.Rand, attempts int) string {
	for _, name := range civ.Cities {
		if !taken(name) {
			return name
		}
	}

	prefixes, suffixes := catalog.NameBank()
	base := civ.Name
	if len(prefixes) > 0 && len(suffixes) > 0 {
		for i := 0; i < attempts; i++ {
			name := prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
			if !taken(name) {
				return name
			}
			base = name
		}
	}
	if base == "" {
		base = "City"
	}

	for n := 2; ; n++ {
		name := fmt.Sprintf("%s %d", base, n)
		if !taken(name) {
			return name
		}
	}
}
