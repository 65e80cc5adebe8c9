package horse

import (
	"strings"

	"github.com/lox/horserace/internal/gameerr"
)

// Pools holds the candidate values horses are drawn from. Each pool needs at
// least Count distinct entries.
type Pools struct {
	Colors      []string
	FirstNames  []string
	SecondNames []string
}

// DefaultPools returns the built-in candidate pools.
func DefaultPools() Pools {
	return Pools{
		Colors:      append([]string(nil), defaultColors...),
		FirstNames:  append([]string(nil), defaultFirstNames...),
		SecondNames: append([]string(nil), defaultSecondNames...),
	}
}

// Validate checks every pool can supply Count unique entries.
func (p Pools) Validate() error {
	if err := checkPool("colors", p.Colors, false); err != nil {
		return err
	}
	if err := checkPool("first names", p.FirstNames, true); err != nil {
		return err
	}
	return checkPool("second names", p.SecondNames, true)
}

func checkPool(label string, pool []string, nameToken bool) error {
	if len(pool) < Count {
		return gameerr.HorseGeneration("Insufficient %s: need %d, have %d", label, Count, len(pool))
	}

	seen := make(map[string]struct{}, len(pool))
	for _, v := range pool {
		if v == "" {
			return gameerr.HorseGeneration("Invalid %s: empty entry", label)
		}
		if nameToken && strings.ContainsAny(v, " \t\n") {
			return gameerr.HorseGeneration("Invalid %s: %q contains whitespace", label, v)
		}
		if _, dup := seen[v]; dup {
			return gameerr.HorseGeneration("Invalid %s: duplicate entry %q", label, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

var defaultColors = []string{
	"#E6194B", "#3CB44B", "#FFE119", "#4363D8", "#F58231", "#911EB4",
	"#46F0F0", "#F032E6", "#BCF60C", "#FABEBE", "#008080", "#E6BEFF",
	"#9A6324", "#FFFAC8", "#800000", "#AAFFC3", "#808000", "#FFD8B1",
	"#000075", "#808080", "#FFFFFF", "#000000", "#A9A9A9", "#FF7F50",
}

var defaultFirstNames = []string{
	"Thunder", "Silver", "Midnight", "Golden", "Storm", "Wild",
	"Blazing", "Royal", "Shadow", "Lucky", "Crimson", "Iron",
	"Velvet", "Desert", "Northern", "Copper", "Rapid", "Misty",
	"Noble", "Electric", "Scarlet", "Frosty", "Dancing", "Brave",
}

var defaultSecondNames = []string{
	"Bolt", "Arrow", "Star", "Spirit", "Runner", "Comet",
	"Dancer", "Flash", "Legend", "Charm", "Blaze", "Whisper",
	"Dream", "Wind", "Glory", "Fury", "Rocket", "Knight",
	"Phantom", "Breeze", "Tempest", "Echo", "Jewel", "Monarch",
}
