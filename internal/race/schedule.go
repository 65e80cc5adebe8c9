package race

import (
	rand "math/rand/v2"

	"github.com/lox/horserace/internal/gameerr"
	"github.com/lox/horserace/internal/horse"
)

// BuildSchedule draws a fresh schedule from the full roster. Every round selects
// its horses independently, so a horse can run in several rounds or none.
// horses is never modified.
func BuildSchedule(rng *rand.Rand, horses []horse.Horse) (Schedule, error) {
	if len(horses) == 0 {
		return nil, gameerr.RaceSchedule("No horses available. Please generate horses first.")
	}
	if len(horses) != horse.Count {
		return nil, gameerr.RaceSchedule("Expected exactly %d horses, but found %d. Please regenerate horses.",
			horse.Count, len(horses))
	}

	schedule := make(Schedule, 0, RoundCount)
	for i, distance := range Distances {
		selected := SelectRandom(rng, horses, HorsesPerRound)
		if len(selected) != HorsesPerRound {
			return nil, gameerr.RaceSchedule("Expected %d horses per round, but got %d",
				HorsesPerRound, len(selected))
		}
		schedule = append(schedule, Round{
			RoundNumber: i + 1,
			Distance:    distance,
			Horses:      selected,
		})
	}
	return schedule, nil
}

// SelectRandom returns count horses chosen uniformly without replacement. When
// there are no more than count horses, all of them are returned in input order.
// The result never aliases horses.
func SelectRandom(rng *rand.Rand, horses []horse.Horse, count int) []horse.Horse {
	if len(horses) <= count {
		return append([]horse.Horse(nil), horses...)
	}
	perm := rng.Perm(len(horses))
	out := make([]horse.Horse, count)
	for i := range out {
		out[i] = horses[perm[i]]
	}
	return out
}
