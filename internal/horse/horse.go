// Package horse generates the roster of horses for a game session.
package horse

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
)

const (
	// Count is the fixed roster size.
	Count = 20

	MinCondition = 1
	MaxCondition = 100
)

// Horse is an immutable roster entry.
type Horse struct {
	ID        string
	Name      string
	Color     string
	Condition int
}

// FirstName returns the first token of the horse's two-part name.
func (h Horse) FirstName() string {
	first, _, _ := strings.Cut(h.Name, " ")
	return first
}

// SecondName returns the second token of the horse's two-part name.
func (h Horse) SecondName() string {
	_, second, _ := strings.Cut(h.Name, " ")
	return second
}

func (h Horse) String() string {
	return fmt.Sprintf("%s (%s, condition %d)", h.Name, h.ID, h.Condition)
}

// Generate draws Count horses without replacement from pools. Identifiers are
// sequential (horse-1..horse-20) so regenerating keeps the ids and reshuffles
// everything else.
func Generate(rng *rand.Rand, pools Pools) ([]Horse, error) {
	if err := pools.Validate(); err != nil {
		return nil, err
	}

	colors := shuffled(rng, pools.Colors)
	firstNames := shuffled(rng, pools.FirstNames)
	secondNames := shuffled(rng, pools.SecondNames)

	horses := make([]Horse, Count)
	for i := range horses {
		horses[i] = Horse{
			ID:        fmt.Sprintf("horse-%d", i+1),
			Name:      firstNames[i] + " " + secondNames[i],
			Color:     colors[i],
			Condition: MinCondition + rng.IntN(MaxCondition-MinCondition+1),
		}
	}
	return horses, nil
}

func shuffled(rng *rand.Rand, in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
