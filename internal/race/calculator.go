package race

import (
	"cmp"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"time"

	"github.com/lox/horserace/internal/horse"
)

// Compute simulates one round. Each horse's time is
//
//	max(1, distance/BaseSpeedMPS + (100-condition)/100 * distance/20 + U[-1,1])
//
// and results come back fastest first with positions 1..N. Equal times keep
// input order.
func Compute(rng *rand.Rand, horses []horse.Horse, distance int) ([]Result, error) {
	if distance <= 0 {
		return nil, fmt.Errorf("invalid distance %d: must be positive", distance)
	}

	results := make([]Result, len(horses))
	for i, h := range horses {
		conditionFactor := float64(horse.MaxCondition-h.Condition) / 100
		baseTime := float64(distance) / BaseSpeedMPS
		timeVariation := conditionFactor * (float64(distance) / 20)
		randomVariation := (rng.Float64() - 0.5) * 2

		results[i] = Result{
			Horse:    h,
			Time:     max(1, baseTime+timeVariation+randomVariation),
			Distance: distance,
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(a.Time, b.Time)
	})
	for i := range results {
		results[i].Position = i + 1
	}
	return results, nil
}

// Slowest returns the largest finishing time, or 0 for no results.
func Slowest(results []Result) float64 {
	var slowest float64
	for _, r := range results {
		slowest = max(slowest, r.Time)
	}
	return slowest
}

// Duration is how long a round plays out in real time: the slowest horse's time
// sped up by multiplier.
func Duration(results []Result, multiplier float64) time.Duration {
	if multiplier <= 0 {
		multiplier = 1
	}
	ms := Slowest(results) * 1000 / multiplier
	return time.Duration(ms * float64(time.Millisecond))
}

// Winner returns the horse in first place.
func Winner(results []Result) (Result, bool) {
	for _, r := range results {
		if r.Position == 1 {
			return r, true
		}
	}
	return Result{}, false
}
