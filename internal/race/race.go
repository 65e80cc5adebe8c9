// Package race builds the race schedule and computes round outcomes.
//
// A schedule is RoundCount rounds, one per entry of Distances, each with
// HorsesPerRound horses drawn from the roster. Compute turns a round's horses
// into ranked results and FormatResults renders them for the results log.
package race

import "github.com/lox/horserace/internal/horse"

const (
	HorsesPerRound = 10
	RoundCount     = 6

	// BaseSpeedMPS is the nominal speed, in meters per second, of a horse in
	// perfect condition.
	BaseSpeedMPS = 20.0
)

// Distances are the round distances in meters, in schedule order.
var Distances = [RoundCount]int{1200, 1400, 1600, 1800, 2000, 2200}

// Round is one scheduled race.
type Round struct {
	RoundNumber int
	Distance    int
	Horses      []horse.Horse
	Results     []Result // nil until computed
	IsCompleted bool
}

// Result is one horse's finish within a round.
type Result struct {
	Horse    horse.Horse
	Position int
	Time     float64 // seconds
	Distance int
}

// Schedule is the ordered list of rounds for a session. A nil Schedule means no
// schedule has been generated.
type Schedule []Round

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	for i, r := range s {
		out[i] = r.Clone()
	}
	return out
}

// Clone returns a deep copy of the round.
func (r Round) Clone() Round {
	r.Horses = append([]horse.Horse(nil), r.Horses...)
	if r.Results != nil {
		r.Results = append([]Result(nil), r.Results...)
	}
	return r
}

// Completed reports how many rounds have finished.
func (s Schedule) Completed() int {
	n := 0
	for _, r := range s {
		if r.IsCompleted {
			n++
		}
	}
	return n
}
