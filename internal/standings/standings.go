// Package standings aggregates round results into per-horse totals.
package standings

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/horserace/internal/horse"
	"github.com/lox/horserace/internal/race"
)

// podium is the last finishing position that counts as a podium.
const podium = 3

// Entry tracks one horse across every round it started.
type Entry struct {
	Horse   horse.Horse
	Starts  int
	Wins    int
	Podiums int
	SumPos  int

	// Speeds in meters per second, kept as running sums for variance.
	SumSpeed  float64
	SumSpeed2 float64
}

// MeanPosition returns the average finishing position.
func (e Entry) MeanPosition() float64 {
	if e.Starts == 0 {
		return 0
	}
	return float64(e.SumPos) / float64(e.Starts)
}

// MeanSpeed returns the average speed in meters per second.
func (e Entry) MeanSpeed() float64 {
	if e.Starts == 0 {
		return 0
	}
	return e.SumSpeed / float64(e.Starts)
}

// SpeedStdDev returns the sample standard deviation of speed.
func (e Entry) SpeedStdDev() float64 {
	if e.Starts < 2 {
		return 0
	}
	mean := e.MeanSpeed()
	variance := (e.SumSpeed2 - float64(e.Starts)*mean*mean) / float64(e.Starts-1)
	return math.Sqrt(max(0, variance))
}

// Table accumulates entries keyed by horse id.
type Table struct {
	Rounds  int
	entries map[string]*Entry
}

func New() *Table {
	return &Table{entries: make(map[string]*Entry)}
}

// FromSchedule builds a table from the completed rounds of s.
func FromSchedule(s race.Schedule) *Table {
	t := New()
	for _, round := range s {
		if round.IsCompleted {
			t.AddRound(round.Results)
		}
	}
	return t
}

// AddRound incorporates the results of one round.
func (t *Table) AddRound(results []race.Result) {
	if len(results) == 0 {
		return
	}
	t.Rounds++
	for _, r := range results {
		t.add(r)
	}
}

func (t *Table) add(r race.Result) {
	e, ok := t.entries[r.Horse.ID]
	if !ok {
		e = &Entry{Horse: r.Horse}
		t.entries[r.Horse.ID] = e
	}

	e.Starts++
	e.SumPos += r.Position
	if r.Position == 1 {
		e.Wins++
	}
	if r.Position <= podium {
		e.Podiums++
	}
	if r.Time > 0 {
		speed := float64(r.Distance) / r.Time
		e.SumSpeed += speed
		e.SumSpeed2 += speed * speed
	}
}

// Len returns the number of horses with at least one start.
func (t *Table) Len() int {
	return len(t.entries)
}

// Get returns the entry for a horse id.
func (t *Table) Get(id string) (Entry, bool) {
	e, ok := t.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Ranked returns entries ordered by wins, then podiums, then mean position,
// then name.
func (t *Table) Ranked() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Podiums != b.Podiums {
			return a.Podiums > b.Podiums
		}
		if a.MeanPosition() != b.MeanPosition() {
			return a.MeanPosition() < b.MeanPosition()
		}
		return a.Horse.Name < b.Horse.Name
	})
	return out
}

// Validate checks the totals are consistent with the number of rounds.
func (t *Table) Validate() error {
	wins := 0
	for _, e := range t.entries {
		wins += e.Wins
		if e.Wins > e.Starts || e.Podiums > e.Starts {
			return fmt.Errorf("%s: wins (%d) or podiums (%d) exceed starts (%d)",
				e.Horse.ID, e.Wins, e.Podiums, e.Starts)
		}
	}
	if wins != t.Rounds {
		return fmt.Errorf("total wins (%d) does not match rounds (%d)", wins, t.Rounds)
	}
	return nil
}
