package store

import (
	"github.com/lox/horserace/internal/horse"
	"github.com/lox/horserace/internal/race"
)

// State is the game aggregate. Values returned by Store.Snapshot are private
// copies and safe to read from any goroutine.
type State struct {
	Horses            []horse.Horse
	RaceSchedule      race.Schedule // nil when no schedule exists
	CurrentRoundIndex int           // -1 when no round is selected
	IsRacing          bool
	IsPaused          bool
	RaceResults       []string
}

// InitialState is the state of a fresh session.
func InitialState() State {
	return State{CurrentRoundIndex: -1}
}

// Clone returns a deep copy.
func (st State) Clone() State {
	st.Horses = cloneSlice(st.Horses)
	st.RaceSchedule = st.RaceSchedule.Clone()
	st.RaceResults = cloneSlice(st.RaceResults)
	return st
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func (st State) AllHorses() []horse.Horse { return st.Horses }

func (st State) Schedule() race.Schedule { return st.RaceSchedule }

// CurrentRound returns the selected round, if the index points at one.
func (st State) CurrentRound() (race.Round, bool) {
	return st.RoundAt(st.CurrentRoundIndex)
}

// RoundAt returns the round at a 0-based schedule index.
func (st State) RoundAt(index int) (race.Round, bool) {
	if index < 0 || index >= len(st.RaceSchedule) {
		return race.Round{}, false
	}
	return st.RaceSchedule[index], true
}

// CurrentRoundHorses returns the field of the selected round, or nil.
func (st State) CurrentRoundHorses() []horse.Horse {
	round, ok := st.CurrentRound()
	if !ok {
		return nil
	}
	return round.Horses
}

func (st State) Racing() bool { return st.IsRacing }

func (st State) Paused() bool { return st.IsPaused }

func (st State) Results() []string { return st.RaceResults }

func (st State) CanGenerateSchedule() bool { return len(st.Horses) > 0 }

// CanStartRace is true when a schedule exists, no run is active and at least
// one round is still to be raced.
func (st State) CanStartRace() bool {
	if st.RaceSchedule == nil || st.IsRacing {
		return false
	}
	for _, r := range st.RaceSchedule {
		if !r.IsCompleted {
			return true
		}
	}
	return false
}

func (st State) CanPause() bool { return st.IsRacing && !st.IsPaused }

func (st State) CanResume() bool { return st.IsRacing && st.IsPaused }

// CanResetRace only allows a race reset from the paused state.
func (st State) CanResetRace() bool { return st.IsRacing && st.IsPaused }

// IsRaceFinished is true once every round of a non-empty schedule is complete.
func (st State) IsRaceFinished() bool {
	if len(st.RaceSchedule) == 0 {
		return false
	}
	for _, r := range st.RaceSchedule {
		if !r.IsCompleted {
			return false
		}
	}
	return true
}
