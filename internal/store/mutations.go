package store

import (
	"github.com/lox/horserace/internal/horse"
	"github.com/lox/horserace/internal/race"
)

// MutationType names a state mutation.
type MutationType string

const (
	MutationSetHorses       MutationType = "SET_HORSES"
	MutationSetRaceSchedule MutationType = "SET_RACE_SCHEDULE"
	MutationSetCurrentRound MutationType = "SET_CURRENT_ROUND"
	MutationSetIsRacing     MutationType = "SET_IS_RACING"
	MutationSetIsPaused     MutationType = "SET_IS_PAUSED"
	MutationSetRaceResults  MutationType = "SET_RACE_RESULTS"
	MutationSetRoundResults MutationType = "SET_ROUND_RESULTS"
	MutationCompleteRound   MutationType = "COMPLETE_ROUND"
	MutationResetGame       MutationType = "RESET_GAME"
)

func (t MutationType) String() string { return string(t) }

// Mutation is a synchronous, total update of State. Mutations that reference a
// round which does not exist leave the state untouched.
type Mutation interface {
	Type() MutationType
	apply(st *State)
}

// SetHorses replaces the roster.
type SetHorses struct{ Horses []horse.Horse }

func (SetHorses) Type() MutationType { return MutationSetHorses }
func (m SetHorses) apply(st *State) { st.Horses = cloneSlice(m.Horses) }

// SetRaceSchedule replaces the schedule and clears race progress. Horses are
// untouched.
type SetRaceSchedule struct{ Schedule race.Schedule }

func (SetRaceSchedule) Type() MutationType { return MutationSetRaceSchedule }
func (m SetRaceSchedule) apply(st *State) {
	st.RaceSchedule = m.Schedule.Clone()
	st.CurrentRoundIndex = -1
	st.RaceResults = nil
}

// SetCurrentRound selects a round by 0-based index, -1 for none.
type SetCurrentRound struct{ Index int }

func (SetCurrentRound) Type() MutationType { return MutationSetCurrentRound }
func (m SetCurrentRound) apply(st *State)   { st.CurrentRoundIndex = m.Index }

type SetIsRacing struct{ Racing bool }

func (SetIsRacing) Type() MutationType { return MutationSetIsRacing }
func (m SetIsRacing) apply(st *State)   { st.IsRacing = m.Racing }

type SetIsPaused struct{ Paused bool }

func (SetIsPaused) Type() MutationType { return MutationSetIsPaused }
func (m SetIsPaused) apply(st *State)   { st.IsPaused = m.Paused }

// SetRaceResults replaces the cumulative results log.
type SetRaceResults struct{ Lines []string }

func (SetRaceResults) Type() MutationType { return MutationSetRaceResults }
func (m SetRaceResults) apply(st *State)   { st.RaceResults = cloneSlice(m.Lines) }

// SetRoundResults stores computed results on a round ahead of its completion.
type SetRoundResults struct {
	RoundIndex int
	Results    []race.Result
}

func (SetRoundResults) Type() MutationType { return MutationSetRoundResults }
func (m SetRoundResults) apply(st *State) {
	if !validRound(st, m.RoundIndex) {
		return
	}
	st.RaceSchedule[m.RoundIndex].Results = cloneSlice(m.Results)
}

// CompleteRound marks a round finished and appends its formatted lines to the
// results log.
type CompleteRound struct {
	RoundIndex int
	Lines      []string
}

func (CompleteRound) Type() MutationType { return MutationCompleteRound }
func (m CompleteRound) apply(st *State) {
	if !validRound(st, m.RoundIndex) {
		return
	}
	st.RaceSchedule[m.RoundIndex].IsCompleted = true
	st.RaceResults = append(cloneSlice(st.RaceResults), m.Lines...)
}

// ResetGame clears the schedule and all race progress. The roster is kept;
// pair it with SetHorses to clear that too.
type ResetGame struct{}

func (ResetGame) Type() MutationType { return MutationResetGame }
func (ResetGame) apply(st *State) {
	st.RaceSchedule = nil
	st.CurrentRoundIndex = -1
	st.IsRacing = false
	st.IsPaused = false
	st.RaceResults = nil
}

func validRound(st *State, index int) bool {
	return st.RaceSchedule != nil && index >= 0 && index < len(st.RaceSchedule)
}
