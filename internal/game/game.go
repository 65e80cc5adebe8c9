// Package game drives a horse racing session.
//
// Game is the only writer of its store. It generates the roster and schedule,
// then runs the rounds one after another with pausable delays between them. A
// run can be paused and resumed at any delay, and a reset abandons it: the run
// loop notices at its next wait or commit and exits without touching the state
// again.
//
// # Basic Usage
//
//	g := game.New(logger, randutil.New(42))
//	if err := g.GenerateHorses(); err != nil { ... }
//	if err := g.GenerateSchedule(); err != nil { ... }
//	go g.StartRace(ctx)
//	g.PauseRace()
//	g.ResumeRace()
//	fmt.Println(g.Snapshot().Results())
package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/horserace/internal/gameerr"
	"github.com/lox/horserace/internal/horse"
	"github.com/lox/horserace/internal/race"
	"github.com/lox/horserace/internal/randutil"
	"github.com/lox/horserace/internal/store"
)

// errAbandoned is returned inside a run once a reset has replaced it.
var errAbandoned = errors.New("race run abandoned")

// Game owns one session's state and its race runner.
type Game struct {
	// mu serialises every write to the store and every draw from rng.
	mu     sync.Mutex
	store  *store.Store
	rng    *rand.Rand
	run    *raceRun
	pools  horse.Pools
	timing Timing
	clock  quartz.Clock
	pacer  *pacer
	logger *log.Logger
}

type raceRun struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Game.
type Option func(*Game)

// WithTiming overrides DefaultTiming.
func WithTiming(t Timing) Option {
	return func(g *Game) { g.timing = t }
}

// WithClock sets the clock used for delays. Tests pass a quartz mock.
func WithClock(c quartz.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithPools overrides the candidate pools horses are drawn from.
func WithPools(p horse.Pools) Option {
	return func(g *Game) { g.pools = p }
}

// WithStore uses an existing store instead of a fresh one.
func WithStore(s *store.Store) Option {
	return func(g *Game) { g.store = s }
}

// New creates a game in the initial state. A nil rng is seeded from the clock.
func New(logger *log.Logger, rng *rand.Rand, opts ...Option) *Game {
	if logger == nil {
		logger = log.Default()
	}
	if rng == nil {
		rng, _ = randutil.Seeded(nil)
	}

	g := &Game{
		rng:    rng,
		pools:  horse.DefaultPools(),
		timing: DefaultTiming(),
		clock:  quartz.NewReal(),
		logger: logger.WithPrefix("game"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.store == nil {
		g.store = store.New()
	}
	g.pacer = &pacer{clock: g.clock, poll: g.timing.PollInterval, gate: g.store}
	return g
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() store.State {
	return g.store.Snapshot()
}

// Subscribe registers for state change events. Subscribers are called with the
// game lock held and must not call back into the Game.
func (g *Game) Subscribe(sub store.EventSubscriber) (unsubscribe func()) {
	return g.store.Subscribe(sub)
}

// Timing returns the timing the game was configured with.
func (g *Game) Timing() Timing {
	return g.timing
}

// GenerateHorses replaces the roster with a freshly drawn one. The state is left
// unchanged on failure.
func (g *Game) GenerateHorses() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	horses, err := horse.Generate(g.rng, g.pools)
	if err != nil {
		g.logger.Error("Failed to generate horses", "error", err)
		return err
	}

	g.store.Commit(store.SetHorses{Horses: horses})
	g.logger.Info("Generated horses", "count", len(horses))
	return nil
}

// GenerateSchedule builds a new schedule from the current roster, discarding any
// previous schedule and results. The roster is not modified. It is refused while
// a race is running.
func (g *Game) GenerateSchedule() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.store.Snapshot()
	if st.IsRacing {
		return gameerr.RaceSchedule("Cannot generate a new schedule while a race is in progress.")
	}

	schedule, err := race.BuildSchedule(g.rng, st.Horses)
	if err != nil {
		g.logger.Error("Failed to generate race schedule", "error", err)
		return err
	}

	g.store.Commit(store.SetRaceSchedule{Schedule: schedule})
	g.logger.Info("Generated race schedule", "rounds", len(schedule))
	return nil
}

// PauseRace suspends a running race. It does nothing unless a race is running
// and not already paused.
func (g *Game) PauseRace() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.store.Snapshot().CanPause() {
		g.store.Commit(store.SetIsPaused{Paused: true})
		g.logger.Info("Race paused")
	}
}

// ResumeRace continues a paused race. It does nothing unless a race is paused.
func (g *Game) ResumeRace() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.store.Snapshot().CanResume() {
		g.store.Commit(store.SetIsPaused{Paused: false})
		g.logger.Info("Race resumed")
	}
}

// ResetRaceState clears the schedule and race progress, keeping the roster, and
// abandons any race in progress.
func (g *Game) ResetRaceState() {
	g.reset(store.ResetGame{})
	g.logger.Info("Race state reset")
}

// ResetGame returns the session to its initial state, roster included, and
// abandons any race in progress.
func (g *Game) ResetGame() {
	g.reset(store.ResetGame{}, store.SetHorses{})
	g.logger.Info("Game reset")
}

func (g *Game) reset(mutations ...store.Mutation) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.run != nil {
		g.logger.Debug("Abandoning race in progress")
		g.run.cancel()
		g.run = nil
	}
	g.store.Commit(mutations...)
}

// StartRace runs every unfinished round of the schedule in order and blocks
// until the run ends.
//
// It returns nil when the schedule completes or when a reset abandons the run.
// Any other failure, including cancellation of ctx, clears the racing flags and
// is returned as a race execution error. Rounds already completed stay
// completed.
func (g *Game) StartRace(ctx context.Context) error {
	run, total, err := g.beginRun(ctx)
	if err != nil {
		return err
	}
	defer run.cancel()

	g.logger.Info("Race started", "rounds", total)

	err = g.runRounds(run, total)
	if err == nil {
		if g.endRun(run) {
			g.logger.Info("Race finished")
		}
		return nil
	}

	if !g.endRun(run) {
		g.logger.Info("Race abandoned after reset")
		return nil
	}
	g.logger.Error("Race execution failed", "error", err)
	return gameerr.RaceExecution(err, "Race execution failed")
}

func (g *Game) beginRun(ctx context.Context) (*raceRun, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.store.Snapshot()
	switch {
	case st.RaceSchedule == nil:
		return nil, 0, gameerr.RaceExecution(nil, "No race schedule available. Please generate schedule first.")
	case st.IsRacing:
		return nil, 0, gameerr.RaceExecution(nil, "A race is already in progress.")
	case st.IsRaceFinished():
		return nil, 0, gameerr.RaceExecution(nil, "All rounds are complete. Please generate a new schedule.")
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := &raceRun{ctx: runCtx, cancel: cancel}
	g.run = run
	g.store.Commit(
		store.SetIsRacing{Racing: true},
		store.SetIsPaused{Paused: false},
		store.SetCurrentRound{Index: -1},
	)
	return run, len(st.RaceSchedule), nil
}

// endRun clears the racing flags if run is still the active run.
func (g *Game) endRun(run *raceRun) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.run != run {
		return false
	}
	g.run = nil
	g.store.Commit(store.SetIsRacing{Racing: false}, store.SetIsPaused{Paused: false})
	return true
}

// withRun runs fn under the game lock if run has not been abandoned.
func (g *Game) withRun(run *raceRun, fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.run != run {
		return errAbandoned
	}
	return fn()
}

func (g *Game) commit(run *raceRun, mutations ...store.Mutation) error {
	return g.withRun(run, func() error {
		g.store.Commit(mutations...)
		return nil
	})
}

func (g *Game) runRounds(run *raceRun, total int) error {
	for i := range total {
		round, ok := g.store.Snapshot().RoundAt(i)
		if !ok {
			return fmt.Errorf("round %d missing from schedule", i+1)
		}
		if round.IsCompleted {
			g.logger.Debug("Skipping completed round", "round", round.RoundNumber)
			continue
		}

		if err := g.pacer.wait(run.ctx, g.timing.ResetDelay); err != nil {
			return err
		}
		if err := g.commit(run, store.SetCurrentRound{Index: i}); err != nil {
			return err
		}
		if err := g.pacer.wait(run.ctx, g.timing.SettleDelay); err != nil {
			return err
		}
		if err := g.runRound(run, i); err != nil {
			return err
		}
		if err := g.pacer.wait(run.ctx, g.timing.RoundDelay); err != nil {
			return err
		}
	}
	return nil
}

// runRound computes a round's results up front so front ends can animate it,
// waits for the round to play out, then completes it.
func (g *Game) runRound(run *raceRun, index int) error {
	var round race.Round
	var results []race.Result

	err := g.withRun(run, func() error {
		r, ok := g.store.Snapshot().RoundAt(index)
		if !ok {
			return fmt.Errorf("round %d missing from schedule", index+1)
		}
		res, err := race.Compute(g.rng, r.Horses, r.Distance)
		if err != nil {
			return err
		}
		round, results = r, res
		g.store.Commit(store.SetRoundResults{RoundIndex: index, Results: results})
		return nil
	})
	if err != nil {
		return gameerr.RaceExecution(err, "Round %d failed", index+1)
	}

	logger := g.logger.With("round", round.RoundNumber, "distance", round.Distance)
	duration := race.Duration(results, g.timing.AnimationSpeedMultiplier)
	logger.Debug("Round running", "duration", duration)

	if err := g.pacer.wait(run.ctx, duration); err != nil {
		return gameerr.RaceExecution(err, "Round %d failed", index+1)
	}

	lines := race.FormatResults(round.RoundNumber, round.Distance, results)
	if err := g.commit(run, store.CompleteRound{RoundIndex: index, Lines: lines}); err != nil {
		return gameerr.RaceExecution(err, "Round %d failed", index+1)
	}

	if winner, ok := race.Winner(results); ok {
		logger.Info("Round complete", "winner", winner.Horse.Name, "time", fmt.Sprintf("%.2fs", winner.Time))
	}
	return nil
}
