package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/horserace/internal/store"
)

const pollStep = 100 * time.Millisecond

// advanceUntilDone steps the mock clock one poll interval at a time until the
// wait returns, and reports how many steps it took.
func advanceUntilDone(t *testing.T, ctx context.Context, clock *quartz.Mock, done <-chan error) int {
	t.Helper()
	for steps := 0; ; steps++ {
		select {
		case err := <-done:
			require.NoError(t, err)
			return steps
		default:
		}
		require.Less(t, steps, 200, "wait never completed")
		clock.Advance(pollStep).MustWait(ctx)
		time.Sleep(time.Millisecond)
	}
}

func TestPacerWait(t *testing.T) {
	t.Run("waits for the full duration", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		mClock := quartz.NewMock(t)
		p := &pacer{clock: mClock, poll: pollStep, gate: store.New()}
		start := mClock.Now()

		done := make(chan error, 1)
		go func() { done <- p.wait(ctx, 500*time.Millisecond) }()

		advanceUntilDone(t, ctx, mClock, done)
		assert.GreaterOrEqual(t, mClock.Since(start), 500*time.Millisecond)
	})

	t.Run("zero duration returns immediately", func(t *testing.T) {
		p := &pacer{clock: quartz.NewMock(t), poll: pollStep, gate: store.New()}
		require.NoError(t, p.wait(context.Background(), 0))
	})

	t.Run("paused time does not count", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s := store.New()
		s.Commit(store.SetIsRacing{Racing: true}, store.SetIsPaused{Paused: true})

		mClock := quartz.NewMock(t)
		p := &pacer{clock: mClock, poll: pollStep, gate: s}

		done := make(chan error, 1)
		go func() { done <- p.wait(ctx, 500*time.Millisecond) }()

		for range 10 {
			mClock.Advance(pollStep).MustWait(ctx)
		}
		time.Sleep(10 * time.Millisecond)
		select {
		case <-done:
			t.Fatal("wait finished while paused")
		default:
		}

		s.Commit(store.SetIsPaused{Paused: false})
		steps := advanceUntilDone(t, ctx, mClock, done)
		assert.GreaterOrEqual(t, steps, 5)
	})

	t.Run("cancellation while paused", func(t *testing.T) {
		s := store.New()
		s.Commit(store.SetIsRacing{Racing: true}, store.SetIsPaused{Paused: true})
		p := &pacer{clock: quartz.NewMock(t), poll: pollStep, gate: s}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- p.wait(ctx, time.Second) }()

		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("wait ignored cancellation")
		}
	})

	t.Run("cancellation while running", func(t *testing.T) {
		p := &pacer{clock: quartz.NewReal(), poll: pollStep, gate: store.New()}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := p.wait(ctx, time.Hour)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestTimingValidate(t *testing.T) {
	require.NoError(t, DefaultTiming().Validate())

	bad := DefaultTiming()
	bad.AnimationSpeedMultiplier = 0
	assert.Error(t, bad.Validate())

	bad = DefaultTiming()
	bad.PollInterval = 0
	assert.Error(t, bad.Validate())

	bad = DefaultTiming()
	bad.RoundDelay = -time.Second
	assert.Error(t, bad.Validate())
}
