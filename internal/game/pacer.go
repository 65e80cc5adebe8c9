package game

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// pauseGate reports whether waits should be suspended, plus a channel that is
// closed on the next state change.
type pauseGate interface {
	PauseState() (paused bool, changed <-chan struct{})
}

// pacer implements pausable delays. Time spent paused does not count towards
// the delay and time already waited is never lost.
type pacer struct {
	clock quartz.Clock
	poll  time.Duration
	gate  pauseGate
}

// wait blocks for d of unpaused time, or until ctx is done.
func (p *pacer) wait(ctx context.Context, d time.Duration) error {
	remaining := d
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		paused, changed := p.gate.PauseState()
		if paused {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-changed:
				continue
			}
		}

		step := remaining
		if p.poll > 0 && p.poll < step {
			step = p.poll
		}
		start := p.clock.Now()
		timer := p.clock.NewTimer(step, "pacer")

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			remaining -= step
		case <-changed:
			timer.Stop()
			remaining -= min(p.clock.Since(start), step)
		}
	}
	return ctx.Err()
}
