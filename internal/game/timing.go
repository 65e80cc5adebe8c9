package game

import (
	"fmt"
	"time"
)

// Timing controls how fast a race plays out in real time.
type Timing struct {
	// AnimationSpeedMultiplier divides simulated race time into wall time.
	AnimationSpeedMultiplier float64

	ResetDelay   time.Duration // before each round is selected
	SettleDelay  time.Duration // between selecting a round and running it
	RoundDelay   time.Duration // after each round completes
	PollInterval time.Duration // longest uninterrupted sleep while waiting
}

// DefaultTiming returns the timing used by the interactive game.
func DefaultTiming() Timing {
	return Timing{
		AnimationSpeedMultiplier: 25,
		ResetDelay:               100 * time.Millisecond,
		SettleDelay:              50 * time.Millisecond,
		RoundDelay:               time.Second,
		PollInterval:             100 * time.Millisecond,
	}
}

// Validate rejects timings the pacer cannot honour.
func (t Timing) Validate() error {
	if t.AnimationSpeedMultiplier <= 0 {
		return fmt.Errorf("animation speed multiplier must be positive, got %v", t.AnimationSpeedMultiplier)
	}
	if t.ResetDelay < 0 || t.SettleDelay < 0 || t.RoundDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if t.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", t.PollInterval)
	}
	return nil
}
