package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides are environment variables layered over the config file.
type EnvOverrides struct {
	Seed     *int64  `env:"HORSERACE_SEED"`
	Speed    float64 `env:"HORSERACE_SPEED"`
	LogLevel string  `env:"HORSERACE_LOG_LEVEL"`
}

// ApplyEnv overlays any HORSERACE_* variables that are set.
func (c *Config) ApplyEnv() error {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.Seed != nil {
		c.Seed = o.Seed
	}
	if o.Speed != 0 {
		c.Timing.AnimationSpeedMultiplier = o.Speed
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	return nil
}
