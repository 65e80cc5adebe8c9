// Package config loads the optional HCL configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/horserace/internal/game"
)

// Config is the complete configuration file.
type Config struct {
	Seed   *int64          `hcl:"seed,optional"`
	Timing *TimingSettings `hcl:"timing,block"`
	Log    *LogSettings    `hcl:"log,block"`
}

// TimingSettings mirrors game.Timing with millisecond fields.
type TimingSettings struct {
	AnimationSpeedMultiplier float64 `hcl:"animation_speed_multiplier,optional"`
	ResetDelayMs             int     `hcl:"reset_delay_ms,optional"`
	SettleDelayMs            int     `hcl:"settle_delay_ms,optional"`
	RoundDelayMs             int     `hcl:"round_delay_ms,optional"`
	PollIntervalMs           int     `hcl:"poll_interval_ms,optional"`
}

// LogSettings controls logging.
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	t := game.DefaultTiming()
	return &Config{
		Timing: &TimingSettings{
			AnimationSpeedMultiplier: t.AnimationSpeedMultiplier,
			ResetDelayMs:             int(t.ResetDelay / time.Millisecond),
			SettleDelayMs:            int(t.SettleDelay / time.Millisecond),
			RoundDelayMs:             int(t.RoundDelay / time.Millisecond),
			PollIntervalMs:           int(t.PollInterval / time.Millisecond),
		},
		Log: &LogSettings{Level: "info"},
	}
}

// Load reads filename. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Timing == nil {
		c.Timing = defaults.Timing
	} else {
		if c.Timing.AnimationSpeedMultiplier == 0 {
			c.Timing.AnimationSpeedMultiplier = defaults.Timing.AnimationSpeedMultiplier
		}
		// Delays may legitimately be zero, so only the poll interval is defaulted.
		if c.Timing.PollIntervalMs == 0 {
			c.Timing.PollIntervalMs = defaults.Timing.PollIntervalMs
		}
	}

	if c.Log == nil {
		c.Log = defaults.Log
	} else if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if err := c.GameTiming().Validate(); err != nil {
		return fmt.Errorf("invalid timing: %w", err)
	}
	return nil
}

// GameTiming converts the timing block for the game package.
func (c *Config) GameTiming() game.Timing {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return game.Timing{
		AnimationSpeedMultiplier: c.Timing.AnimationSpeedMultiplier,
		ResetDelay:               ms(c.Timing.ResetDelayMs),
		SettleDelay:              ms(c.Timing.SettleDelayMs),
		RoundDelay:               ms(c.Timing.RoundDelayMs),
		PollInterval:             ms(c.Timing.PollIntervalMs),
	}
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
