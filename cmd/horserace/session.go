package main

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/horserace/cmd/horserace/shared"
	"github.com/lox/horserace/internal/config"
	"github.com/lox/horserace/internal/game"
	"github.com/lox/horserace/internal/randutil"
)

// SessionFlags are shared by the commands that play a game.
type SessionFlags struct {
	Config string  `kong:"default='horserace.hcl',help='Path to the HCL config file (optional)'"`
	Seed   *int64  `kong:"help='Seed for a reproducible game (defaults to config, then wall clock)'"`
	Speed  float64 `kong:"help='Animation speed multiplier override'"`
	Debug  bool    `kong:"help='Enable debug logging'"`
}

type session struct {
	cfg    *config.Config
	logger *log.Logger
	rng    *rand.Rand
	seed   int64
	game   *game.Game
}

// newSession loads the config, applies flag overrides and builds a game.
func newSession(flags SessionFlags, logOut io.Writer) (*session, error) {
	cfg, err := config.Load(flags.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if flags.Seed != nil {
		cfg.Seed = flags.Seed
	}
	if flags.Speed != 0 {
		cfg.Timing.AnimationSpeedMultiplier = flags.Speed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := shared.SetupLogger(logOut, cfg.LogLevel(), flags.Debug)
	rng, seed := randutil.Seeded(cfg.Seed)
	logger.Info("Starting session", "seed", seed, "speed", cfg.Timing.AnimationSpeedMultiplier)

	return &session{
		cfg:    cfg,
		logger: logger,
		rng:    rng,
		seed:   seed,
		game:   game.New(logger, rng, game.WithTiming(cfg.GameTiming())),
	}, nil
}
