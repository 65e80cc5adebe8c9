package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/horserace/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "horserace.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Nil(t, cfg.Seed)
	assert.Equal(t, game.DefaultTiming(), cfg.GameTiming())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultTiming(), cfg.GameTiming())
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
seed = 1234

timing {
  animation_speed_multiplier = 100
  reset_delay_ms             = 0
  settle_delay_ms            = 5
  round_delay_ms             = 250
}

log {
  level = "debug"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(1234), *cfg.Seed)
	assert.Equal(t, game.Timing{
		AnimationSpeedMultiplier: 100,
		ResetDelay:               0,
		SettleDelay:              5 * time.Millisecond,
		RoundDelay:               250 * time.Millisecond,
		PollInterval:             100 * time.Millisecond,
	}, cfg.GameTiming())
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
}

func TestLoadPartialFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `seed = 7`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(7), *cfg.Seed)
	assert.Equal(t, game.DefaultTiming(), cfg.GameTiming())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := Load(writeConfig(t, `timing {`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse HCL file")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := Load(writeConfig(t, `horses = 30`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode HCL")
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "invalid log level")

	cfg = Default()
	cfg.Timing.AnimationSpeedMultiplier = -1
	assert.ErrorContains(t, cfg.Validate(), "invalid timing")

	cfg = Default()
	cfg.Timing.RoundDelayMs = -5
	assert.Error(t, cfg.Validate())
}
