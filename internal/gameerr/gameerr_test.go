package gameerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	t.Run("constructors set stable codes", func(t *testing.T) {
		assert.Equal(t, CodeHorseGeneration, HorseGeneration("need %d", 20).Code)
		assert.Equal(t, CodeRaceSchedule, RaceSchedule("no horses").Code)
		assert.Equal(t, CodeRaceExecution, RaceExecution(nil, "boom").Code)
	})

	t.Run("errors.Is matches by code", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", RaceSchedule("Expected exactly %d horses, but found %d", 20, 3))

		assert.ErrorIs(t, err, ErrRaceSchedule)
		assert.NotErrorIs(t, err, ErrRaceExecution)
		assert.Equal(t, CodeRaceSchedule, CodeOf(err))
	})

	t.Run("execution errors wrap their cause", func(t *testing.T) {
		err := RaceExecution(context.Canceled, "Race execution failed")

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, "Race execution failed: context canceled", err.Error())
	})

	t.Run("message without cause", func(t *testing.T) {
		err := HorseGeneration("Insufficient colors: need %d, have %d", 20, 5)
		assert.Equal(t, "Insufficient colors: need 20, have 5", err.Error())
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
		assert.Equal(t, Code(""), CodeOf(nil))
	})
}
