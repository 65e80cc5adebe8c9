package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/horserace/internal/gameerr"
	"github.com/lox/horserace/internal/horse"
	"github.com/lox/horserace/internal/randutil"
)

func TestBuildSchedule(t *testing.T) {
	t.Run("six rounds of ten horses at fixed distances", func(t *testing.T) {
		horses := testRoster(t, 1)

		schedule, err := BuildSchedule(randutil.New(2), horses)
		require.NoError(t, err)
		require.Len(t, schedule, RoundCount)

		var distances []int
		for i, round := range schedule {
			assert.Equal(t, i+1, round.RoundNumber)
			assert.Len(t, round.Horses, HorsesPerRound)
			assert.False(t, round.IsCompleted)
			assert.Nil(t, round.Results)
			distances = append(distances, round.Distance)

			seen := map[string]bool{}
			for _, h := range round.Horses {
				assert.False(t, seen[h.ID], "horse %s selected twice in round %d", h.ID, round.RoundNumber)
				seen[h.ID] = true
			}
		}
		assert.Equal(t, []int{1200, 1400, 1600, 1800, 2000, 2200}, distances)
	})

	t.Run("does not mutate the roster", func(t *testing.T) {
		horses := testRoster(t, 5)
		snapshot := append([]horse.Horse(nil), horses...)

		for seed := int64(0); seed < 5; seed++ {
			_, err := BuildSchedule(randutil.New(seed), horses)
			require.NoError(t, err)
		}
		assert.Equal(t, snapshot, horses)
	})

	t.Run("rounds draw independently", func(t *testing.T) {
		horses := testRoster(t, 8)
		schedule, err := BuildSchedule(randutil.New(8), horses)
		require.NoError(t, err)

		appearances := 0
		for _, round := range schedule {
			appearances += len(round.Horses)
		}
		// 60 slots from a pool of 20 means some horses must repeat.
		assert.Equal(t, RoundCount*HorsesPerRound, appearances)
	})

	t.Run("no horses", func(t *testing.T) {
		schedule, err := BuildSchedule(randutil.New(1), nil)
		require.Error(t, err)
		assert.Nil(t, schedule)
		assert.ErrorIs(t, err, gameerr.ErrRaceSchedule)
		assert.Contains(t, err.Error(), "No horses available")
	})

	t.Run("wrong horse count", func(t *testing.T) {
		horses := testRoster(t, 1)[:12]
		schedule, err := BuildSchedule(randutil.New(1), horses)
		require.Error(t, err)
		assert.Nil(t, schedule)
		assert.ErrorIs(t, err, gameerr.ErrRaceSchedule)
		assert.Contains(t, err.Error(), "Expected exactly 20 horses, but found 12")
	})
}

func TestSelectRandom(t *testing.T) {
	horses := testRoster(t, 4)

	t.Run("returns a copy when the pool is small", func(t *testing.T) {
		small := horses[:3]
		got := SelectRandom(randutil.New(1), small, 10)
		assert.Equal(t, small, got)

		got[0].Name = "Changed"
		assert.NotEqual(t, "Changed", small[0].Name)
	})

	t.Run("selects distinct horses from the pool", func(t *testing.T) {
		got := SelectRandom(randutil.New(1), horses, 7)
		require.Len(t, got, 7)

		ids := map[string]bool{}
		for _, h := range got {
			ids[h.ID] = true
			assert.Contains(t, horses, h)
		}
		assert.Len(t, ids, 7)
	})
}

func TestScheduleClone(t *testing.T) {
	schedule, err := BuildSchedule(randutil.New(3), testRoster(t, 3))
	require.NoError(t, err)
	schedule[0].Results = []Result{{Position: 1, Time: 10}}

	clone := schedule.Clone()
	clone[0].Horses[0].Name = "Mutated"
	clone[0].Results[0].Time = 99
	clone[1].IsCompleted = true

	assert.NotEqual(t, "Mutated", schedule[0].Horses[0].Name)
	assert.Equal(t, 10.0, schedule[0].Results[0].Time)
	assert.False(t, schedule[1].IsCompleted)
	assert.Nil(t, Schedule(nil).Clone())
	assert.Equal(t, 1, clone.Completed())
}
