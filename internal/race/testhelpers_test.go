package race

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/horserace/internal/horse"
	"github.com/lox/horserace/internal/randutil"
)

func testRoster(t *testing.T, seed int64) []horse.Horse {
	t.Helper()
	horses, err := horse.Generate(randutil.New(seed), horse.DefaultPools())
	require.NoError(t, err)
	return horses
}
