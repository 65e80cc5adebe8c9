package race

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/horserace/internal/horse"
)

func TestFormatResults(t *testing.T) {
	results := []Result{
		{Horse: horse.Horse{Name: "Thunder Bolt"}, Position: 1, Time: 61.234, Distance: 1200},
		{Horse: horse.Horse{Name: "Silver Arrow"}, Position: 2, Time: 70.5, Distance: 1200},
	}

	lines := FormatResults(1, 1200, results)

	assert.Equal(t, []string{
		"Round 1 (1200m):",
		"1. Thunder Bolt - 61.23s",
		"2. Silver Arrow - 70.50s",
		"",
	}, lines)
}
