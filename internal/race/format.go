package race

import "fmt"

// FormatResults renders a round for the cumulative results log: a header line,
// one line per finisher and a blank separator.
func FormatResults(roundNumber, distance int, results []Result) []string {
	lines := make([]string, 0, len(results)+2)
	lines = append(lines, fmt.Sprintf("Round %d (%dm):", roundNumber, distance))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%d. %s - %.2fs", r.Position, r.Horse.Name, r.Time))
	}
	return append(lines, "")
}
