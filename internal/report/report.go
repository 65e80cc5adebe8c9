// Package report renders a finished session as a plain text transcript.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/horserace/internal/race"
	"github.com/lox/horserace/internal/standings"
	"github.com/lox/horserace/internal/store"
)

// Transcript renders the roster summary, the winners of each completed round
// and the full results log.
func Transcript(st store.State, seed int64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Horse race results (seed %d)\n", seed)
	fmt.Fprintf(&b, "Rounds completed: %d/%d\n\n", st.RaceSchedule.Completed(), len(st.RaceSchedule))

	for _, round := range st.RaceSchedule {
		if !round.IsCompleted {
			continue
		}
		if winner, ok := race.Winner(round.Results); ok {
			fmt.Fprintf(&b, "Round %d winner: %s (%.2fs)\n", round.RoundNumber, winner.Horse.Name, winner.Time)
		}
	}
	if st.RaceSchedule.Completed() > 0 {
		b.WriteString("\nStandings:\n")
		for _, line := range Standings(st) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for _, line := range st.RaceResults {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Standings renders one line per horse that has started a completed round,
// best first.
func Standings(st store.State) []string {
	ranked := standings.FromSchedule(st.RaceSchedule).Ranked()
	lines := make([]string, len(ranked))
	for i, e := range ranked {
		lines[i] = fmt.Sprintf("%d. %s - %d wins, %d podiums, %d starts, avg position %.2f, avg speed %.2fm/s",
			i+1, e.Horse.Name, e.Wins, e.Podiums, e.Starts, e.MeanPosition(), e.MeanSpeed())
	}
	return lines
}

// WriteFile writes data to filename through a temporary file in the same
// directory and a rename, so readers never observe a partial transcript.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmpFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Save renders the transcript for st and writes it to filename.
func Save(filename string, st store.State, seed int64) error {
	return WriteFile(filename, []byte(Transcript(st, seed)), 0o644)
}
