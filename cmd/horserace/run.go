package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/lox/horserace/cmd/horserace/shared"
	"github.com/lox/horserace/internal/report"
	"github.com/lox/horserace/internal/store"
)

type RunCmd struct {
	SessionFlags

	Output string `kong:"help='Write a transcript of the results to this file'"`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

func (c *RunCmd) Run() error {
	return c.run(context.Background())
}

func (c *RunCmd) run(parent context.Context) error {
	stdout, stderr := c.stdout, c.stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	s, err := newSession(c.SessionFlags, stderr)
	if err != nil {
		return err
	}

	ctx, stop := shared.SetupSignalHandler(parent, s.logger)
	defer stop()

	if err := s.game.GenerateHorses(); err != nil {
		return err
	}
	if err := s.game.GenerateSchedule(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	// Subscribers run inside game commits, so the send must give up once the
	// consumer is gone.
	events := make(chan store.Event)
	done := make(chan struct{})
	unsubscribe := s.game.Subscribe(store.SubscriberFunc(func(ev store.Event) {
		select {
		case events <- ev:
		case <-done:
		case <-gctx.Done():
		}
	}))
	defer unsubscribe()

	g.Go(func() error {
		defer close(done)
		return s.game.StartRace(gctx)
	})

	g.Go(func() error {
		for {
			select {
			case ev := <-events:
				if err := printProgress(stdout, ev); err != nil {
					return err
				}
			case <-done:
				return nil
			}
		}
	})

	raceErr := g.Wait()

	st := s.game.Snapshot()
	fmt.Fprintf(stdout, "\n%d of %d rounds completed (seed %d)\n",
		st.RaceSchedule.Completed(), len(st.RaceSchedule), s.seed)
	for _, line := range report.Standings(st) {
		fmt.Fprintln(stdout, line)
	}

	if c.Output != "" {
		if err := report.Save(c.Output, st, s.seed); err != nil {
			return err
		}
		s.logger.Info("Wrote transcript", "file", c.Output)
	}
	return raceErr
}

// printProgress prints the result lines of each round as it completes.
func printProgress(w io.Writer, ev store.Event) error {
	if !ev.Has(store.MutationCompleteRound) {
		return nil
	}
	round, ok := ev.State.CurrentRound()
	if !ok {
		return nil
	}
	lines := ev.State.RaceResults
	start := max(0, len(lines)-len(round.Results)-2)
	for _, line := range lines[start:] {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
