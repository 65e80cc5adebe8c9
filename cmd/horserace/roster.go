package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/lox/horserace/internal/horse"
	"github.com/lox/horserace/internal/randutil"
)

type RosterCmd struct {
	Seed *int64 `kong:"help='Seed for a reproducible roster'"`

	stdout io.Writer `kong:"-"`
}

func (c *RosterCmd) Run() error {
	out := c.stdout
	if out == nil {
		out = os.Stdout
	}

	rng, seed := randutil.Seeded(c.Seed)
	horses, err := horse.Generate(rng, horse.DefaultPools())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Roster (seed %d)\n", seed)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tCONDITION")
	for _, h := range horses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", h.ID, h.Name, h.Color, h.Condition)
	}
	return w.Flush()
}
