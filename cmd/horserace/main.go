package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Run     RunCmd           `cmd:"" help:"Run a full game headless and print the results"`
	Play    PlayCmd          `cmd:"" default:"1" help:"Play interactively in the terminal"`
	Roster  RosterCmd        `cmd:"" help:"Generate and print a roster of horses"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("horserace"),
		kong.Description("Horse racing simulation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
