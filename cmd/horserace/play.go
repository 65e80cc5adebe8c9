package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lox/horserace/cmd/horserace/shared"
	"github.com/lox/horserace/internal/tui"
)

type PlayCmd struct {
	SessionFlags

	LogFile string `kong:"default='horserace.log',help='File to write logs to while the UI owns the terminal (empty to discard)'"`
}

func (c *PlayCmd) Run() error {
	var logOut io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	s, err := newSession(c.SessionFlags, logOut)
	if err != nil {
		return err
	}

	ctx, stop := shared.SetupSignalHandler(context.Background(), s.logger)
	defer stop()

	return tui.Run(ctx, s.game, s.logger)
}
