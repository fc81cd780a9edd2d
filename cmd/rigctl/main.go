package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labforge/rigctl/internal/cli"
)

func main() {
	// Structured logs go to stderr so JSON output stays parseable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
