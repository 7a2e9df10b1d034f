package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tilegrid/svgtile/internal/cli"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("SVGTILE_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if err := cli.Run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, "svgtile:", exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "svgtile:", err)
		os.Exit(1)
	}
}
