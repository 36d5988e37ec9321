package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/thenoetrevino/todo/cmd"
	"github.com/thenoetrevino/todo/internal/cli"
	"github.com/thenoetrevino/todo/internal/config"
	"github.com/thenoetrevino/todo/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// CLI logs go to a file; stdout is reserved for command output
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}
	logFile, err := logging.Init(logging.Options{Dir: cfg.Logging.Dir, Level: cfg.Logging.Level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	} else {
		defer func() { _ = logFile.Close() }()
	}

	if err := cmd.Execute(ctx); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}
