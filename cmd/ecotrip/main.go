// Command ecotrip compares the carbon footprint of travel modes.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/ecotrip/internal/cli"
	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/greenops"
	"github.com/rshade/ecotrip/internal/modes"
	"github.com/rshade/ecotrip/pkg/version"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitUsageError = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command with args and returns the process exit code.
func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps an error to an exit code. Invalid trip or amount input
// exits with exitUsageError; everything else with exitError.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, engine.ErrDistanceNotNumber),
		errors.Is(err, engine.ErrDistanceNotPositive),
		errors.Is(err, engine.ErrDistanceNotFinite),
		errors.Is(err, modes.ErrUnknownPurpose),
		errors.Is(err, greenops.ErrInvalidAmount),
		errors.Is(err, greenops.ErrInvalidUnit),
		errors.Is(err, greenops.ErrNegativeValue):
		return exitUsageError
	default:
		return exitError
	}
}
