package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/ecotrip/internal/cli"
	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/greenops"
	"github.com/rshade/ecotrip/internal/modes"
	"github.com/rshade/ecotrip/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "ecotrip", root.Use)
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitOK},
		{name: "not a number", err: engine.ErrDistanceNotNumber, want: exitUsageError},
		{name: "wrapped non-positive", err: fmt.Errorf("trip 0: %w", engine.ErrDistanceNotPositive), want: exitUsageError},
		{name: "not finite", err: engine.ErrDistanceNotFinite, want: exitUsageError},
		{name: "unknown purpose", err: fmt.Errorf("%w: %q", modes.ErrUnknownPurpose, "x"), want: exitUsageError},
		{name: "bad unit", err: fmt.Errorf("amount 1 x: %w", greenops.ErrInvalidUnit), want: exitUsageError},
		{name: "amount not a number", err: greenops.ErrInvalidAmount, want: exitUsageError},
		{name: "generic", err: errors.New("disk full"), want: exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRun(t *testing.T) {
	t.Setenv("ECOTRIP_HOME", t.TempDir())
	t.Setenv("ECOTRIP_LOG_LEVEL", "error")

	assert.Equal(t, exitOK, run([]string{"modes", "--output", "json"}))
	assert.Equal(t, exitUsageError, run([]string{"compare", "--distance=0", "--no-save"}))
	assert.Equal(t, exitError, run([]string{"no-such-command"}))
}
