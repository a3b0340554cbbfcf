package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain prints unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled prints lipgloss-styled text.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInputTTY reports whether stdin is a terminal.
func IsInputTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// DetectOutputMode picks a mode from flags, the environment and the
// terminal. plain wins over everything. Interactive needs both stdin and
// stdout to be terminals. NO_COLOR only turns styling off; it does not
// prevent the interactive form.
func DetectOutputMode(plain, interactive bool) OutputMode {
	return detectOutputMode(plain, interactive, IsTTY(), IsInputTTY(), os.Getenv)
}

func detectOutputMode(plain, interactive, stdoutTTY, stdinTTY bool, getenv func(string) string) OutputMode {
	if plain || !stdoutTTY || getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if interactive && stdinTTY {
		return OutputModeInteractive
	}
	if getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	return OutputModeStyled
}
