package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOutputMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		plain       bool
		interactive bool
		stdoutTTY   bool
		stdinTTY    bool
		env         map[string]string
		want        OutputMode
	}{
		{name: "plain flag wins", plain: true, interactive: true, stdoutTTY: true, stdinTTY: true, want: OutputModePlain},
		{name: "piped stdout", interactive: true, stdinTTY: true, want: OutputModePlain},
		{name: "dumb terminal", interactive: true, stdoutTTY: true, stdinTTY: true,
			env: map[string]string{"TERM": "dumb"}, want: OutputModePlain},
		{name: "interactive terminal", interactive: true, stdoutTTY: true, stdinTTY: true, want: OutputModeInteractive},
		{name: "NO_COLOR keeps the form", interactive: true, stdoutTTY: true, stdinTTY: true,
			env: map[string]string{"NO_COLOR": "1"}, want: OutputModeInteractive},
		{name: "NO_COLOR drops styling", stdoutTTY: true, stdinTTY: true,
			env: map[string]string{"NO_COLOR": "1"}, want: OutputModePlain},
		{name: "piped stdin", interactive: true, stdoutTTY: true, want: OutputModeStyled},
		{name: "styled terminal", stdoutTTY: true, want: OutputModeStyled},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			getenv := func(key string) string { return tt.env[key] }
			got := detectOutputMode(tt.plain, tt.interactive, tt.stdoutTTY, tt.stdinTTY, getenv)
			assert.Equal(t, tt.want, got)
		})
	}
}
