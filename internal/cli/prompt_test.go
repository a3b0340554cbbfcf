package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/ecotrip/internal/cli"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		interactive bool
		want        cli.PromptResult
	}{
		{name: "yes", input: "y\n", interactive: true, want: cli.PromptResult{Accepted: true}},
		{name: "long yes with spaces", input: "  YES \n", interactive: true, want: cli.PromptResult{Accepted: true}},
		{name: "no", input: "n\n", interactive: true, want: cli.PromptResult{}},
		{name: "empty defaults to no", input: "\n", interactive: true, want: cli.PromptResult{}},
		{name: "eof declines", input: "", interactive: true, want: cli.PromptResult{}},
		{name: "non-interactive never asks", input: "y\n", interactive: false, want: cli.PromptResult{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			got := cli.Confirm(&out, strings.NewReader(tt.input), tt.interactive, "Clear all recent trips?")
			assert.Equal(t, tt.want, got)
			if tt.interactive {
				assert.Contains(t, out.String(), "Clear all recent trips? [y/N]")
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}
