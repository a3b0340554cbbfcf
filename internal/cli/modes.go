package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/modes"
)

func newModesCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List travel modes and their emission factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := a.outputFormat(output)
			if err != nil {
				return err
			}
			defs := modes.All()
			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), defs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer().RenderModes(defs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")
	return cmd
}
