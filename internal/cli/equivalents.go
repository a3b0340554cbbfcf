package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/greenops"
)

func newEquivalentsCmd(a *app) *cobra.Command {
	var (
		unit   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "equivalents <amount>",
		Short: "Express an amount of CO2 as everyday equivalents",
		Example: `  # What does a tonne of CO2 look like?
  ecotrip equivalents 1 --unit t

  # As JSON
  ecotrip equivalents 850 --unit g --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(output)
			if err != nil {
				return err
			}
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[0], greenops.ErrInvalidAmount)
			}
			kg, err := greenops.NormalizeToKg(amount, unit)
			if err != nil {
				return fmt.Errorf("amount %s %s: %w", args[0], unit, err)
			}
			out, err := greenops.Calculate(kg)
			if err != nil {
				return err
			}
			a.logger.Debug().Float64("kg", kg).Bool("empty", out.IsEmpty).Msg("equivalents calculated")

			w := cmd.OutOrStdout()
			if format == config.FormatJSON {
				return writeJSON(w, out)
			}
			if out.IsEmpty {
				fmt.Fprintf(w, "%s CO2e is too little to compare.\n", greenops.FormatKg(kg, "kg"))
				return nil
			}
			fmt.Fprintf(w, "%s CO2e is about:\n", greenops.FormatKg(kg, "kg"))
			for _, r := range out.Results {
				fmt.Fprintf(w, "  %s %s\n", r.FormattedValue, r.Label)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&unit, "unit", "u", "kg", "unit of the amount: g, kg, t or lb")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")
	return cmd
}
