package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		output string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent trips",
		Long: fmt.Sprintf(`Lists the %d most recent trip comparisons, newest first.

History that cannot be read is shown as empty.`, history.MaxRecords),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, a, output)
		},
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format: table or json (default from config)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget all recent trips",
		Long:  "Removes every remembered trip. Asks for confirmation unless --yes is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryClear(cmd, a, yes)
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "clear without asking for confirmation")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show recent trips",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runHistoryList(cmd, a, output)
			},
		},
		clearCmd,
	)
	return cmd
}

func runHistoryList(cmd *cobra.Command, a *app, output string) error {
	format, err := a.outputFormat(output)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, closeStore, err := a.historyStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	records := store.Recent(ctx)
	if format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), records)
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.renderer().RenderHistory(records))
	return nil
}

func runHistoryClear(cmd *cobra.Command, a *app, yes bool) error {
	if !yes {
		answer := Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), isTerminal(os.Stdin), "Clear all recent trips?")
		if !answer.Accepted {
			fmt.Fprintln(cmd.OutOrStdout(), "History not cleared; pass --yes to clear without confirmation")
			return nil
		}
	}

	ctx := cmd.Context()
	store, closeStore, err := a.historyStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err = store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
	return nil
}
