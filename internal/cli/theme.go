package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrip/internal/config"
)

const themeToggle = "toggle"

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "Show or change the display theme",
		Long: `Without an argument, prints the current theme. With light or dark, stores
that theme; toggle switches between them. The choice is kept across runs.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(config.ThemeLight), string(config.ThemeDark), themeToggle},
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.themeStore()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintf(out, "Theme: %s\n", store.Get())
				return nil
			}

			if args[0] == themeToggle {
				theme, err := store.Toggle()
				if err != nil {
					return fmt.Errorf("saving theme: %w", err)
				}
				fmt.Fprintf(out, "Theme set to %s\n", theme)
				return nil
			}

			theme, err := config.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err = store.Set(theme); err != nil {
				return fmt.Errorf("saving theme: %w", err)
			}
			fmt.Fprintf(out, "Theme set to %s\n", theme)
			return nil
		},
	}
}
