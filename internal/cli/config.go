package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ecotrip/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ecotrip configuration",
	}
	cmd.AddCommand(
		newConfigInitCmd(a),
		newConfigShowCmd(a),
		newConfigValidateCmd(a),
	)
	return cmd
}

// newConfigInitCmd creates the config init command.
func newConfigInitCmd(a *app) *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a configuration file with default values in the ecotrip home
directory. With --project, creates .ecotrip/config.yaml in the current
directory instead, together with a .gitignore that keeps history and theme
files out of version control. Project settings override global ones per
top-level section.`,
		Example: `  # Create global configuration
  ecotrip config init

  # Create project-local configuration
  ecotrip config init --project

  # Overwrite an existing file
  ecotrip config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				return initProjectConfig(cmd, force)
			}
			path, err := config.InitGlobal(a.cfg.Dir(), force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create .ecotrip/config.yaml in the current directory")
	return cmd
}

func initProjectConfig(cmd *cobra.Command, force bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}
	path, created, err := config.InitProject(wd, force)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Created .gitignore to protect user-specific data\n")
	}
	return nil
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Prints the configuration after merging defaults, config files and ECOTRIP_* environment variables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.cfg.ConfigPath(), data)
			return nil
		},
	}
}

// newConfigValidateCmd creates the config validate command.
func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Checks that the configuration file parses and that every value is
supported: output format and display unit, history backend, batch
settings and logging level and format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.loadErr != nil {
				return fmt.Errorf("configuration could not be loaded: %w", a.loadErr)
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration is valid\n")
			return nil
		},
	}
}
