// Package cli implements the ecotrip command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/history"
	"github.com/rshade/ecotrip/internal/logging"
	"github.com/rshade/ecotrip/internal/tui"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// app carries per-invocation state from the root PersistentPreRunE to the
// subcommands.
type app struct {
	debug      bool
	homeDir    string
	configFile string

	cfg       *config.Config
	loadErr   error
	logger    zerolog.Logger
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the ecotrip CLI.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "ecotrip",
		Short:         "Compare the carbon footprint of travel modes",
		Long:          "ecotrip scores walking, cycling, public transport, driving and flying for a trip by their CO2 emissions.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.cleanup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default <home>/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.homeDir, "home", "", "ecotrip home directory (default $ECOTRIP_HOME or ~/.ecotrip)")

	cmd.AddCommand(
		newCompareCmd(a),
		newHistoryCmd(a),
		newBatchCmd(a),
		newModesCmd(a),
		newEquivalentsCmd(a),
		newThemeCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

const rootCmdExample = `  # Compare travel modes for a 12 km commute
  ecotrip compare --distance 12 --purpose daily --from Home --to Office

  # Same, as JSON without saving to history
  ecotrip compare --distance 12 --purpose daily --output json --no-save

  # Open the interactive form
  ecotrip compare --interactive

  # Show recent trips
  ecotrip history

  # Evaluate a YAML file of trips
  ecotrip batch --file trips.yaml

  # Put 2.5 tonnes of CO2 in perspective
  ecotrip equivalents 2.5 --unit t

  # Switch to the light theme
  ecotrip theme light`

// setup loads configuration and builds the logger for this invocation.
func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, config.LoadOptions{HomeDir: a.homeDir, ConfigFile: a.configFile})
	a.cfg = cfg
	a.loadErr = err

	loggingCfg := cfg.Logging
	if a.debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	a.logResult = &result
	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	traceID := logging.GetOrGenerateTraceID(ctx)
	a.logger = logging.ComponentLogger(result.Logger, "cli").With().Str("trace_id", traceID).Logger()
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = a.logger.WithContext(ctx)
	cmd.SetContext(ctx)

	if err != nil {
		a.logger.Warn().Err(err).Msg("config file could not be loaded, using defaults")
	}
	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("home", cfg.Dir()).
		Msg("command started")
	return nil
}

func (a *app) cleanup(cmd *cobra.Command) error {
	a.logger.Debug().Str("command", cmd.CommandPath()).Msg("command finished")
	if a.logResult != nil {
		if err := a.logResult.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
	}
	return nil
}

// outputFormat returns the flag value, or the configured default.
func (a *app) outputFormat(flagValue string) (string, error) {
	format := flagValue
	if format == "" {
		format = a.cfg.Output.DefaultFormat
	}
	switch format {
	case config.FormatTable, config.FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want table or json)", format)
	}
}

// themeStore returns the file-backed theme preference.
func (a *app) themeStore() *config.ThemeStore {
	return config.NewFileThemeStore(a.cfg.ThemePath())
}

// renderer builds a renderer for the stored theme and configured unit.
func (a *app) renderer() *tui.Renderer {
	return tui.NewRenderer(a.themeStore().Get(), tui.ViewOptions{
		Unit:          a.cfg.Output.DisplayUnit,
		Equivalencies: a.cfg.Output.Equivalencies,
	})
}

// historyStore opens the configured history backend. The returned close
// func must be called when done.
func (a *app) historyStore(ctx context.Context) (*history.Store, func(), error) {
	noop := func() {}
	path := a.cfg.HistoryPath()

	switch a.cfg.History.Backend {
	case config.BackendMemory:
		return history.NewStore(&history.MemoryBackend{}), noop, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, noop, fmt.Errorf("creating history directory: %w", err)
		}
		backend, err := history.OpenSQLiteBackend(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return history.NewStore(backend), func() { _ = backend.Close() }, nil

	default:
		backend, err := history.NewFileBackend(path)
		if err != nil {
			return nil, noop, err
		}
		return history.NewStore(backend), noop, nil
	}
}
