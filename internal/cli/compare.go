package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/history"
	"github.com/rshade/ecotrip/internal/logging"
	"github.com/rshade/ecotrip/internal/modes"
	"github.com/rshade/ecotrip/internal/tui"
)

// errDistanceRequired is returned when no distance is given and no form can be shown.
var errDistanceRequired = errors.New("--distance is required when not running interactively")

type compareFlags struct {
	distance    string
	purpose     string
	from        string
	to          string
	output      string
	noSave      bool
	interactive bool
}

func newCompareCmd(a *app) *cobra.Command {
	var f compareFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare travel modes for one trip",
		Long: `Scores every travel mode that makes sense for the trip by its CO2 emissions.

Modes are filtered by distance and purpose, ranked from lowest to highest
emission, and given a green score between 20 and 100. The trip is added to
the recent-trips history unless --no-save is given.`,
		Example: `  ecotrip compare --distance 12 --purpose daily --from Home --to Office
  ecotrip compare --distance 450 --purpose long --output json
  ecotrip compare --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, a, f)
		},
	}

	cmd.Flags().StringVar(&f.distance, "distance", "", "trip distance in kilometres")
	cmd.Flags().StringVar(&f.purpose, "purpose", string(modes.PurposeDaily),
		"trip purpose: daily, casual, work or long")
	cmd.Flags().StringVar(&f.from, "from", "", "origin label (default \"Start\")")
	cmd.Flags().StringVar(&f.to, "to", "", "destination label (default \"Destination\")")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output format: table or json (default from config)")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "do not add the trip to history")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "open the interactive form")
	return cmd
}

func runCompare(cmd *cobra.Command, a *app, f compareFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	purpose, err := modes.ParsePurpose(f.purpose)
	if err != nil {
		return err
	}

	if f.interactive || (f.distance == "" && tui.DetectOutputMode(false, true) == tui.OutputModeInteractive) {
		return runCompareInteractive(ctx, a, f, purpose)
	}
	if f.distance == "" {
		return errDistanceRequired
	}

	distance, err := engine.ParseDistance(f.distance)
	if err != nil {
		return err
	}
	format, err := a.outputFormat(f.output)
	if err != nil {
		return err
	}

	cmp := engine.Compare(distance, purpose)
	log.Debug().
		Float64("distance_km", distance).
		Str("purpose", string(purpose)).
		Int("modes", len(cmp.Evaluations)).
		Msg("trip evaluated")

	if !f.noSave {
		a.saveTrip(ctx, cmd.ErrOrStderr(), cmp, f.from, f.to)
	}

	if format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), newCompareOutput(cmp, f.from, f.to))
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.renderer().RenderComparison(cmp, f.from, f.to))
	return nil
}

// saveTrip adds cmp to history. Failures are reported and otherwise ignored.
func (a *app) saveTrip(ctx context.Context, stderr io.Writer, cmp engine.Comparison, from, to string) {
	if _, err := a.addToHistory(ctx, cmp, from, to); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("saving trip to history failed")
		fmt.Fprintf(stderr, "Warning: trip not saved to history: %v\n", err)
	}
}

func (a *app) addToHistory(ctx context.Context, cmp engine.Comparison, from, to string) ([]history.Record, error) {
	store, closeStore, err := a.historyStore(ctx)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return store.Add(ctx, history.NewRecord(cmp, from, to))
}

func runCompareInteractive(ctx context.Context, a *app, f compareFlags, purpose modes.Purpose) error {
	var recent []history.Record
	if store, closeStore, err := a.historyStore(ctx); err == nil {
		recent = store.Recent(ctx)
		closeStore()
	} else {
		logging.FromContext(ctx).Warn().Err(err).Msg("history unavailable")
	}

	themes := a.themeStore()
	opts := tui.CompareModelOptions{
		Theme: themes.Get(),
		View: tui.ViewOptions{
			Unit:          a.cfg.Output.DisplayUnit,
			Equivalencies: a.cfg.Output.Equivalencies,
		},
		Purpose:     purpose,
		Distance:    f.distance,
		From:        f.from,
		To:          f.to,
		Recent:      recent,
		ToggleTheme: themes.Toggle,
	}
	if !f.noSave {
		opts.Save = a.addToHistory
	}

	model := tui.NewCompareModel(ctx, opts)
	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interactive form: %w", err)
	}
	return nil
}

// compareOutput is the JSON form of a comparison.
type compareOutput struct {
	From         string                 `json:"from"`
	To           string                 `json:"to"`
	DistanceKm   float64                `json:"distance_km"`
	Purpose      modes.Purpose          `json:"purpose"`
	PurposeLabel string                 `json:"purpose_label"`
	TripType     engine.TripType        `json:"trip_type"`
	TripLabel    string                 `json:"trip_type_label"`
	Summary      string                 `json:"summary"`
	Modes        []modeOutput           `json:"modes"`
	Savings      []engine.TransitSaving `json:"savings,omitempty"`
}

type modeOutput struct {
	engine.ModeEvaluation

	Rank     int              `json:"rank"`
	Score    engine.ScoreInfo `json:"score"`
	BarRatio float64          `json:"bar_ratio"`
}

func newCompareOutput(cmp engine.Comparison, from, to string) compareOutput {
	out := compareOutput{
		From:         engine.EndpointLabel(from, engine.DefaultFromLabel),
		To:           engine.EndpointLabel(to, engine.DefaultToLabel),
		DistanceKm:   cmp.DistanceKm,
		Purpose:      cmp.Purpose,
		PurposeLabel: cmp.Purpose.Label(),
		TripType:     cmp.TripType,
		TripLabel:    cmp.TripType.Label(),
		Summary:      cmp.SummarySentence(),
		Modes:        make([]modeOutput, 0, len(cmp.Evaluations)),
		Savings:      cmp.Savings(),
	}
	for i, e := range cmp.Evaluations {
		out.Modes = append(out.Modes, modeOutput{
			ModeEvaluation: e,
			Rank:           i + 1,
			Score:          engine.ClassifyScore(e.GreenScore),
			BarRatio:       cmp.BarRatio(e),
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
