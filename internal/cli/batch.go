package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/engine/batch"
	"github.com/rshade/ecotrip/internal/logging"
)

// errBatchFailures is returned when at least one trip in a batch fails.
var errBatchFailures = errors.New("some trips could not be evaluated")

type batchFlags struct {
	file        string
	output      string
	concurrency int
}

func newBatchCmd(a *app) *cobra.Command {
	var f batchFlags

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate many trips from a YAML file",
		Long: `Evaluates every trip listed in a YAML file concurrently.

The file holds a list of trips:

  trips:
    - from: Home
      to: Office
      distance_km: 12
      purpose: daily
    - distance_km: 450
      purpose: long

A trip that fails validation is reported on its own; the rest are still
evaluated. The command exits non-zero when any trip failed.`,
		Example: `  ecotrip batch --file trips.yaml
  ecotrip batch --file trips.yaml --output json --concurrency 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, a, f)
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "YAML file of trips (required)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output format: table or json (default from config)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", -1, "trips evaluated at once, 0 for one per CPU (default from config)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runBatch(cmd *cobra.Command, a *app, f batchFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := a.outputFormat(f.output)
	if err != nil {
		return err
	}

	trips, err := batch.LoadTrips(f.file)
	if err != nil {
		return err
	}

	concurrency := f.concurrency
	if concurrency < 0 {
		concurrency = a.cfg.Batch.Concurrency
	}
	evaluator, err := batch.NewEvaluator(concurrency, a.cfg.Batch.CacheSize)
	if err != nil {
		return err
	}
	if format != config.FormatJSON && isTerminal(os.Stderr) {
		stderr := cmd.ErrOrStderr()
		evaluator.WithProgressCallback(func(s batch.ProgressSnapshot) {
			fmt.Fprint(stderr, progressLine(s))
		})
	}

	results, err := evaluator.Evaluate(ctx, trips)
	if err != nil {
		return err
	}

	stats := evaluator.Stats()
	failed := countFailed(results)
	log.Info().
		Int("trips", len(results)).
		Int("failed", failed).
		Int64("memo_hits", stats.Hits).
		Int64("memo_misses", stats.Misses).
		Msg("batch evaluated")

	if format == config.FormatJSON {
		if err = writeJSON(cmd.OutOrStdout(), newBatchOutput(results)); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), a.renderer().RenderBatch(results))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errBatchFailures, failed, len(results))
	}
	return nil
}

func countFailed(results []batch.Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}

// batchResultOutput is the JSON form of one batch result.
type batchResultOutput struct {
	Index  int            `json:"index"`
	Trip   batch.Trip     `json:"trip"`
	Result *compareOutput `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func newBatchOutput(results []batch.Result) []batchResultOutput {
	out := make([]batchResultOutput, 0, len(results))
	for _, r := range results {
		item := batchResultOutput{Index: r.Index, Trip: r.Trip}
		if r.OK() {
			cmp := newCompareOutput(*r.Comparison, r.Trip.From, r.Trip.To)
			item.Result = &cmp
		} else {
			item.Error = r.Err.Error()
		}
		out = append(out, item)
	}
	return out
}

// progressLine renders one carriage-return progress update. The final update
// ends the line.
func progressLine(s batch.ProgressSnapshot) string {
	line := fmt.Sprintf("\rEvaluated %d/%d trips (%.0f%%)", s.ProcessedItems, s.TotalItems, s.PercentComplete)
	if s.Complete {
		return line + "\n"
	}
	if s.EstimatedRemaining > 0 {
		line += fmt.Sprintf(", ~%s left", s.EstimatedRemaining.Round(time.Second))
	}
	return line
}
