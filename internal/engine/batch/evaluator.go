package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/logging"
	"github.com/rshade/ecotrip/internal/modes"
)

// DefaultCacheSize is the number of distinct queries memoized.
const DefaultCacheSize = 128

// ErrInvalidCacheSize is returned for a non-positive memo size.
var ErrInvalidCacheSize = errors.New("cache size must be positive")

// ProgressCallback is invoked after each trip finishes. It may be called
// from several goroutines at once.
type ProgressCallback func(snapshot ProgressSnapshot)

// Result is the outcome for one input trip. Exactly one of Comparison and
// Err is set.
type Result struct {
	Index      int
	Trip       Trip
	Comparison *engine.Comparison
	Err        error
}

// OK reports whether the trip was evaluated.
func (r Result) OK() bool {
	return r.Err == nil && r.Comparison != nil
}

// Stats counts memo lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

type memoKey struct {
	distanceKm float64
	purpose    modes.Purpose
}

// Evaluator scores trips concurrently.
type Evaluator struct {
	concurrency int
	memo        *lru.Cache[memoKey, engine.Comparison]
	onProgress  ProgressCallback

	hits   atomic.Int64
	misses atomic.Int64
}

// NewEvaluator creates an evaluator running at most concurrency trips at
// once (0 means one per CPU) with a memo of cacheSize entries.
func NewEvaluator(concurrency, cacheSize int) (*Evaluator, error) {
	if cacheSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCacheSize, cacheSize)
	}
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	memo, err := lru.New[memoKey, engine.Comparison](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating memo cache: %w", err)
	}
	return &Evaluator{concurrency: concurrency, memo: memo}, nil
}

// WithProgressCallback sets a progress callback.
func (e *Evaluator) WithProgressCallback(callback ProgressCallback) *Evaluator {
	e.onProgress = callback
	return e
}

// Concurrency returns the worker limit.
func (e *Evaluator) Concurrency() int {
	return e.concurrency
}

// Stats returns memo hit and miss counts since creation.
func (e *Evaluator) Stats() Stats {
	return Stats{Hits: e.hits.Load(), Misses: e.misses.Load()}
}

// Evaluate scores every trip. Results are in input order. Invalid trips
// carry their own error; the returned error is reserved for an empty input
// or a cancelled context.
func (e *Evaluator) Evaluate(ctx context.Context, trips []Trip) ([]Result, error) {
	if len(trips) == 0 {
		return nil, ErrNoTrips
	}

	log := logging.FromContext(ctx).With().Str("component", "batch").Logger()
	log.Debug().
		Int("trips", len(trips)).
		Int("concurrency", e.concurrency).
		Msg("batch evaluation started")

	results := make([]Result, len(trips))
	progress := NewProgress(len(trips))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, trip := range trips {
		i := i
		trip := trip
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := Result{Index: i, Trip: trip}
			cmp, err := e.evaluateTrip(trip)
			if err != nil {
				res.Err = fmt.Errorf("trip %d: %w", i+1, err)
				log.Debug().Int("trip", i+1).Err(err).Msg("trip rejected")
			} else {
				res.Comparison = &cmp
			}
			results[i] = res

			progress.AddProcessed(err != nil)
			if e.onProgress != nil {
				e.onProgress(progress.Snapshot())
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch evaluation cancelled: %w", err)
	}

	snap := progress.Snapshot()
	log.Debug().
		Int("failed", snap.FailedItems).
		Int64("memo_hits", e.hits.Load()).
		Dur("elapsed", snap.ElapsedTime).
		Msg("batch evaluation finished")

	return results, nil
}

func (e *Evaluator) evaluateTrip(trip Trip) (engine.Comparison, error) {
	if err := engine.ValidateDistance(trip.DistanceKm); err != nil {
		return engine.Comparison{}, err
	}
	purpose, err := modes.ParsePurpose(trip.Purpose)
	if err != nil {
		return engine.Comparison{}, err
	}

	key := memoKey{distanceKm: trip.DistanceKm, purpose: purpose}
	if cached, ok := e.memo.Get(key); ok {
		e.hits.Add(1)
		cached.Evaluations = slices.Clone(cached.Evaluations)
		return cached, nil
	}
	e.misses.Add(1)

	cmp := engine.Compare(trip.DistanceKm, purpose)
	e.memo.Add(key, cmp)
	cmp.Evaluations = slices.Clone(cmp.Evaluations)
	return cmp, nil
}
