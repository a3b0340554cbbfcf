package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/modes"
)

func TestEvaluator_Evaluate(t *testing.T) {
	t.Parallel()

	t.Run("results keep input order", func(t *testing.T) {
		t.Parallel()
		trips := make([]Trip, 40)
		for i := range trips {
			trips[i] = Trip{DistanceKm: float64(i + 1), Purpose: "casual"}
		}

		e, err := NewEvaluator(4, DefaultCacheSize)
		require.NoError(t, err)

		results, err := e.Evaluate(context.Background(), trips)
		require.NoError(t, err)
		require.Len(t, results, len(trips))
		for i, r := range results {
			assert.Equal(t, i, r.Index)
			require.True(t, r.OK(), "trip %d", i)
			assert.InDelta(t, float64(i+1), r.Comparison.DistanceKm, 1e-9)
			assert.Equal(t, engine.Evaluate(float64(i+1), modes.PurposeCasual), r.Comparison.Evaluations)
		}
	})

	t.Run("invalid trips fail alone", func(t *testing.T) {
		t.Parallel()
		trips := []Trip{
			{From: "A", To: "B", DistanceKm: 5, Purpose: "daily"},
			{DistanceKm: -3, Purpose: "daily"},
			{DistanceKm: 8, Purpose: "holiday"},
			{DistanceKm: 300, Purpose: "long"},
		}

		e, err := NewEvaluator(2, DefaultCacheSize)
		require.NoError(t, err)

		results, err := e.Evaluate(context.Background(), trips)
		require.NoError(t, err)
		require.Len(t, results, 4)

		assert.True(t, results[0].OK())
		require.ErrorIs(t, results[1].Err, engine.ErrDistanceNotPositive)
		assert.Contains(t, results[1].Err.Error(), "trip 2")
		assert.Nil(t, results[1].Comparison)
		require.ErrorIs(t, results[2].Err, modes.ErrUnknownPurpose)
		assert.True(t, results[3].OK())
		assert.Equal(t, "A", results[0].Trip.From)
	})

	t.Run("repeated queries hit the memo", func(t *testing.T) {
		t.Parallel()
		trips := []Trip{
			{DistanceKm: 12, Purpose: "daily"},
			{DistanceKm: 12, Purpose: "daily"},
			{DistanceKm: 12, Purpose: "Daily-Commute"},
			{DistanceKm: 12, Purpose: "work"},
		}

		e, err := NewEvaluator(1, DefaultCacheSize)
		require.NoError(t, err)

		results, err := e.Evaluate(context.Background(), trips)
		require.NoError(t, err)
		assert.Equal(t, Stats{Hits: 2, Misses: 2}, e.Stats())
		assert.Equal(t, results[0].Comparison.Evaluations, results[1].Comparison.Evaluations)

		// Memoized results do not share backing arrays.
		results[1].Comparison.Evaluations[0].Label = "changed"
		assert.NotEqual(t, "changed", results[0].Comparison.Evaluations[0].Label)
	})

	t.Run("progress reaches total", func(t *testing.T) {
		t.Parallel()
		trips := make([]Trip, 10)
		for i := range trips {
			trips[i] = Trip{DistanceKm: 1, Purpose: "daily"}
		}
		trips[3].DistanceKm = 0

		var mu sync.Mutex
		var calls int
		var last ProgressSnapshot
		e, err := NewEvaluator(3, DefaultCacheSize)
		require.NoError(t, err)
		e.WithProgressCallback(func(s ProgressSnapshot) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			if s.ProcessedItems > last.ProcessedItems {
				last = s
			}
		})

		_, err = e.Evaluate(context.Background(), trips)
		require.NoError(t, err)
		assert.Equal(t, 10, calls)
		assert.Equal(t, 10, last.ProcessedItems)
		assert.Equal(t, 1, last.FailedItems)
		assert.InDelta(t, 100.0, last.PercentComplete, 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		e, err := NewEvaluator(0, DefaultCacheSize)
		require.NoError(t, err)
		assert.Positive(t, e.Concurrency())

		_, err = e.Evaluate(context.Background(), nil)
		require.ErrorIs(t, err, ErrNoTrips)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		e, err := NewEvaluator(1, DefaultCacheSize)
		require.NoError(t, err)
		_, err = e.Evaluate(ctx, []Trip{{DistanceKm: 1, Purpose: "daily"}})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewEvaluator_InvalidCacheSize(t *testing.T) {
	t.Parallel()
	_, err := NewEvaluator(1, 0)
	require.ErrorIs(t, err, ErrInvalidCacheSize)
}

func TestParseTrips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []Trip
		wantErr string
	}{
		{
			name: "valid",
			input: `
trips:
  - from: Home
    to: Office
    distance_km: 12
    purpose: daily
  - distance_km: 450.5
    purpose: long
`,
			want: []Trip{
				{From: "Home", To: "Office", DistanceKm: 12, Purpose: "daily"},
				{DistanceKm: 450.5, Purpose: "long"},
			},
		},
		{name: "empty document", input: "", wantErr: ErrNoTrips.Error()},
		{name: "empty list", input: "trips: []\n", wantErr: ErrNoTrips.Error()},
		{name: "unknown field", input: "trips:\n  - distance: 3\n", wantErr: "parsing trips"},
		{name: "bad number", input: "trips:\n  - distance_km: far\n", wantErr: "parsing trips"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTrips(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadTrips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "trips.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trips:\n  - distance_km: 3\n    purpose: casual\n"), 0o600))

	trips, err := LoadTrips(path)
	require.NoError(t, err)
	assert.Equal(t, []Trip{{DistanceKm: 3, Purpose: "casual"}}, trips)

	_, err = LoadTrips(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading trip file")
}

func TestProgress(t *testing.T) {
	t.Parallel()

	p := NewProgress(4)
	snap := p.Snapshot()
	assert.InDelta(t, 0.0, snap.PercentComplete, 1e-9)
	assert.False(t, snap.Complete)
	assert.Zero(t, snap.EstimatedRemaining)

	p.AddProcessed(false)
	time.Sleep(2 * time.Millisecond)
	p.AddProcessed(true)
	snap = p.Snapshot()
	assert.InDelta(t, 50.0, snap.PercentComplete, 1e-9)
	assert.False(t, snap.Complete)
	assert.Positive(t, snap.EstimatedRemaining)

	p.AddProcessed(false)
	p.AddProcessed(false)

	snap = p.Snapshot()
	assert.True(t, snap.Complete)
	assert.Zero(t, snap.EstimatedRemaining)
	assert.Equal(t, 4, snap.TotalItems)
	assert.Equal(t, 4, snap.ProcessedItems)
	assert.Equal(t, 1, snap.FailedItems)
	assert.InDelta(t, 100.0, snap.PercentComplete, 1e-9)
}
