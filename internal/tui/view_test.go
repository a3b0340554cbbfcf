package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/engine/batch"
	"github.com/rshade/ecotrip/internal/history"
	"github.com/rshade/ecotrip/internal/modes"
)

func TestRenderBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ratio  float64
		width  int
		filled int
	}{
		{name: "empty", ratio: 0, width: 10, filled: 0},
		{name: "full", ratio: 1, width: 10, filled: 10},
		{name: "half", ratio: 0.5, width: 10, filled: 5},
		{name: "clamped high", ratio: 3, width: 4, filled: 4},
		{name: "clamped low", ratio: -1, width: 4, filled: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bar := RenderBar(tt.ratio, tt.width)
			assert.Equal(t, tt.filled, strings.Count(bar, barFilled))
			assert.Equal(t, tt.width-tt.filled, strings.Count(bar, barEmpty))
		})
	}
	assert.Empty(t, RenderBar(0.5, 0))
}

func TestRenderComparison(t *testing.T) {
	t.Parallel()

	r := NewRenderer(config.ThemeDark, ViewOptions{Unit: "kg", Equivalencies: true})

	t.Run("full comparison", func(t *testing.T) {
		t.Parallel()
		cmp := engine.Compare(12, modes.PurposeDaily)
		out := r.RenderComparison(cmp, "Home", "")

		assert.Contains(t, out, "Home → Destination")
		assert.Contains(t, out, "Medium trip")
		assert.Contains(t, out, "Daily commute")
		assert.Contains(t, out, cmp.SummarySentence())
		for _, e := range cmp.Evaluations {
			assert.Contains(t, out, e.Label)
		}
		assert.Contains(t, out, "greenest")
		assert.Contains(t, out, "CAR VS. PUBLIC TRANSPORT")
		assert.Contains(t, out, "Taking the bus instead of driving saves")
		assert.Contains(t, out, "1.044 kg CO2")
		assert.Contains(t, out, "Like driving")
	})

	t.Run("short trip without transit has no savings panel", func(t *testing.T) {
		t.Parallel()
		cmp := engine.Compare(0.5, modes.PurposeCasual)
		_, hasBus := cmp.Find(modes.Bus)
		require.False(t, hasBus)

		out := r.RenderComparison(cmp, "", "")
		assert.Contains(t, out, "Start → Destination")
		assert.NotContains(t, out, "CAR VS. PUBLIC TRANSPORT")
	})

	t.Run("empty evaluation set", func(t *testing.T) {
		t.Parallel()
		out := r.RenderComparison(engine.Comparison{DistanceKm: 1}, "A", "B")
		assert.Contains(t, out, "No travel modes apply")
	})

	t.Run("grams and no equivalencies", func(t *testing.T) {
		t.Parallel()
		gr := NewRenderer(config.ThemeLight, ViewOptions{Unit: "g"})
		out := gr.RenderComparison(engine.Compare(12, modes.PurposeDaily), "A", "B")
		assert.Contains(t, out, "1,044 g CO2")
		assert.NotContains(t, out, "Like driving")
	})
}

func TestRenderHistory(t *testing.T) {
	t.Parallel()

	r := NewRenderer(config.ThemeDark, ViewOptions{})
	assert.Contains(t, r.RenderHistory(nil), "No recent trips yet.")

	out := r.RenderHistory([]history.Record{{
		ID: "x", From: "Home", To: "Office", Distance: 12.3,
		BestLabel: "Cycle", BestEmission: 0, TripType: "Medium trip",
		PurposeLabel: "Daily commute", CreatedAt: time.Now(),
	}})
	assert.Contains(t, out, "RECENT TRIPS")
	assert.Contains(t, out, "Home → Office")
	assert.Contains(t, out, "12.3 km")
	assert.Contains(t, out, "Cycle")
	assert.Contains(t, out, "0.000 kg CO2")
}

func TestRenderModes(t *testing.T) {
	t.Parallel()

	out := NewRenderer(config.ThemeDark, ViewOptions{}).RenderModes(modes.All())
	assert.Contains(t, out, "KG CO2/KM")
	for _, d := range modes.All() {
		assert.Contains(t, out, d.Label)
	}
	assert.Contains(t, out, "0.192")
}

func TestRenderBatch(t *testing.T) {
	t.Parallel()

	cmp := engine.Compare(12, modes.PurposeDaily)
	results := []batch.Result{
		{Index: 0, Trip: batch.Trip{From: "Home", To: "Office", DistanceKm: 12, Purpose: "daily"}, Comparison: &cmp},
		{Index: 1, Trip: batch.Trip{DistanceKm: -1, Purpose: "daily"}, Err: errors.New("trip 2: distance must be greater than zero")},
	}

	out := NewRenderer(config.ThemeDark, ViewOptions{}).RenderBatch(results)
	assert.Contains(t, out, "BATCH RESULTS (2 trips)")
	assert.Contains(t, out, "Home → Office")
	assert.Contains(t, out, "best:")
	assert.Contains(t, out, "worst:")
	assert.Contains(t, out, "error: trip 2")
	assert.Contains(t, out, "1 of 2 trips could not be evaluated")
}

func TestNewStyles(t *testing.T) {
	t.Parallel()

	dark := NewStyles(config.ThemeDark)
	light := NewStyles(config.ThemeLight)
	assert.Equal(t, DarkPalette, dark.Palette)
	assert.Equal(t, LightPalette, light.Palette)
	assert.Equal(t, DarkPalette, NewStyles("unknown").Palette)

	assert.Equal(t, dark.Palette.Excellent, dark.BandColor(engine.BandExcellent))
	assert.Equal(t, dark.Palette.Poor, dark.BandColor(engine.BandCouldBeGreener))
}
