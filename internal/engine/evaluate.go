package engine

import (
	"math"
	"sort"

	"github.com/rshade/ecotrip/internal/modes"
)

// roundTo rounds v to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	const base = 10
	m := math.Pow(base, float64(decimals))
	return math.Round(v*m) / m
}

// EmissionKg returns factor × distanceKm rounded to EmissionPrecision decimals.
func EmissionKg(factor, distanceKm float64) float64 {
	return roundTo(factor*distanceKm, EmissionPrecision)
}

// Calculate builds unscored evaluations for the given definitions.
func Calculate(defs []modes.Definition, distanceKm float64) []ModeEvaluation {
	evals := make([]ModeEvaluation, 0, len(defs))
	for _, def := range defs {
		evals = append(evals, ModeEvaluation{
			Key:         def.Key,
			Label:       def.Label,
			Icon:        def.Icon,
			Description: def.Description,
			EmissionKg:  EmissionKg(def.EmissionFactor, distanceKm),
		})
	}
	return evals
}

// MaxEmission returns the largest positive EmissionKg in evals, or 1 when
// nothing emits.
func MaxEmission(evals []ModeEvaluation) float64 {
	maxKg := 0.0
	for _, e := range evals {
		if e.EmissionKg > 0 && e.EmissionKg > maxKg {
			maxKg = e.EmissionKg
		}
	}
	if maxKg == 0 {
		return defaultMaxEmission
	}
	return maxKg
}

// GreenScore maps an emission onto the 20–100 scale relative to maxKg.
// Zero emission always scores 100.
func GreenScore(emissionKg, maxKg float64) int {
	if emissionKg == 0 {
		return MaxGreenScore
	}
	ratio := emissionKg / maxKg
	score := int(math.Round(MaxGreenScore - ratio*scoreSpan))
	return max(MinGreenScore, score)
}

// Normalize sets GreenScore on every evaluation in place.
func Normalize(evals []ModeEvaluation) {
	maxKg := MaxEmission(evals)
	for i := range evals {
		evals[i].GreenScore = GreenScore(evals[i].EmissionKg, maxKg)
	}
}

// Rank sorts evals ascending by EmissionKg. Ties keep their current order.
func Rank(evals []ModeEvaluation) {
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].EmissionKg < evals[j].EmissionKg
	})
}

// Evaluate runs the full pipeline for one trip: filter, calculate,
// normalize and rank. The first element is the greenest mode.
//
// distanceKm must be positive and finite; validation belongs to the caller.
func Evaluate(distanceKm float64, purpose modes.Purpose) []ModeEvaluation {
	evals := Calculate(Filter(distanceKm, purpose), distanceKm)
	Normalize(evals)
	Rank(evals)
	return evals
}
