package engine

import (
	"fmt"

	"github.com/rshade/ecotrip/internal/modes"
)

// Comparison is a ranked evaluation of one trip plus the values the
// presentation layer derives from it.
type Comparison struct {
	DistanceKm    float64          `json:"distance_km"`
	Purpose       modes.Purpose    `json:"purpose"`
	TripType      TripType         `json:"trip_type"`
	Evaluations   []ModeEvaluation `json:"evaluations"`
	MaxEmissionKg float64          `json:"max_emission_kg"`
}

// TransitSaving compares the car against one transit mode.
type TransitSaving struct {
	Transit           modes.Key `json:"transit"`
	TransitLabel      string    `json:"transit_label"`
	CarEmissionKg     float64   `json:"car_emission_kg"`
	TransitEmissionKg float64   `json:"transit_emission_kg"`
	SavedKg           float64   `json:"saved_kg"`
	// Positive marks savings worth displaying as "kg CO2 saved".
	Positive bool `json:"positive"`
}

// Compare evaluates a trip and wraps the result with its trip type.
func Compare(distanceKm float64, purpose modes.Purpose) Comparison {
	evals := Evaluate(distanceKm, purpose)
	return Comparison{
		DistanceKm:    distanceKm,
		Purpose:       purpose,
		TripType:      ClassifyTrip(distanceKm),
		Evaluations:   evals,
		MaxEmissionKg: MaxEmission(evals),
	}
}

// Best returns the lowest-emission evaluation.
func (c Comparison) Best() (ModeEvaluation, bool) {
	if len(c.Evaluations) == 0 {
		return ModeEvaluation{}, false
	}
	return c.Evaluations[0], true
}

// Worst returns the highest-emission evaluation.
func (c Comparison) Worst() (ModeEvaluation, bool) {
	if len(c.Evaluations) == 0 {
		return ModeEvaluation{}, false
	}
	return c.Evaluations[len(c.Evaluations)-1], true
}

// Find returns the evaluation for key, if the mode was eligible.
func (c Comparison) Find(key modes.Key) (ModeEvaluation, bool) {
	for _, e := range c.Evaluations {
		if e.Key == key {
			return e, true
		}
	}
	return ModeEvaluation{}, false
}

// BarRatio returns the emission bar width for e as a fraction of the
// largest emission in the set, clamped to [0,1].
func (c Comparison) BarRatio(e ModeEvaluation) float64 {
	if c.MaxEmissionKg <= 0 || e.EmissionKg <= 0 {
		return 0
	}
	return min(e.EmissionKg/c.MaxEmissionKg, 1)
}

// Savings compares the car against bus and metro. A pair is only reported
// when both modes are eligible for this trip.
func (c Comparison) Savings() []TransitSaving {
	car, ok := c.Find(modes.Car)
	if !ok {
		return nil
	}

	var out []TransitSaving
	for _, key := range []modes.Key{modes.Bus, modes.Metro} {
		transit, found := c.Find(key)
		if !found {
			continue
		}
		saved := roundTo(car.EmissionKg-transit.EmissionKg, EmissionPrecision)
		out = append(out, TransitSaving{
			Transit:           key,
			TransitLabel:      transit.Label,
			CarEmissionKg:     car.EmissionKg,
			TransitEmissionKg: transit.EmissionKg,
			SavedKg:           saved,
			Positive:          saved > 0,
		})
	}
	return out
}

// SummarySentence describes the best and worst options in one line.
func (c Comparison) SummarySentence() string {
	best, ok := c.Best()
	if !ok {
		return fmt.Sprintf("No travel modes are available for a %.1f km trip.", c.DistanceKm)
	}
	worst, _ := c.Worst()

	prefix := fmt.Sprintf("For a %.1f km %s trip (%s), ", c.DistanceKm, c.TripType, c.Purpose.Label())
	if best.Key == worst.Key {
		return prefix + fmt.Sprintf("%s is the only option at %.3f kg CO2.", best.Label, best.EmissionKg)
	}
	return prefix + fmt.Sprintf("%s is the greenest choice and %s emits the most at %.3f kg CO2.",
		best.Label, worst.Label, worst.EmissionKg)
}
