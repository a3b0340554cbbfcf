// Package engine implements the emission scoring pipeline.
//
// Given a trip distance and purpose, the engine filters the applicable
// travel modes, computes per-mode emissions, normalizes them into a 20–100
// green score relative to the worst eligible mode, and ranks the result
// from lowest to highest emission.
//
// Every function in this package is pure: it reads only the immutable mode
// table and returns freshly allocated values, so it is safe for concurrent
// use without coordination.
package engine

import "github.com/rshade/ecotrip/internal/modes"

// Scoring constants.
const (
	// EmissionPrecision is the number of decimals kept on EmissionKg.
	EmissionPrecision = 3

	// MaxGreenScore is awarded to zero-emission modes.
	MaxGreenScore = 100

	// MinGreenScore is the floor awarded to the worst mode of a query.
	MinGreenScore = 20

	// scoreSpan is the range a non-zero mode can fall through, MaxGreenScore-MinGreenScore.
	scoreSpan = 80

	// defaultMaxEmission guards the ratio when nothing in the set emits.
	defaultMaxEmission = 1.0
)

// ModeEvaluation is a mode scored for one query.
type ModeEvaluation struct {
	Key         modes.Key `json:"key"`
	Label       string    `json:"label"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	EmissionKg  float64   `json:"emission_kg"`
	GreenScore  int       `json:"green_score"`
}

// TripType is a descriptive distance band.
type TripType string

// Trip distance bands.
const (
	TripVeryShort    TripType = "very-short"
	TripShortCity    TripType = "short-city"
	TripMedium       TripType = "medium"
	TripLongDistance TripType = "long-distance"
)

// Trip band upper bounds in km, inclusive.
const (
	veryShortMaxKm = 2
	shortCityMaxKm = 8
	mediumMaxKm    = 30
)

// Label returns the display label for the trip type.
func (t TripType) Label() string {
	switch t {
	case TripVeryShort:
		return "Very short trip"
	case TripShortCity:
		return "Short city trip"
	case TripMedium:
		return "Medium trip"
	case TripLongDistance:
		return "Long-distance trip"
	default:
		return string(t)
	}
}

// ScoreBand is a qualitative bucket for a green score.
type ScoreBand string

// Score bands, best first.
const (
	BandExcellent      ScoreBand = "excellent"
	BandGood           ScoreBand = "good"
	BandOK             ScoreBand = "ok"
	BandCouldBeGreener ScoreBand = "could-be-greener"
)

// Score band lower bounds, inclusive.
const (
	excellentMinScore = 85
	goodMinScore      = 70
	okMinScore        = 55
)

// ScoreInfo pairs a band with its display label and emoji.
type ScoreInfo struct {
	Band  ScoreBand `json:"band"`
	Label string    `json:"label"`
	Emoji string    `json:"emoji"`
}
