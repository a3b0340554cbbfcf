package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Input validation errors returned to the input layer. The scoring
// functions never return these; callers must validate before evaluating.
var (
	// ErrDistanceNotNumber indicates the distance could not be parsed.
	ErrDistanceNotNumber = constError("distance must be a number")

	// ErrDistanceNotFinite indicates an infinite or NaN distance.
	ErrDistanceNotFinite = constError("distance must be finite")

	// ErrDistanceNotPositive indicates a zero or negative distance.
	ErrDistanceNotPositive = constError("distance must be greater than zero")
)

// Default endpoint labels used when the user leaves them blank.
const (
	DefaultFromLabel = "Start"
	DefaultToLabel   = "Destination"
)

// distancePrecision is the number of decimals kept on a stored query distance.
const distancePrecision = 1

// ValidateDistance checks that distanceKm is positive and finite.
func ValidateDistance(distanceKm float64) error {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return ErrDistanceNotFinite
	}
	if distanceKm <= 0 {
		return ErrDistanceNotPositive
	}
	return nil
}

// ParseDistance parses and validates a user-supplied distance in km.
func ParseDistance(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, ErrDistanceNotNumber
	}
	d, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		// ParseFloat accepts "Inf" and "NaN" without error; out-of-range
		// values come back as ±Inf with ErrRange.
		if math.IsInf(d, 0) {
			return 0, ErrDistanceNotFinite
		}
		return 0, fmt.Errorf("%w: %q", ErrDistanceNotNumber, s)
	}
	if validateErr := ValidateDistance(d); validateErr != nil {
		return 0, validateErr
	}
	return d, nil
}

// RoundDistance rounds a distance to the precision kept in history.
func RoundDistance(distanceKm float64) float64 {
	return roundTo(distanceKm, distancePrecision)
}

// EndpointLabel trims label and falls back to def when it is blank.
func EndpointLabel(label, def string) string {
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		return trimmed
	}
	return def
}
