package engine

import (
	"github.com/rs/zerolog/log"

	"github.com/rshade/ecotrip/internal/modes"
)

// Distance thresholds for the applicability rules, in km.
const (
	minTransitKm       = 1.0
	minFlightKm        = 2.0
	minMetroKm         = 3.0
	minAnyFlightKm     = 5.0
	minCommuteFlightKm = 10.0
)

// exclusionRule reports whether a mode is excluded for a distance and purpose.
type exclusionRule func(key modes.Key, distanceKm float64, purpose modes.Purpose) bool

// exclusionRules are independent and cumulative: any match excludes the mode.
//
//nolint:gochecknoglobals // Static rule table.
var exclusionRules = []exclusionRule{
	func(k modes.Key, d float64, _ modes.Purpose) bool {
		return d < minTransitKm && (k == modes.Bus || k == modes.Metro || k == modes.Flight)
	},
	func(k modes.Key, d float64, _ modes.Purpose) bool {
		return d < minFlightKm && k == modes.Flight
	},
	func(k modes.Key, d float64, _ modes.Purpose) bool {
		return d < minMetroKm && k == modes.Metro
	},
	func(k modes.Key, d float64, _ modes.Purpose) bool {
		return d < minAnyFlightKm && k == modes.Flight
	},
	func(k modes.Key, d float64, p modes.Purpose) bool {
		return d < minCommuteFlightKm && p == modes.PurposeDaily && k == modes.Flight
	},
}

// IsEligible reports whether key passes every applicability rule.
func IsEligible(key modes.Key, distanceKm float64, purpose modes.Purpose) bool {
	for _, excluded := range exclusionRules {
		if excluded(key, distanceKm, purpose) {
			return false
		}
	}
	return true
}

// Filter returns the mode definitions eligible for the trip, in definition order.
//
// The fallback mode is always part of the result. No current rule excludes
// it, but if a rule change ever empties the set the fallback is restored and
// a warning is logged instead of returning nothing.
func Filter(distanceKm float64, purpose modes.Purpose) []modes.Definition {
	all := modes.All()
	eligible := make([]modes.Definition, 0, len(all))
	for _, def := range all {
		if IsEligible(def.Key, distanceKm, purpose) {
			eligible = append(eligible, def)
		}
	}

	if len(eligible) == 0 {
		log.Warn().
			Str("component", "engine").
			Float64("distance_km", distanceKm).
			Str("purpose", purpose.String()).
			Msg("no eligible travel modes, restoring fallback mode")
		fallback, _ := modes.Lookup(modes.Fallback)
		eligible = append(eligible, fallback)
	}

	return eligible
}
