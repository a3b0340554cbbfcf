package greenops

import (
	"math"
	"strings"
)

// unitFactor returns the kilogram conversion factor for unit, matching
// case-insensitively with or without a CO2e suffix.
func unitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "g", "gco2e":
		return GramsToKg, true
	case "kg", "kgco2e":
		return KgToKg, true
	case "t", "tco2e":
		return TonsToKg, true
	case "lb", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// checkValue rejects NaN, infinite and negative values.
func checkValue(value float64) error {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return ErrCalculationOverflow
	}
	if value < 0 {
		return ErrNegativeValue
	}
	return nil
}

// NormalizeToKg converts value in unit to kilograms.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if err := checkValue(value); err != nil {
		return 0, err
	}
	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}
	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// FromKg converts kg into the display unit.
func FromKg(kg float64, unit string) (float64, error) {
	if err := checkValue(kg); err != nil {
		return 0, err
	}
	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}
	result := kg / factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// IsRecognizedUnit reports whether unit is a supported carbon unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}

// UnitSymbol returns the canonical short symbol for a recognized unit,
// e.g. "KGCO2E" becomes "kg". Unknown units are returned unchanged.
func UnitSymbol(unit string) string {
	lower := strings.ToLower(unit)
	trimmed := strings.TrimSuffix(lower, "co2e")
	if _, ok := unitFactor(trimmed); ok {
		return trimmed
	}
	return unit
}
