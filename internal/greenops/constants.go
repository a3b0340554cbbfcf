package greenops

import "github.com/rshade/ecotrip/internal/modes"

// Equivalency divisors: equivalency = kg_CO2 / factor.
const (
	// CarKmFactor is kg CO2 per km for an average single-occupant petrol car.
	CarKmFactor = modes.FactorCar

	// SmartphoneChargeFactor is kg CO2 per full smartphone charge
	// (EPA GHG equivalencies, 2024).
	SmartphoneChargeFactor = 0.00822

	// TreeDayFactor is kg CO2 absorbed per day by one urban tree seedling,
	// 60 kg over ten years.
	TreeDayFactor = 60.0 / 3650.0
)

// Unit conversion factors to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinDisplayThresholdKg is the smallest amount shown as non-zero.
	MinDisplayThresholdKg = 0.001

	// MinEquivalencyThresholdKg is the smallest amount that gets equivalencies.
	MinEquivalencyThresholdKg = 0.1

	// LargeNumberThreshold switches to "~X.X million" notation.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches to "~X.X billion" notation.
	BillionThreshold = 1_000_000_000
)
