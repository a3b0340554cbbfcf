package greenops

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Calculate computes real-world equivalencies for kg of CO2.
//
// Amounts below MinEquivalencyThresholdKg return an empty output with no
// error. Negative or non-finite input returns an empty output and the
// matching sentinel error.
func Calculate(kg float64) (EquivalencyOutput, error) {
	if err := checkValue(kg); err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	km := kg / CarKmFactor
	phones := kg / SmartphoneChargeFactor
	treeDays := kg / TreeDayFactor

	for _, v := range []float64{km, phones, treeDays} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
	}

	kmFormatted := formatEquivalencyValue(km)
	phonesFormatted := formatEquivalencyValue(phones)
	treeFormatted := formatEquivalencyValue(treeDays)

	return EquivalencyOutput{
		InputKg: kg,
		Results: []EquivalencyResult{
			{Type: EquivalencyKmDriven, Value: km, FormattedValue: kmFormatted, Label: "km driven"},
			{Type: EquivalencySmartphonesCharged, Value: phones, FormattedValue: phonesFormatted, Label: "smartphones charged"},
			{Type: EquivalencyTreeDays, Value: treeDays, FormattedValue: treeFormatted, Label: "tree-days of absorption"},
		},
		DisplayText: fmt.Sprintf("Like driving ~%s km or charging ~%s smartphones",
			kmFormatted, phonesFormatted),
		CompactText: fmt.Sprintf("(≈ %s km, %s phones, %s tree-days)",
			kmFormatted, phonesFormatted, treeFormatted),
	}, nil
}

// SavingsText describes kg saved as an equivalency sentence, or returns ""
// when there is nothing meaningful to say.
func SavingsText(savedKg float64) string {
	out, err := Calculate(savedKg)
	if err != nil {
		log.Debug().Err(err).Float64("saved_kg", savedKg).Msg("skipping savings equivalency")
		return ""
	}
	if out.IsEmpty {
		return ""
	}
	return out.DisplayText
}

// formatEquivalencyValue rounds to an integer with separators, or uses
// million/billion notation for very large values.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
