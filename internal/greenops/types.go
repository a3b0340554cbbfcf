// Package greenops turns raw kg CO2 figures into units and real-world
// equivalencies a traveller can relate to.
//
// Conversions accept g, kg, t and lb (with or without a CO2e suffix).
// Equivalencies express a quantity of CO2 as kilometres driven in an
// average petrol car, smartphone charges, and days of absorption by a
// young tree.
package greenops

import "fmt"

// EquivalencyType is a category of carbon equivalency.
type EquivalencyType int

const (
	// EquivalencyKmDriven is kilometres driven by an average petrol car.
	EquivalencyKmDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeDays is days of CO2 uptake by one tree seedling.
	EquivalencyTreeDays
)

// String returns a human-readable name for the type.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyKmDriven:
		return "KmDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeDays:
		return "TreeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one carbon amount.
type EquivalencyOutput struct {
	// InputKg is the amount the equivalencies were computed for.
	InputKg float64             `json:"input_kg"`
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form for table output.
	// Example: "Like driving ~5 km or charging ~122 smartphones"
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated form for narrow layouts.
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}
