// Package modes defines the closed set of travel modes and trip purposes
// together with the static emission factor table.
//
// Emission factors are kg CO2 per passenger-kilometer. The table is built
// once at package initialization and is never mutated; callers receive
// copies.
package modes

import (
	"errors"
	"fmt"
	"strings"
)

// Key identifies a travel mode.
type Key string

// Travel mode keys, in definition order.
const (
	Walk    Key = "walk"
	Cycle   Key = "cycle"
	Bus     Key = "bus"
	Metro   Key = "metro"
	Bike    Key = "bike"
	Car     Key = "car"
	Carpool Key = "carpool"
	EVCar   Key = "evcar"
	Flight  Key = "flight"
)

// Fallback is the mode that must be eligible for every positive distance.
const Fallback = Walk

// Definition is an immutable travel mode record.
type Definition struct {
	Key            Key     `json:"key"`
	EmissionFactor float64 `json:"emission_factor"`
	Label          string  `json:"label"`
	Icon           string  `json:"icon"`
	Description    string  `json:"description"`
}

// Emission factors, kg CO2 per passenger-km.
const (
	FactorWalk    = 0.0
	FactorCycle   = 0.0
	FactorBus     = 0.105
	FactorMetro   = 0.041
	FactorBike    = 0.114
	FactorCar     = 0.192
	FactorCarpool = 0.096
	FactorEVCar   = 0.053
	FactorFlight  = 0.255
)

//nolint:gochecknoglobals // Static lookup table, never mutated.
var definitions = []Definition{
	{Walk, FactorWalk, "Walking", "🚶", "Zero emissions and good for your health."},
	{Cycle, FactorCycle, "Cycling", "🚲", "Zero emissions and often faster than driving in town."},
	{Bus, FactorBus, "Bus", "🚌", "Shared transport that spreads emissions across many riders."},
	{Metro, FactorMetro, "Metro / Subway", "🚇", "Electric rail with very low emissions per passenger."},
	{Bike, FactorBike, "Motorbike", "🏍️", "Lighter than a car but still burns fuel."},
	{Car, FactorCar, "Car (petrol)", "🚗", "Average petrol car with a single occupant."},
	{Carpool, FactorCarpool, "Carpool (2 people)", "🚙", "Petrol car shared between two passengers."},
	{EVCar, FactorEVCar, "Electric car", "🔌", "Battery electric car on an average grid mix."},
	{Flight, FactorFlight, "Short-haul flight", "✈️", "Domestic or short-haul flight per passenger."},
}

//nolint:gochecknoglobals // Index over definitions, built at init.
var index = func() map[Key]int {
	m := make(map[Key]int, len(definitions))
	for i, d := range definitions {
		m[d.Key] = i
	}
	return m
}()

// All returns a copy of every definition in definition order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition for key.
func Lookup(key Key) (Definition, bool) {
	i, ok := index[key]
	if !ok {
		return Definition{}, false
	}
	return definitions[i], true
}

// Order returns the position of key in the definition table, or -1.
func Order(key Key) int {
	if i, ok := index[key]; ok {
		return i
	}
	return -1
}

// String returns the key as a string.
func (k Key) String() string { return string(k) }

// Purpose is the reason for a trip.
type Purpose string

// Trip purposes.
const (
	PurposeDaily  Purpose = "daily"
	PurposeCasual Purpose = "casual"
	PurposeWork   Purpose = "work"
	PurposeLong   Purpose = "long"
)

// ErrUnknownPurpose is returned by ParsePurpose for unrecognized input.
var ErrUnknownPurpose = errors.New("unknown trip purpose")

// Purposes returns every purpose in display order.
func Purposes() []Purpose {
	return []Purpose{PurposeDaily, PurposeCasual, PurposeWork, PurposeLong}
}

// Label returns the display label for the purpose.
func (p Purpose) Label() string {
	switch p {
	case PurposeDaily:
		return "Daily commute"
	case PurposeCasual:
		return "Casual outing"
	case PurposeWork:
		return "Work / business"
	case PurposeLong:
		return "Long journey"
	default:
		return string(p)
	}
}

// String returns the purpose key.
func (p Purpose) String() string { return string(p) }

// Valid reports whether p is one of the known purposes.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeDaily, PurposeCasual, PurposeWork, PurposeLong:
		return true
	default:
		return false
	}
}

// ParsePurpose accepts the short key ("daily") or the long form
// ("daily-commute"), case-insensitive.
func ParsePurpose(s string) (Purpose, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "daily-commute":
		return PurposeDaily, nil
	case "casual", "casual-outing":
		return PurposeCasual, nil
	case "work", "work-business":
		return PurposeWork, nil
	case "long", "long-journey":
		return PurposeLong, nil
	default:
		return "", fmt.Errorf("%w: %q (expected daily, casual, work or long)", ErrUnknownPurpose, s)
	}
}
