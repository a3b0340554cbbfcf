package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printer formats numbers with English thousands separators regardless of
// the host locale.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with exactly precision decimals and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}
	return printer.Sprint(number.Decimal(f, number.Scale(precision)))
}

// FormatKg formats a kg amount in the given display unit, e.g. "2.304 kg"
// or "2,304 g". Amounts below MinDisplayThresholdKg show as zero.
func FormatKg(kg float64, unit string) string {
	if kg < MinDisplayThresholdKg {
		kg = 0
	}
	v, err := FromKg(kg, unit)
	if err != nil {
		return FormatFloat(kg, 3) + " kg"
	}

	symbol := UnitSymbol(unit)
	precision := 3
	if symbol == "g" {
		precision = 0
	}
	return FormatFloat(v, precision) + " " + symbol
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values at or above LargeNumberThreshold use "~X.X million" format and
// values at or above BillionThreshold use "~X.X billion". Smaller values
// use comma-separated integers.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
