// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves are rounded away from zero on the decimal representation so that
// 1.005 becomes 1.01 rather than falling victim to binary error.
func Round(val float64) float64 {
	if !IsFinite(val) {
		return val
	}
	return decimal.NewFromFloat(val).Round(constants.DecimalPrecision).InexactFloat64()
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// PercentToDecimal converts a percentage such as 7.1 into 0.071.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * PercentToDecimal(percentage)
}

// CompoundFactor returns (1+rate)^periods for a decimal periodic rate.
func CompoundFactor(rate float64, periods float64) float64 {
	return math.Pow(1+rate, periods)
}
