package validation

import (
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// Positive checks that value is a finite number strictly greater than zero.
func Positive(op, name string, value float64) error {
	if !mathutil.IsFinite(value) {
		return calcerr.Invalid(op, name, value, "%s is not a finite number", name)
	}
	if value <= 0 {
		return calcerr.Invalid(op, name, value, "%s must be positive, got %.2f", name, value)
	}
	return nil
}

// NonNegative checks that value is a finite number greater than or equal to zero.
func NonNegative(op, name string, value float64) error {
	if !mathutil.IsFinite(value) {
		return calcerr.Invalid(op, name, value, "%s is not a finite number", name)
	}
	if value < 0 {
		return calcerr.Invalid(op, name, value, "%s must not be negative, got %.2f", name, value)
	}
	return nil
}

// PositiveInt checks that a tenure or period count is at least one.
func PositiveInt(op, name string, value int) error {
	if value <= 0 {
		return calcerr.Invalid(op, name, float64(value), "%s must be positive, got %d", name, value)
	}
	return nil
}

// Bounds checks value against an inclusive [min, max] range where a zero
// max means unbounded. Violations are OutOfBounds, not InvalidInput.
func Bounds(op, name string, value, min, max float64) error {
	if min > 0 && value < min {
		return calcerr.BelowMinimum(op, name, value, min)
	}
	if max > 0 && value > max {
		return calcerr.AboveMaximum(op, name, value, max)
	}
	return nil
}
