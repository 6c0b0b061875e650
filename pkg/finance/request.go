package finance

import (
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// Request is the validated input bundle for a single calculation. Tenure is
// expressed in Unit: months for EMI and RD, years for everything else.
type Request struct {
	Amount     float64 `json:"amount"`
	AnnualRate float64 `json:"annualRate"`
	Tenure     int     `json:"tenure"`
	Unit       string  `json:"unit,omitempty"`
}

// Validate enforces the request invariants: a positive finite amount, a
// finite non-negative rate, a positive tenure and a known unit. An empty
// unit is the calculation's natural unit.
func (r Request) Validate(op string) error {
	if err := validation.Positive(op, "amount", r.Amount); err != nil {
		return err
	}
	if err := validation.NonNegative(op, "annual rate", r.AnnualRate); err != nil {
		return err
	}
	if err := validation.PositiveInt(op, "tenure", r.Tenure); err != nil {
		return err
	}
	switch r.Unit {
	case "", constants.UnitMonths, constants.UnitYears:
		return nil
	default:
		return calcerr.Invalid(op, "unit", 0, "unknown tenure unit %q, want %s or %s", r.Unit, constants.UnitMonths, constants.UnitYears)
	}
}

// Months returns the tenure expressed in months.
func (r Request) Months() int {
	if r.Unit == constants.UnitYears {
		return r.Tenure * constants.MonthsPerYear
	}
	return r.Tenure
}

// WholeYears reports whether the tenure is a whole number of years.
func (r Request) WholeYears() bool {
	return r.Unit != constants.UnitMonths || r.Tenure%constants.MonthsPerYear == 0
}

// Years returns the tenure in years. Callers check WholeYears first.
func (r Request) Years() int {
	if r.Unit == constants.UnitMonths {
		return r.Tenure / constants.MonthsPerYear
	}
	return r.Tenure
}
