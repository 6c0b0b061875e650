// Package amortization provides annuity-based loan and recurring-deposit calculations.
package amortization

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// Scheme names carried on results.
const (
	SchemeEMI              = "emi"
	SchemeLoan             = "loan"
	SchemeRecurringDeposit = "rd"
)

// Payment calculates the periodic payment for principal repaid over periods
// at periodicRate (a decimal fraction, e.g. 0.01 for 1% per period) using
// the standard annuity formula. A zero rate falls back to principal / periods.
func Payment(principal, periodicRate float64, periods int) (float64, error) {
	const op = "amortization.Payment"
	if err := validation.Positive(op, "principal", principal); err != nil {
		return 0, err
	}
	if err := validation.NonNegative(op, "periodic rate", periodicRate); err != nil {
		return 0, err
	}
	if err := validation.PositiveInt(op, "periods", periods); err != nil {
		return 0, err
	}

	if periodicRate == 0 {
		return principal / float64(periods), nil
	}

	power := mathutil.CompoundFactor(periodicRate, float64(periods))
	return principal * periodicRate * power / (power - 1), nil
}

// MonthlyRate converts an annual percentage into a decimal monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return mathutil.PercentToDecimal(annualRatePercent) / constants.MonthsPerYear
}

// EMI calculates the equated monthly installment of a loan over months.
// Maturity on the result is the total amount payable.
func EMI(principal, annualRatePercent float64, months int) (finance.Result, error) {
	return emi(SchemeEMI, principal, annualRatePercent, months, months, constants.UnitMonths)
}

// Loan is EMI with the tenure given in years.
func Loan(principal, annualRatePercent float64, years int) (finance.Result, error) {
	if err := validation.PositiveInt("amortization.Loan", "years", years); err != nil {
		return finance.Result{}, err
	}
	return emi(SchemeLoan, principal, annualRatePercent, years*constants.MonthsPerYear, years, constants.UnitYears)
}

func emi(scheme string, principal, annualRatePercent float64, months, tenure int, unit string) (finance.Result, error) {
	if err := validation.NonNegative("amortization.EMI", "annual rate", annualRatePercent); err != nil {
		return finance.Result{}, err
	}

	payment, err := Payment(principal, MonthlyRate(annualRatePercent), months)
	if err != nil {
		return finance.Result{}, err
	}

	total := payment * float64(months)
	result := finance.NewResult(scheme, total, principal, annualRatePercent, tenure, unit)
	result.PeriodicPayment = payment
	return result, nil
}

// RecurringDeposit calculates the maturity of a monthly deposit using the
// future value of an annuity due. A zero rate yields deposit × months.
func RecurringDeposit(deposit, annualRatePercent float64, months int) (finance.Result, error) {
	const op = "amortization.RecurringDeposit"
	if err := validation.Positive(op, "monthly deposit", deposit); err != nil {
		return finance.Result{}, err
	}
	if err := validation.NonNegative(op, "annual rate", annualRatePercent); err != nil {
		return finance.Result{}, err
	}
	if err := validation.PositiveInt(op, "months", months); err != nil {
		return finance.Result{}, err
	}

	maturity := deposit * AnnuityDueFactor(MonthlyRate(annualRatePercent), months)
	invested := deposit * float64(months)

	result := finance.NewResult(SchemeRecurringDeposit, maturity, invested, annualRatePercent, months, constants.UnitMonths)
	result.PeriodicPayment = deposit
	return result, nil
}

// AnnuityDueFactor returns ((1+r)^n − 1)/r × (1+r), the future value of one
// unit paid at the start of each of n periods. It is n when r is zero.
func AnnuityDueFactor(rate float64, periods int) float64 {
	if rate == 0 {
		return float64(periods)
	}
	return OrdinaryAnnuityFactor(rate, periods) * (1 + rate)
}

// OrdinaryAnnuityFactor returns ((1+r)^n − 1)/r, the future value of one
// unit paid at the end of each of n periods. It is n when r is zero.
func OrdinaryAnnuityFactor(rate float64, periods int) float64 {
	if rate == 0 {
		return float64(periods)
	}
	return (math.Pow(1+rate, float64(periods)) - 1) / rate
}
