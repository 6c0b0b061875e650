// Package schemes implements the government savings schemes whose maturity
// cannot be expressed as a single compounding step: yearly deposits (PPF,
// Sukanya Samriddhi), periodic payouts (SCSS, Post Office MIS) and the PPF
// account operations.
package schemes

import (
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// SchemeMultiYear is the scheme name on results built by this package; the
// engine replaces it with the concrete scheme id.
const SchemeMultiYear = "multi_year"

// MultiYearDeposit computes the maturity of a fixed yearly deposit. Each
// deposit made in year y (0-based) compounds for (years - y) years, and
// deposits stop after depositYearsLimit years when that is positive and
// shorter than the tenure.
func MultiYearDeposit(annualDeposit float64, years int, annualRatePercent float64, depositYearsLimit int, limits rates.SchemeLimits) (finance.Result, error) {
	const op = "schemes.MultiYearDeposit"
	if err := validation.Positive(op, "annual deposit", annualDeposit); err != nil {
		return finance.Result{}, err
	}
	if err := validation.PositiveInt(op, "years", years); err != nil {
		return finance.Result{}, err
	}
	if err := validation.NonNegative(op, "annual rate", annualRatePercent); err != nil {
		return finance.Result{}, err
	}
	if err := validation.Bounds(op, "annual deposit", annualDeposit, limits.MinDeposit, limits.MaxDeposit); err != nil {
		return finance.Result{}, err
	}

	depositYears := years
	if depositYearsLimit > 0 && depositYearsLimit < years {
		depositYears = depositYearsLimit
	}

	maturity := compoundDeposits(annualDeposit, mathutil.PercentToDecimal(annualRatePercent), years, depositYears)
	invested := annualDeposit * float64(depositYears)

	result := finance.NewResult(SchemeMultiYear, maturity, invested, annualRatePercent, years, constants.UnitYears)
	result.DepositYears = depositYears
	result.PeriodicPayment = annualDeposit
	result.TaxFree = limits.TaxFree
	return result, nil
}

// compoundDeposits sums deposit(1+rate)^(years-year) for year in [0, depositYears).
func compoundDeposits(deposit, rate float64, years, depositYears int) float64 {
	total := 0.0
	for year := 0; year < depositYears; year++ {
		total += deposit * mathutil.CompoundFactor(rate, float64(years-year))
	}
	return total
}

// RequiredDeposit computes the yearly deposit needed to reach target after
// years, treating the deposits as an annuity due. The result fails with
// LimitExceeded when the deposit is above the scheme's maximum.
func RequiredDeposit(target float64, years int, annualRatePercent float64, limits rates.SchemeLimits) (finance.Result, error) {
	const op = "schemes.RequiredDeposit"
	if err := validation.Positive(op, "target amount", target); err != nil {
		return finance.Result{}, err
	}
	if err := validation.PositiveInt(op, "years", years); err != nil {
		return finance.Result{}, err
	}
	if err := validation.NonNegative(op, "annual rate", annualRatePercent); err != nil {
		return finance.Result{}, err
	}

	rate := mathutil.PercentToDecimal(annualRatePercent)
	factor := float64(years)
	if rate != 0 {
		factor = (mathutil.CompoundFactor(rate, float64(years)) - 1) / rate * (1 + rate)
	}
	required := target / factor

	if limits.MaxDeposit > 0 && required > limits.MaxDeposit {
		return finance.Result{}, calcerr.Exceeded(op, "annual deposit", required, limits.MaxDeposit)
	}

	invested := required * float64(years)
	result := finance.NewResult(SchemeMultiYear, target, invested, annualRatePercent, years, constants.UnitYears)
	result.RequiredAnnualDeposit = required
	result.RequiredMonthlyDeposit = required / constants.MonthsPerYear
	result.DepositYears = years
	result.TaxFree = limits.TaxFree
	return result, nil
}
