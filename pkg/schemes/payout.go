package schemes

import (
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// QuarterlyPayout computes an SCSS-style deposit that pays simple interest
// every quarter. The principal never compounds and is returned at maturity.
func QuarterlyPayout(principal, annualRatePercent float64, years int, limits rates.SchemeLimits) (finance.Result, error) {
	const op = "schemes.QuarterlyPayout"
	if err := validatePayout(op, principal, annualRatePercent, limits); err != nil {
		return finance.Result{}, err
	}
	if err := validation.PositiveInt(op, "years", years); err != nil {
		return finance.Result{}, err
	}

	quarterly := principal * mathutil.PercentToDecimal(annualRatePercent) / constants.QuartersPerYear
	annual := quarterly * constants.QuartersPerYear
	total := annual * float64(years)

	result := finance.NewResult(SchemeMultiYear, principal+total, principal, annualRatePercent, years, constants.UnitYears)
	result.QuarterlyPayout = quarterly
	result.AnnualPayout = annual
	result.TaxFree = limits.TaxFree
	return result, nil
}

// MonthlyIncome computes a Post Office MIS deposit paying simple interest
// every month for the scheme's tenure.
func MonthlyIncome(principal, annualRatePercent float64, limits rates.SchemeLimits) (finance.Result, error) {
	const op = "schemes.MonthlyIncome"
	if err := validatePayout(op, principal, annualRatePercent, limits); err != nil {
		return finance.Result{}, err
	}
	if limits.TenureYears <= 0 {
		return finance.Result{}, calcerr.Invalid(op, "tenure", float64(limits.TenureYears), "scheme tenure is not configured")
	}

	monthly := principal * mathutil.PercentToDecimal(annualRatePercent) / constants.MonthsPerYear
	annual := monthly * constants.MonthsPerYear
	total := annual * float64(limits.TenureYears)

	result := finance.NewResult(SchemeMultiYear, principal+total, principal, annualRatePercent, limits.TenureYears, constants.UnitYears)
	result.MonthlyIncome = monthly
	result.AnnualPayout = annual
	result.TaxFree = limits.TaxFree
	return result, nil
}

func validatePayout(op string, principal, annualRatePercent float64, limits rates.SchemeLimits) error {
	if err := validation.Positive(op, "principal", principal); err != nil {
		return err
	}
	if err := validation.NonNegative(op, "annual rate", annualRatePercent); err != nil {
		return err
	}
	return validation.Bounds(op, "principal", principal, limits.MinDeposit, limits.MaxDeposit)
}
