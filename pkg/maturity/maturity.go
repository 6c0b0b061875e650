// Package maturity computes single-deposit compounding maturities: fixed
// deposits, NSC, Post Office time deposits and KVP doubling.
package maturity

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// SchemeLumpSum is the default scheme name for LumpSum results.
const SchemeLumpSum = "lump_sum"

// Growth compounds amount annually for years at annualRatePercent.
func Growth(amount, annualRatePercent float64, years int) float64 {
	return amount * mathutil.CompoundFactor(mathutil.PercentToDecimal(annualRatePercent), float64(years))
}

// LumpSum returns P(1+r)^t for a single deposit compounded annually.
func LumpSum(principal, annualRatePercent float64, years int) (finance.Result, error) {
	const op = "maturity.LumpSum"
	if err := validation.Positive(op, "principal", principal); err != nil {
		return finance.Result{}, err
	}
	if err := validation.NonNegative(op, "annual rate", annualRatePercent); err != nil {
		return finance.Result{}, err
	}
	if err := validation.PositiveInt(op, "years", years); err != nil {
		return finance.Result{}, err
	}

	maturity := Growth(principal, annualRatePercent, years)
	return finance.NewResult(SchemeLumpSum, maturity, principal, annualRatePercent, years, constants.UnitYears), nil
}

// Doubling returns the KVP-style outcome: the deposit doubles, and the
// time it takes is ln 2 / ln(1+r) years.
func Doubling(principal, annualRatePercent float64) (finance.Result, error) {
	const op = "maturity.Doubling"
	if err := validation.Positive(op, "principal", principal); err != nil {
		return finance.Result{}, err
	}
	if err := validation.NonNegative(op, "annual rate", annualRatePercent); err != nil {
		return finance.Result{}, err
	}
	if annualRatePercent == 0 {
		return finance.Result{}, calcerr.Invalid(op, "annual rate", 0, "a deposit never doubles at a zero rate")
	}

	years := DoublingTime(annualRatePercent)
	result := finance.NewResult(SchemeLumpSum, principal*2, principal, annualRatePercent, int(math.Ceil(years)), constants.UnitYears)
	result.DoublingTimeYears = years
	return result, nil
}

// DoublingTime returns ln 2 / ln(1+r). It is +Inf for a zero rate.
func DoublingTime(annualRatePercent float64) float64 {
	rate := mathutil.PercentToDecimal(annualRatePercent)
	if rate <= 0 {
		return math.Inf(1)
	}
	return math.Ln2 / math.Log1p(rate)
}
