package engine

import (
	"github.com/iwvelando/fincalc/pkg/amortization"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/maturity"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/schemes"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// RecurringDeposit computes a bank recurring deposit of a monthly amount.
func (e *Engine) RecurringDeposit(deposit, annualRatePercent float64, months int) (finance.Result, error) {
	result, err := amortization.RecurringDeposit(deposit, annualRatePercent, months)
	e.logResult("engine.RecurringDeposit", result, err)
	return result, err
}

// FixedDeposit computes a bank fixed deposit compounded annually.
func (e *Engine) FixedDeposit(principal, annualRatePercent float64, years int) (result finance.Result, err error) {
	defer func() { e.logResult("engine.FixedDeposit", result, err) }()

	result, err = maturity.LumpSum(principal, annualRatePercent, years)
	if err != nil {
		return finance.Result{}, err
	}
	result.Scheme = rates.FD
	return result, nil
}

// NSC computes a National Savings Certificate held for years.
func (e *Engine) NSC(amount float64, years int, opts ...Option) (finance.Result, error) {
	return e.lumpSum("engine.NSC", rates.NSC, amount, years, opts)
}

// PostOfficeTD computes a Post Office time deposit held for years.
func (e *Engine) PostOfficeTD(amount float64, years int, opts ...Option) (finance.Result, error) {
	return e.lumpSum("engine.PostOfficeTD", rates.PostOfficeTD, amount, years, opts)
}

func (e *Engine) lumpSum(op, id string, amount float64, years int, opts []Option) (result finance.Result, err error) {
	defer func() { e.logResult(op, result, err) }()

	ctx, err := e.scheme(op, id, opts)
	if err != nil {
		return finance.Result{}, err
	}
	if err := checkDeposit(op, "amount", amount, ctx); err != nil {
		return finance.Result{}, err
	}

	result, err = maturity.LumpSum(amount, ctx.rate, years)
	if err != nil {
		return finance.Result{}, err
	}
	result.Scheme = id
	result.TaxFree = ctx.limits.TaxFree
	return result, nil
}

// KVP computes a Kisan Vikas Patra: the amount doubles, and the result
// carries the doubling time.
func (e *Engine) KVP(amount float64, opts ...Option) (result finance.Result, err error) {
	const op = "engine.KVP"
	defer func() { e.logResult(op, result, err) }()

	ctx, err := e.scheme(op, rates.KVP, opts)
	if err != nil {
		return finance.Result{}, err
	}
	if err := checkDeposit(op, "amount", amount, ctx); err != nil {
		return finance.Result{}, err
	}

	result, err = maturity.Doubling(amount, ctx.rate)
	if err != nil {
		return finance.Result{}, err
	}
	result.Scheme = rates.KVP
	result.TaxFree = ctx.limits.TaxFree
	return result, nil
}

// PostOfficeRD computes a Post Office recurring deposit of a monthly amount
// for years.
func (e *Engine) PostOfficeRD(monthlyDeposit float64, years int, opts ...Option) (result finance.Result, err error) {
	const op = "engine.PostOfficeRD"
	defer func() { e.logResult(op, result, err) }()

	ctx, err := e.scheme(op, rates.PostOfficeRD, opts)
	if err != nil {
		return finance.Result{}, err
	}
	if err := validation.PositiveInt(op, "years", years); err != nil {
		return finance.Result{}, err
	}
	if err := checkDeposit(op, "monthly deposit", monthlyDeposit, ctx); err != nil {
		return finance.Result{}, err
	}

	result, err = amortization.RecurringDeposit(monthlyDeposit, ctx.rate, years*constants.MonthsPerYear)
	if err != nil {
		return finance.Result{}, err
	}
	result.Scheme = rates.PostOfficeRD
	result.TaxFree = ctx.limits.TaxFree
	return result, nil
}

// PostOfficeMIS computes the monthly income of a Post Office MIS deposit.
func (e *Engine) PostOfficeMIS(amount float64, opts ...Option) (result finance.Result, err error) {
	const op = "engine.PostOfficeMIS"
	defer func() { e.logResult(op, result, err) }()

	ctx, err := e.scheme(op, rates.PostOfficeMIS, opts)
	if err != nil {
		return finance.Result{}, err
	}

	result, err = schemes.MonthlyIncome(amount, ctx.rate, ctx.limits)
	if err != nil {
		return finance.Result{}, err
	}
	result.Scheme = rates.PostOfficeMIS
	return result, nil
}

// checkDeposit validates amount as a positive number inside the scheme limits.
func checkDeposit(op, field string, amount float64, ctx schemeContext) error {
	if err := validation.Positive(op, field, amount); err != nil {
		return err
	}
	return validation.Bounds(op, field, amount, ctx.limits.MinDeposit, ctx.limits.MaxDeposit)
}
