package engine

import (
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/schemes"
	"github.com/iwvelando/fincalc/pkg/validation"
	"go.uber.org/zap"
)

// PPF computes a Public Provident Fund account with a fixed yearly deposit.
func (e *Engine) PPF(annualDeposit float64, years int, opts ...Option) (finance.Result, error) {
	return e.multiYear("engine.PPF", rates.PPF, annualDeposit, years, opts)
}

// Sukanya computes a Sukanya Samriddhi account. Deposits stop after the
// scheme's configured deposit years while the balance keeps compounding.
func (e *Engine) Sukanya(annualDeposit float64, years int, opts ...Option) (finance.Result, error) {
	return e.multiYear("engine.Sukanya", rates.SukanyaSamriddhi, annualDeposit, years, opts)
}

func (e *Engine) multiYear(op, id string, annualDeposit float64, years int, opts []Option) (result finance.Result, err error) {
	defer func() { e.logResult(op, result, err) }()

	ctx, err := e.scheme(op, id, opts)
	if err != nil {
		return finance.Result{}, err
	}

	result, err = schemes.MultiYearDeposit(annualDeposit, years, ctx.rate, ctx.limits.DepositYears, ctx.limits)
	if err != nil {
		return finance.Result{}, err
	}
	result.Scheme = id
	return result, nil
}

// SCSS computes a Senior Citizen Savings Scheme deposit with quarterly payouts.
func (e *Engine) SCSS(amount float64, years int, opts ...Option) (result finance.Result, err error) {
	const op = "engine.SCSS"
	defer func() { e.logResult(op, result, err) }()

	ctx, err := e.scheme(op, rates.SCSS, opts)
	if err != nil {
		return finance.Result{}, err
	}

	result, err = schemes.QuarterlyPayout(amount, ctx.rate, years, ctx.limits)
	if err != nil {
		return finance.Result{}, err
	}
	result.Scheme = rates.SCSS
	return result, nil
}

// PPFTarget computes the yearly and monthly PPF deposit needed to reach
// target after years.
func (e *Engine) PPFTarget(target float64, years int, opts ...Option) (result finance.Result, err error) {
	const op = "engine.PPFTarget"
	defer func() { e.logResult(op, result, err) }()

	ctx, err := e.scheme(op, rates.PPF, opts)
	if err != nil {
		return finance.Result{}, err
	}

	result, err = schemes.RequiredDeposit(target, years, ctx.rate, ctx.limits)
	if err != nil {
		return finance.Result{}, err
	}
	result.Scheme = rates.PPF
	return result, nil
}

// PPFExtension projects a matured PPF balance over an extension of years.
// A zero annualDeposit extends without fresh deposits only.
func (e *Engine) PPFExtension(balance float64, years int, annualDeposit float64, opts ...Option) (schemes.ExtensionResult, error) {
	const op = "engine.PPFExtension"
	ctx, err := e.scheme(op, rates.PPF, opts)
	if err != nil {
		return schemes.ExtensionResult{}, err
	}
	if annualDeposit > 0 {
		if err := validation.Bounds(op, "annual deposit", annualDeposit, ctx.limits.MinDeposit, ctx.limits.MaxDeposit); err != nil {
			return schemes.ExtensionResult{}, err
		}
	}

	result, err := schemes.Extension(balance, years, ctx.rate, annualDeposit, e.table.PPF().ExtensionBlockYears)
	if err != nil {
		return schemes.ExtensionResult{}, err
	}
	e.logger.Debug("projected PPF extension",
		zap.String("op", op),
		zap.Int("years", years),
		zap.Float64("with_deposits", result.WithDeposits.FinalAmount),
		zap.Float64("without_deposits", result.WithoutDeposits.FinalAmount),
	)
	return result, nil
}

// PPFLoan computes the loan available against a PPF balance. accountYear 0
// skips the account-age check.
func (e *Engine) PPFLoan(balance, percentage float64, accountYear int, opts ...Option) (schemes.LoanEligibility, error) {
	ctx, err := e.scheme("engine.PPFLoan", rates.PPF, opts)
	if err != nil {
		return schemes.LoanEligibility{}, err
	}
	rules := e.table.PPF()
	return schemes.Loan(balance, percentage, ctx.rate, rules.LoanRatePremium, rules.LoanPercentage, accountYear, rules.LoanFromYear)
}

// PPFWithdrawal computes the partial withdrawal allowed from a PPF balance.
func (e *Engine) PPFWithdrawal(balance, percentage float64, accountYear int) (schemes.WithdrawalEligibility, error) {
	rules := e.table.PPF()
	return schemes.Withdrawal(balance, percentage, rules.WithdrawalPercentage, accountYear, rules.WithdrawalFromYear)
}

// Eligibility evaluates the eligibility gates of every gated scheme.
func (e *Engine) Eligibility(profile schemes.Profile) ([]schemes.SchemeEligibility, error) {
	return schemes.Eligibility(profile)
}
