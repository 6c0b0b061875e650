package engine

import (
	"github.com/iwvelando/fincalc/pkg/amortization"
	"github.com/iwvelando/fincalc/pkg/comparison"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/validation"
	"go.uber.org/zap"
)

// EMI computes the monthly installment of a loan over months.
func (e *Engine) EMI(principal, annualRatePercent float64, months int) (finance.Result, error) {
	result, err := amortization.EMI(principal, annualRatePercent, months)
	e.logResult("engine.EMI", result, err)
	return result, err
}

// Loan computes the monthly installment of a loan over years.
func (e *Engine) Loan(principal, annualRatePercent float64, years int) (finance.Result, error) {
	result, err := amortization.Loan(principal, annualRatePercent, years)
	e.logResult("engine.Loan", result, err)
	return result, err
}

// Schedule returns the month-by-month amortization of a loan.
func (e *Engine) Schedule(principal, annualRatePercent float64, months int) ([]amortization.Installment, error) {
	if err := validation.NonNegative("engine.Schedule", "annual rate", annualRatePercent); err != nil {
		return nil, err
	}
	return e.schedules.Generate(principal, annualRatePercent, months)
}

// CompareLoans computes every configured loan type for principal over years
// and ranks them by total amount paid, cheapest first.
func (e *Engine) CompareLoans(principal float64, years int) (comparison.Ranking, error) {
	const op = "engine.CompareLoans"
	if err := validation.Positive(op, "principal", principal); err != nil {
		return comparison.Ranking{}, err
	}
	if err := validation.PositiveInt(op, "years", years); err != nil {
		return comparison.Ranking{}, err
	}

	loanTypes := e.table.LoanTypes()
	candidates := make([]comparison.Entry, 0, len(loanTypes))
	for _, lt := range loanTypes {
		result, err := amortization.Loan(principal, lt.Rate, years)
		if err != nil {
			return comparison.Ranking{}, err
		}
		result.Scheme = lt.Name
		candidates = append(candidates, comparison.Entry{Name: lt.Name, Result: result})
	}

	ranking := comparison.RankByCost(candidates)
	e.logger.Debug("compared loan types",
		zap.String("op", op),
		zap.Int("candidates", len(candidates)),
		zap.String("best", ranking.Best.Name),
	)
	return ranking, nil
}
