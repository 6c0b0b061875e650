package engine

import (
	"errors"
	"math"

	"github.com/iwvelando/fincalc/pkg/amortization"
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/comparison"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/maturity"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/schemes"
	"github.com/iwvelando/fincalc/pkg/validation"
	"go.uber.org/zap"
)

// Names of the non-scheme products in investment comparisons.
const (
	InvestmentFD   = "fd"
	InvestmentRD   = "rd"
	InvestmentSIP  = "sip"
	InvestmentPPF  = "ppf"
	InvestmentELSS = "elss"
	InvestmentNSC  = "nsc"
)

// CompareSchemes invests amount for years in every applicable government
// scheme at the table rates and ranks them by maturity. PPF is included when
// years reach its tenure and amount/years fits its deposit limits; NSC is
// held for at most its tenure; KVP only once years cover its doubling time;
// SCSS only when years fit inside its tenure. A non-nil profile drops
// schemes the holder is not eligible for. Candidates that are out of bounds
// or ineligible are left out rather than failing the comparison.
func (e *Engine) CompareSchemes(amount float64, years int, profile *schemes.Profile) (comparison.Ranking, error) {
	const op = "engine.CompareSchemes"
	if err := validation.Positive(op, "amount", amount); err != nil {
		return comparison.Ranking{}, err
	}
	if err := validation.PositiveInt(op, "years", years); err != nil {
		return comparison.Ranking{}, err
	}

	type candidate struct {
		id        string
		applies   bool
		calculate func() (finance.Result, error)
	}

	ppfTenure := e.DefaultTenure(rates.PPF)
	nscYears := years
	if tenure := e.DefaultTenure(rates.NSC); tenure > 0 && tenure < years {
		nscYears = tenure
	}
	scssTenure := e.DefaultTenure(rates.SCSS)
	kvpRate, _ := e.table.Rate(rates.KVP)
	kvpYears := math.Ceil(maturity.DoublingTime(kvpRate))

	var opts []Option
	if profile != nil {
		opts = append(opts, WithProfile(*profile))
	}

	candidates := []candidate{
		{rates.PPF, years >= ppfTenure, func() (finance.Result, error) {
			return e.PPF(amount/float64(years), years, opts...)
		}},
		{rates.NSC, true, func() (finance.Result, error) { return e.NSC(amount, nscYears, opts...) }},
		{rates.KVP, float64(years) >= kvpYears, func() (finance.Result, error) { return e.KVP(amount, opts...) }},
		{rates.PostOfficeTD, true, func() (finance.Result, error) { return e.PostOfficeTD(amount, years, opts...) }},
		{rates.SCSS, scssTenure == 0 || years <= scssTenure, func() (finance.Result, error) {
			return e.SCSS(amount, years, opts...)
		}},
	}

	entries := make([]comparison.Entry, 0, len(candidates))
	for _, c := range candidates {
		if !c.applies {
			continue
		}
		result, err := c.calculate()
		if err != nil {
			if omitted(err) {
				e.logger.Debug("scheme omitted from comparison",
					zap.String("op", op),
					zap.String("scheme", c.id),
					zap.Error(err),
				)
				continue
			}
			return comparison.Ranking{}, err
		}
		entries = append(entries, comparison.Entry{Name: c.id, Result: result})
	}

	return comparison.Rank(entries), nil
}

// omitted reports whether a candidate failure only removes it from a comparison.
func omitted(err error) bool {
	return errors.Is(err, calcerr.OutOfBounds) || errors.Is(err, calcerr.IneligibleScheme)
}

// CompareInvestments compares putting amount to work for years in an FD, an
// RD and a SIP (amount spread evenly over the months) and PPF as a lump sum,
// all at the configured benchmark rates.
func (e *Engine) CompareInvestments(amount float64, years int) (comparison.Ranking, error) {
	const op = "engine.CompareInvestments"
	if err := validation.Positive(op, "amount", amount); err != nil {
		return comparison.Ranking{}, err
	}
	if err := validation.PositiveInt(op, "years", years); err != nil {
		return comparison.Ranking{}, err
	}

	bench := e.table.Benchmarks().Investments
	months := years * constants.MonthsPerYear
	monthly := amount / float64(months)

	fd := finance.NewResult(InvestmentFD, maturity.Growth(amount, bench.FD, years), amount, bench.FD, years, constants.UnitYears)

	rdRate := amortization.MonthlyRate(bench.RD)
	rd := finance.NewResult(InvestmentRD, monthly*amortization.AnnuityDueFactor(rdRate, months), amount, bench.RD, months, constants.UnitMonths)
	rd.PeriodicPayment = monthly

	sipRate := amortization.MonthlyRate(bench.SIP)
	sip := finance.NewResult(InvestmentSIP, monthly*amortization.OrdinaryAnnuityFactor(sipRate, months), amount, bench.SIP, months, constants.UnitMonths)
	sip.PeriodicPayment = monthly

	ppf := finance.NewResult(InvestmentPPF, maturity.Growth(amount, bench.PPF, years), amount, bench.PPF, years, constants.UnitYears)
	ppf.TaxFree = true

	ranking := comparison.Rank([]comparison.Entry{
		{Name: InvestmentFD, Result: fd},
		{Name: InvestmentRD, Result: rd},
		{Name: InvestmentSIP, Result: sip},
		{Name: InvestmentPPF, Result: ppf},
	})
	e.logger.Debug("compared investments", zap.String("op", op), zap.String("best", ranking.Best.Name))
	return ranking, nil
}

// CompareAlternatives compares a yearly PPF deposit with the same deposit
// made into an FD, ELSS and NSC at the configured benchmark rates, each
// treated as an annuity due.
func (e *Engine) CompareAlternatives(annualDeposit float64, years int, opts ...Option) (comparison.Ranking, error) {
	const op = "engine.CompareAlternatives"
	ppf, err := e.PPF(annualDeposit, years, opts...)
	if err != nil {
		return comparison.Ranking{}, err
	}

	bench := e.table.Benchmarks().Alternative
	invested := annualDeposit * float64(years)
	alternative := func(name string, ratePercent float64) comparison.Entry {
		factor := amortization.AnnuityDueFactor(mathutil.PercentToDecimal(ratePercent), years)
		result := finance.NewResult(name, annualDeposit*factor, invested, ratePercent, years, constants.UnitYears)
		result.PeriodicPayment = annualDeposit
		return comparison.Entry{Name: name, Result: result}
	}

	ranking := comparison.Rank([]comparison.Entry{
		{Name: InvestmentPPF, Result: ppf},
		alternative(InvestmentFD, bench.FD),
		alternative(InvestmentELSS, bench.ELSS),
		alternative(InvestmentNSC, bench.NSC),
	})
	e.logger.Debug("compared PPF alternatives", zap.String("op", op), zap.String("best", ranking.Best.Name))
	return ranking, nil
}
