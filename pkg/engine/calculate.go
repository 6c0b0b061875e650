package engine

import (
	"sort"

	"github.com/iwvelando/fincalc/pkg/amortization"
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/rates"
)

type calculator func(e *Engine, req finance.Request) (finance.Result, error)

// calculators maps every id accepted by Calculate to its operation. The
// request's rate is always used, overriding the table.
var calculators = map[string]calculator{
	amortization.SchemeEMI: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.EMI(req.Amount, req.AnnualRate, req.Months())
	},
	amortization.SchemeLoan: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.Loan(req.Amount, req.AnnualRate, req.Years())
	},
	amortization.SchemeRecurringDeposit: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.RecurringDeposit(req.Amount, req.AnnualRate, req.Months())
	},
	rates.FD: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.FixedDeposit(req.Amount, req.AnnualRate, req.Years())
	},
	rates.NSC: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.NSC(req.Amount, req.Years(), WithRate(req.AnnualRate))
	},
	rates.KVP: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.KVP(req.Amount, WithRate(req.AnnualRate))
	},
	rates.PostOfficeTD: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.PostOfficeTD(req.Amount, req.Years(), WithRate(req.AnnualRate))
	},
	rates.PostOfficeRD: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.PostOfficeRD(req.Amount, req.Years(), WithRate(req.AnnualRate))
	},
	rates.PostOfficeMIS: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.PostOfficeMIS(req.Amount, WithRate(req.AnnualRate))
	},
	rates.PPF: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.PPF(req.Amount, req.Years(), WithRate(req.AnnualRate))
	},
	rates.SukanyaSamriddhi: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.Sukanya(req.Amount, req.Years(), WithRate(req.AnnualRate))
	},
	rates.SCSS: func(e *Engine, req finance.Request) (finance.Result, error) {
		return e.SCSS(req.Amount, req.Years(), WithRate(req.AnnualRate))
	},
}

// monthly lists the calculations whose tenure is counted in months. All
// others run on whole years.
var monthly = map[string]bool{
	amortization.SchemeEMI:              true,
	amortization.SchemeRecurringDeposit: true,
}

// Calculate validates req and runs the calculation named by scheme. A
// year-based calculation given a tenure in months must receive a whole
// number of years.
func (e *Engine) Calculate(scheme string, req finance.Request) (finance.Result, error) {
	const op = "engine.Calculate"
	calc, ok := calculators[scheme]
	if !ok {
		return finance.Result{}, calcerr.Invalid(op, "scheme", 0, "unknown scheme %q", scheme)
	}
	if err := req.Validate(op); err != nil {
		return finance.Result{}, err
	}
	if !monthly[scheme] && !req.WholeYears() {
		return finance.Result{}, calcerr.Invalid(op, "tenure", float64(req.Tenure),
			"%s runs on whole years, got %d months", scheme, req.Tenure)
	}
	return calc(e, req)
}

// Calculations returns the ids accepted by Calculate, sorted.
func Calculations() []string {
	ids := make([]string, 0, len(calculators))
	for id := range calculators {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type schemeCalculator func(e *Engine, amount float64, years int, opts []Option) (finance.Result, error)

// schemeCalculators backs Scheme. amount is the yearly deposit for PPF and
// Sukanya, the monthly deposit for the Post Office RD and a lump sum
// otherwise.
var schemeCalculators = map[string]schemeCalculator{
	rates.PPF: func(e *Engine, amount float64, years int, opts []Option) (finance.Result, error) {
		return e.PPF(amount, years, opts...)
	},
	rates.SukanyaSamriddhi: func(e *Engine, amount float64, years int, opts []Option) (finance.Result, error) {
		return e.Sukanya(amount, years, opts...)
	},
	rates.NSC: func(e *Engine, amount float64, years int, opts []Option) (finance.Result, error) {
		return e.NSC(amount, years, opts...)
	},
	rates.KVP: func(e *Engine, amount float64, _ int, opts []Option) (finance.Result, error) {
		return e.KVP(amount, opts...)
	},
	rates.SCSS: func(e *Engine, amount float64, years int, opts []Option) (finance.Result, error) {
		return e.SCSS(amount, years, opts...)
	},
	rates.PostOfficeTD: func(e *Engine, amount float64, years int, opts []Option) (finance.Result, error) {
		return e.PostOfficeTD(amount, years, opts...)
	},
	rates.PostOfficeRD: func(e *Engine, amount float64, years int, opts []Option) (finance.Result, error) {
		return e.PostOfficeRD(amount, years, opts...)
	},
	rates.PostOfficeMIS: func(e *Engine, amount float64, _ int, opts []Option) (finance.Result, error) {
		return e.PostOfficeMIS(amount, opts...)
	},
}

// Scheme runs the government scheme id at the table rate unless overridden
// by opts. A zero years uses the scheme's configured tenure.
func (e *Engine) Scheme(id string, amount float64, years int, opts ...Option) (finance.Result, error) {
	calc, ok := schemeCalculators[id]
	if !ok {
		return finance.Result{}, calcerr.Invalid("engine.Scheme", "scheme", 0, "unknown scheme %q", id)
	}
	if years == 0 {
		years = e.DefaultTenure(id)
	}
	return calc(e, amount, years, opts)
}

// Schemes returns the ids accepted by Scheme, sorted.
func Schemes() []string {
	ids := make([]string, 0, len(schemeCalculators))
	for id := range schemeCalculators {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
