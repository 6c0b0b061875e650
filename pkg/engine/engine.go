// Package engine is the calculation facade used by the CLI and HTTP
// adapters. An Engine is built from one immutable rate table and is safe for
// concurrent use.
package engine

import (
	"github.com/iwvelando/fincalc/pkg/amortization"
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/currency"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/schemes"
	"github.com/iwvelando/fincalc/pkg/validation"
	"go.uber.org/zap"
)

// Engine runs calculations against a rate table.
type Engine struct {
	table     *rates.Table
	converter *currency.Converter
	schedules *amortization.ScheduleGenerator
	logger    *zap.Logger
}

// New creates an engine over table.
func New(table *rates.Table, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		table:     table,
		converter: currency.NewConverter(table),
		schedules: amortization.NewScheduleGenerator(logger),
		logger:    logger,
	}
}

// Table returns the rate table the engine was built with.
func (e *Engine) Table() *rates.Table {
	return e.table
}

// Option adjusts a single scheme calculation.
type Option func(*callOptions)

type callOptions struct {
	rate    *float64
	profile *schemes.Profile
}

// WithRate overrides the table rate (percent) for one call.
func WithRate(annualRatePercent float64) Option {
	return func(o *callOptions) {
		o.rate = &annualRatePercent
	}
}

// WithProfile applies the account holder's eligibility gates to the call.
func WithProfile(profile schemes.Profile) Option {
	return func(o *callOptions) {
		o.profile = &profile
	}
}

type schemeContext struct {
	id     string
	rate   float64
	limits rates.SchemeLimits
}

// scheme resolves the rate and limits for id, applying opts.
func (e *Engine) scheme(op, id string, opts []Option) (schemeContext, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	ctx := schemeContext{id: id}
	ctx.limits, _ = e.table.Limits(id)

	if o.rate != nil {
		if err := validation.NonNegative(op, "annual rate", *o.rate); err != nil {
			return ctx, err
		}
		ctx.rate = *o.rate
	} else {
		rate, ok := e.table.Rate(id)
		if !ok {
			return ctx, calcerr.Invalid(op, "scheme", 0, "no rate configured for scheme %s", id)
		}
		ctx.rate = rate
	}

	if o.profile != nil {
		if err := schemes.CheckEligible(id, *o.profile); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

// DefaultTenure returns the configured tenure of scheme in years, or 0.
func (e *Engine) DefaultTenure(scheme string) int {
	limits, _ := e.table.Limits(scheme)
	return limits.TenureYears
}

func (e *Engine) logResult(op string, result finance.Result, err error) {
	if err != nil {
		e.logger.Debug("calculation rejected",
			zap.String("op", op),
			zap.String("kind", calcerr.KindOf(err).String()),
			zap.Error(err),
		)
		return
	}
	e.logger.Debug("calculation complete",
		zap.String("op", op),
		zap.String("scheme", result.Scheme),
		zap.Float64("maturity", result.Maturity),
		zap.Float64("invested", result.Invested),
		zap.Float64("annual_rate", result.AnnualRate),
		zap.Int("tenure", result.Tenure),
	)
}
