package engine

import (
	"github.com/iwvelando/fincalc/pkg/currency"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/gst"
	"github.com/iwvelando/fincalc/pkg/tax"
)

// TaxBenefits computes the Section 80C benefit of a yearly deposit.
func (e *Engine) TaxBenefits(deposit float64) (tax.BenefitSummary, error) {
	return tax.Benefits(deposit, e.table.Tax())
}

// TaxImplications computes the post-tax return of each result at bracket,
// a decimal fraction such as 0.3.
func (e *Engine) TaxImplications(results []finance.Result, bracket float64) ([]tax.Analysis, error) {
	return tax.Analyze(results, bracket)
}

// DefaultBracket returns the configured tax bracket for net-return analysis.
func (e *Engine) DefaultBracket() float64 {
	return e.table.Tax().DefaultBracket
}

// Convert converts amount between two currencies of the rate table.
func (e *Engine) Convert(amount float64, from, to string) (currency.Conversion, error) {
	return e.converter.Convert(amount, from, to)
}

// CurrencyPairs returns the supported conversions.
func (e *Engine) CurrencyPairs() map[string][]string {
	return e.converter.Pairs()
}

// AddGST computes GST on a GST-exclusive amount.
func (e *Engine) AddGST(base, ratePercent float64) (gst.Breakdown, error) {
	return gst.Add(base, ratePercent)
}

// RemoveGST extracts GST from a GST-inclusive amount.
func (e *Engine) RemoveGST(inclusive, ratePercent float64) (gst.Breakdown, error) {
	return gst.Remove(inclusive, ratePercent)
}
