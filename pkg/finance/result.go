// Package finance holds the request and result records exchanged between the
// calculation engine and its callers.
package finance

import (
	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// Result is the outcome of one calculation. It is derived entirely from the
// request and the rate table and is returned by value.
type Result struct {
	Scheme        string  `json:"scheme" yaml:"scheme"`
	Maturity      float64 `json:"maturity" yaml:"maturity"`
	Invested      float64 `json:"invested" yaml:"invested"`
	Interest      float64 `json:"interest" yaml:"interest"`
	EffectiveRate float64 `json:"effectiveRate" yaml:"effectiveRate"`
	AnnualRate    float64 `json:"annualRate" yaml:"annualRate"`
	Tenure        int     `json:"tenure" yaml:"tenure"`
	Unit          string  `json:"unit" yaml:"unit"`
	TaxFree       bool    `json:"taxFree" yaml:"taxFree"`

	// Scheme-specific extras; zero when not applicable.
	PeriodicPayment        float64 `json:"periodicPayment,omitempty" yaml:"periodicPayment,omitempty"`
	QuarterlyPayout        float64 `json:"quarterlyPayout,omitempty" yaml:"quarterlyPayout,omitempty"`
	AnnualPayout           float64 `json:"annualPayout,omitempty" yaml:"annualPayout,omitempty"`
	MonthlyIncome          float64 `json:"monthlyIncome,omitempty" yaml:"monthlyIncome,omitempty"`
	DoublingTimeYears      float64 `json:"doublingTimeYears,omitempty" yaml:"doublingTimeYears,omitempty"`
	DepositYears           int     `json:"depositYears,omitempty" yaml:"depositYears,omitempty"`
	RequiredAnnualDeposit  float64 `json:"requiredAnnualDeposit,omitempty" yaml:"requiredAnnualDeposit,omitempty"`
	RequiredMonthlyDeposit float64 `json:"requiredMonthlyDeposit,omitempty" yaml:"requiredMonthlyDeposit,omitempty"`
}

// NewResult derives Interest and EffectiveRate from maturity and invested.
func NewResult(scheme string, maturity, invested, annualRate float64, tenure int, unit string) Result {
	interest := maturity - invested
	return Result{
		Scheme:        scheme,
		Maturity:      maturity,
		Invested:      invested,
		Interest:      interest,
		EffectiveRate: mathutil.CalculatePercentage(interest, invested),
		AnnualRate:    annualRate,
		Tenure:        tenure,
		Unit:          unit,
	}
}

// Rounded returns a copy with every currency amount rounded to paise.
// Rates and durations are rounded to two decimals as well.
func (r Result) Rounded() Result {
	r.Maturity = mathutil.Round(r.Maturity)
	r.Invested = mathutil.Round(r.Invested)
	r.Interest = mathutil.Round(r.Interest)
	r.EffectiveRate = mathutil.Round(r.EffectiveRate)
	r.PeriodicPayment = mathutil.Round(r.PeriodicPayment)
	r.QuarterlyPayout = mathutil.Round(r.QuarterlyPayout)
	r.AnnualPayout = mathutil.Round(r.AnnualPayout)
	r.MonthlyIncome = mathutil.Round(r.MonthlyIncome)
	r.DoublingTimeYears = mathutil.Round(r.DoublingTimeYears)
	r.RequiredAnnualDeposit = mathutil.Round(r.RequiredAnnualDeposit)
	r.RequiredMonthlyDeposit = mathutil.Round(r.RequiredMonthlyDeposit)
	return r
}
