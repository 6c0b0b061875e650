// Package tax applies Section 80C exemptions and income-tax brackets to
// calculation results.
package tax

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// ExemptionCap returns the part of deposit eligible for the exemption.
func ExemptionCap(deposit, limit float64) float64 {
	return math.Min(deposit, limit)
}

// BracketSavings returns the tax saved on eligible in each bracket. Brackets
// are decimal fractions, e.g. 0.3 for 30%.
func BracketSavings(eligible float64, brackets []float64) map[float64]float64 {
	savings := make(map[float64]float64, len(brackets))
	for _, b := range brackets {
		savings[b] = eligible * b
	}
	return savings
}

// Analysis is the post-tax view of one result.
type Analysis struct {
	Scheme          string  `json:"scheme" yaml:"scheme"`
	TaxFree         bool    `json:"taxFree" yaml:"taxFree"`
	TaxableInterest float64 `json:"taxableInterest" yaml:"taxableInterest"`
	TaxAmount       float64 `json:"taxAmount" yaml:"taxAmount"`
	NetReturn       float64 `json:"netReturn" yaml:"netReturn"`
	EffectiveRate   float64 `json:"effectiveRate" yaml:"effectiveRate"`
}

// NetReturn taxes the interest of result at bracket. A tax-free result keeps
// its full maturity. Negative interest is never taxed.
func NetReturn(result finance.Result, bracket float64, taxFree bool) Analysis {
	if taxFree {
		return Analysis{
			Scheme:        result.Scheme,
			TaxFree:       true,
			NetReturn:     result.Maturity,
			EffectiveRate: mathutil.CalculatePercentage(result.Maturity-result.Invested, result.Invested),
		}
	}

	taxable := math.Max(result.Interest, 0)
	taxAmount := taxable * bracket
	net := result.Maturity - taxAmount
	return Analysis{
		Scheme:          result.Scheme,
		TaxableInterest: taxable,
		TaxAmount:       taxAmount,
		NetReturn:       net,
		EffectiveRate:   mathutil.CalculatePercentage(net-result.Invested, result.Invested),
	}
}

// Analyze applies NetReturn to every result, keeping the input order. Each
// result's own TaxFree flag decides whether it is taxed.
func Analyze(results []finance.Result, bracket float64) ([]Analysis, error) {
	if err := checkBracket("tax.Analyze", bracket); err != nil {
		return nil, err
	}
	out := make([]Analysis, 0, len(results))
	for _, r := range results {
		out = append(out, NetReturn(r, bracket, r.TaxFree))
	}
	return out, nil
}

// BenefitSummary is the Section 80C benefit of a yearly deposit.
type BenefitSummary struct {
	Deposit        float64         `json:"deposit" yaml:"deposit"`
	EligibleAmount float64         `json:"eligibleAmount" yaml:"eligibleAmount"`
	Savings        []BracketSaving `json:"savings" yaml:"savings"`
	MaxBenefit     float64         `json:"maxBenefit" yaml:"maxBenefit"`
}

// BracketSaving is the tax saved in one bracket.
type BracketSaving struct {
	Bracket float64 `json:"bracket" yaml:"bracket"`
	Saving  float64 `json:"saving" yaml:"saving"`
}

// Benefits computes the eligible amount, the saving in every configured
// bracket (ascending) and the maximum benefit, which is the saving in the
// highest bracket.
func Benefits(deposit float64, policy rates.TaxPolicy) (BenefitSummary, error) {
	const op = "tax.Benefits"
	if err := validation.Positive(op, "deposit", deposit); err != nil {
		return BenefitSummary{}, err
	}

	eligible := deposit
	if policy.ExemptionLimit > 0 {
		eligible = ExemptionCap(deposit, policy.ExemptionLimit)
	}

	savings := BracketSavings(eligible, policy.Brackets)
	summary := BenefitSummary{Deposit: deposit, EligibleAmount: eligible}
	for _, b := range policy.Brackets {
		summary.Savings = append(summary.Savings, BracketSaving{Bracket: b, Saving: savings[b]})
		if savings[b] > summary.MaxBenefit {
			summary.MaxBenefit = savings[b]
		}
	}
	return summary, nil
}

func checkBracket(op string, bracket float64) error {
	if !mathutil.IsFinite(bracket) || bracket < 0 || bracket >= 1 {
		return calcerr.Invalid(op, "bracket", bracket, "tax bracket must be a fraction in [0, 1), got %v", bracket)
	}
	return nil
}
