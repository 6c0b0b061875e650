// Package gst adds and removes Goods and Services Tax, split evenly into
// its central (CGST) and state (SGST) halves.
package gst

import (
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/validation"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Breakdown is a GST-exclusive base and the tax on it.
type Breakdown struct {
	Base  float64 `json:"base" yaml:"base"`
	Rate  float64 `json:"rate" yaml:"rate"`
	Tax   float64 `json:"tax" yaml:"tax"`
	Total float64 `json:"total" yaml:"total"`
	CGST  float64 `json:"cgst" yaml:"cgst"`
	SGST  float64 `json:"sgst" yaml:"sgst"`
}

// Add computes the tax on a GST-exclusive base amount.
func Add(base, ratePercent float64) (Breakdown, error) {
	if err := validate("gst.Add", "base amount", base, ratePercent); err != nil {
		return Breakdown{}, err
	}

	b := decimal.NewFromFloat(base)
	tax := b.Mul(decimal.NewFromFloat(ratePercent)).Div(hundred)
	return breakdown(b, tax, ratePercent), nil
}

// Remove extracts the base and tax from a GST-inclusive amount.
func Remove(inclusive, ratePercent float64) (Breakdown, error) {
	if err := validate("gst.Remove", "inclusive amount", inclusive, ratePercent); err != nil {
		return Breakdown{}, err
	}

	total := decimal.NewFromFloat(inclusive)
	divisor := hundred.Add(decimal.NewFromFloat(ratePercent)).Div(hundred)
	base := total.Div(divisor)
	return breakdown(base, total.Sub(base), ratePercent), nil
}

func breakdown(base, tax decimal.Decimal, ratePercent float64) Breakdown {
	half := tax.Div(two)
	return Breakdown{
		Base:  base.InexactFloat64(),
		Rate:  ratePercent,
		Tax:   tax.InexactFloat64(),
		Total: base.Add(tax).InexactFloat64(),
		CGST:  half.InexactFloat64(),
		SGST:  half.InexactFloat64(),
	}
}

func validate(op, field string, amount, ratePercent float64) error {
	if err := validation.Positive(op, field, amount); err != nil {
		return err
	}
	if !mathutil.IsFinite(ratePercent) || ratePercent < 0 || ratePercent >= 100 {
		return calcerr.Invalid(op, "rate", ratePercent, "GST rate must be in [0, 100), got %.2f", ratePercent)
	}
	return nil
}
