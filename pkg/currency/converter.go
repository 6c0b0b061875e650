// Package currency converts amounts between currencies using the static
// cross-rate table of the rate policy.
package currency

import (
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/validation"
	"github.com/shopspring/decimal"
)

// Conversion is the outcome of one conversion.
type Conversion struct {
	Amount    float64 `json:"amount" yaml:"amount"`
	From      string  `json:"from" yaml:"from"`
	To        string  `json:"to" yaml:"to"`
	Rate      float64 `json:"rate" yaml:"rate"`
	Converted float64 `json:"converted" yaml:"converted"`
}

// Converter looks up cross rates in a rate table.
type Converter struct {
	table *rates.Table
}

// NewConverter creates a converter over table.
func NewConverter(table *rates.Table) *Converter {
	return &Converter{table: table}
}

// Convert converts amount from one currency to another. Codes are case
// insensitive and need not be ISO-4217; any pair listed in the table
// converts. Converting a currency to itself uses a rate of 1 whether or not
// the currency is listed.
func (c *Converter) Convert(amount float64, from, to string) (Conversion, error) {
	const op = "currency.Convert"
	if err := validation.Positive(op, "amount", amount); err != nil {
		return Conversion{}, err
	}

	from = rates.NormalizeCurrency(from)
	to = rates.NormalizeCurrency(to)
	if from == "" || to == "" {
		return Conversion{}, calcerr.Invalid(op, "currency", 0, "currency codes are required")
	}

	rate := 1.0
	if from != to {
		var ok bool
		rate, ok = c.table.CrossRate(from, to)
		if !ok {
			return Conversion{}, calcerr.Unsupported(op, from, to)
		}
	}

	converted := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate))
	return Conversion{
		Amount:    amount,
		From:      from,
		To:        to,
		Rate:      rate,
		Converted: converted.InexactFloat64(),
	}, nil
}

// Pairs returns the supported conversions as from -> sorted targets.
func (c *Converter) Pairs() map[string][]string {
	pairs := make(map[string][]string)
	for _, from := range c.table.Currencies() {
		pairs[from] = c.table.Targets(from)
	}
	return pairs
}
