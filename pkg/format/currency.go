// Package format renders amounts for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is given.
const DefaultCurrency = "INR"

// Currency returns amount with the currency symbol and thousands separators
// of code (e.g., "₹1,234.56", "-$1,234.56"). Unknown codes are rendered as
// "XYZ 1,234.56".
func Currency(amount float64, code string) string {
	if code == "" {
		code = DefaultCurrency
	}
	code = strings.ToUpper(code)

	cur := money.GetCurrency(code)
	if cur == nil {
		return code + " " + NumericCurrency(amount)
	}

	minor := decimal.NewFromFloat(amount).Mul(decimal.New(1, int32(cur.Fraction))).Round(0)
	return money.New(minor.IntPart(), code).Display()
}

// Rupees is Currency in INR.
func Rupees(amount float64) string {
	return Currency(amount, DefaultCurrency)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	return sign + formatted
}

// Percent renders a percentage with two decimals, e.g. "7.10%".
func Percent(value float64) string {
	return fmt.Sprintf("%.*f%%", constants.DecimalPrecision, value)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
