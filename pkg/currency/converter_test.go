package currency

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/rates"
)

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	table, err := rates.New(rates.Policy{
		Currency: map[string]map[string]float64{
			"USD": {"INR": 83.0, "EUR": 0.85, "JPY": 110.0},
			"INR": {"USD": 0.012},
			"BTC": {"INR": 5e6},
		},
	})
	if err != nil {
		t.Fatalf("rates.New() error = %v", err)
	}
	return NewConverter(table)
}

func TestConvert(t *testing.T) {
	converter := newTestConverter(t)

	tests := []struct {
		name     string
		amount   float64
		from     string
		to       string
		wantRate float64
		want     float64
	}{
		{"USD to INR", 100, "USD", "INR", 83, 8300},
		{"lower-case codes", 100, "usd", "inr", 83, 8300},
		{"INR to USD", 8300, "INR", "USD", 0.012, 99.6},
		{"identity", 100, "USD", "USD", 1, 100},
		{"identity for unlisted currency", 42.5, "GBP", "gbp", 1, 42.5},
		{"identity for a non-ISO code", 100, "XYZ", "XYZ", 1, 100},
		{"configured non-ISO pair", 2, "BTC", "INR", 5e6, 1e7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := converter.Convert(tt.amount, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if got.Rate != tt.wantRate {
				t.Errorf("rate = %v, want %v", got.Rate, tt.wantRate)
			}
			if math.Abs(got.Converted-tt.want) > 1e-9 {
				t.Errorf("converted = %v, want %v", got.Converted, tt.want)
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	converter := newTestConverter(t)

	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		want   calcerr.Kind
	}{
		{"unlisted pair", 100, "INR", "JPY", calcerr.UnsupportedPair},
		{"unknown source row", 100, "GBP", "INR", calcerr.UnsupportedPair},
		{"unlisted non-ISO code", 100, "XYZ", "INR", calcerr.UnsupportedPair},
		{"missing code", 100, "", "INR", calcerr.InvalidInput},
		{"zero amount", 0, "USD", "INR", calcerr.InvalidInput},
		{"negative amount", -5, "USD", "INR", calcerr.InvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := converter.Convert(tt.amount, tt.from, tt.to)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestPairs(t *testing.T) {
	pairs := newTestConverter(t).Pairs()
	usd := pairs["USD"]
	if len(usd) != 3 || usd[0] != "EUR" || usd[1] != "INR" || usd[2] != "JPY" {
		t.Errorf("USD targets = %v, want [EUR INR JPY]", usd)
	}
}
