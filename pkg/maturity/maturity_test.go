package maturity

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/fincalc/pkg/calcerr"
)

func TestLumpSum(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     int
		expected  float64
	}{
		{"fixed deposit 6.5% five years", 100000, 6.5, 5, 137008.66},
		{"NSC 6.8% five years", 50000, 6.8, 5, 69474.63},
		{"zero rate", 25000, 0, 3, 25000},
		{"single year", 1000, 10, 1, 1100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := LumpSum(tt.principal, tt.rate, tt.years)
			if err != nil {
				t.Fatalf("LumpSum() error = %v", err)
			}
			if math.Abs(result.Maturity-tt.expected) > 0.01 {
				t.Errorf("maturity = %.4f, expected %.2f", result.Maturity, tt.expected)
			}
			if math.Abs(result.Interest-(result.Maturity-tt.principal)) > 1e-9 {
				t.Errorf("interest %.2f inconsistent with maturity", result.Interest)
			}
		})
	}
}

func TestLumpSumMonotonic(t *testing.T) {
	previous := 0.0
	for years := 1; years <= 30; years++ {
		result, err := LumpSum(10000, 7, years)
		if err != nil {
			t.Fatalf("LumpSum(years=%d) error = %v", years, err)
		}
		if result.Maturity <= previous {
			t.Errorf("maturity at %d years (%.2f) not above %d years (%.2f)", years, result.Maturity, years-1, previous)
		}
		previous = result.Maturity
	}

	low, _ := LumpSum(10000, 5, 10)
	high, _ := LumpSum(10000, 6, 10)
	if high.Maturity <= low.Maturity {
		t.Errorf("higher rate gave lower maturity: %.2f <= %.2f", high.Maturity, low.Maturity)
	}
}

func TestLumpSumRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		years     int
	}{
		{"zero principal", 0, 5, 1},
		{"negative rate", 100, -1, 1},
		{"zero years", 100, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LumpSum(tc.principal, tc.rate, tc.years); !errors.Is(err, calcerr.InvalidInput) {
				t.Errorf("error = %v, want InvalidInput", err)
			}
		})
	}
}

func TestDoubling(t *testing.T) {
	result, err := Doubling(100000, 7.5)
	if err != nil {
		t.Fatalf("Doubling() error = %v", err)
	}

	if result.Maturity != 200000 {
		t.Errorf("maturity = %.2f, expected 200000", result.Maturity)
	}
	if math.Abs(result.DoublingTimeYears-9.58) > 0.01 {
		t.Errorf("doubling time = %.4f, expected about 9.58", result.DoublingTimeYears)
	}
	if result.Tenure != 10 {
		t.Errorf("tenure = %d, expected 10 whole years", result.Tenure)
	}

	if _, err := Doubling(100000, 0); !errors.Is(err, calcerr.InvalidInput) {
		t.Errorf("zero rate error = %v, want InvalidInput", err)
	}
	if !math.IsInf(DoublingTime(0), 1) {
		t.Errorf("DoublingTime(0) should be +Inf")
	}
}
