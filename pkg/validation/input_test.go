package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/fincalc/pkg/calcerr"
)

func TestPositive(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantError bool
	}{
		{"valid principal", 1000000, false},
		{"zero", 0, true},
		{"negative", -1000, true},
		{"NaN", math.NaN(), true},
		{"infinity", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Positive("test", "principal", tt.value)
			if (err != nil) != tt.wantError {
				t.Fatalf("Positive(%v) error = %v, wantError %v", tt.value, err, tt.wantError)
			}
			if err != nil && !errors.Is(err, calcerr.InvalidInput) {
				t.Errorf("expected InvalidInput, got %v", err)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	if err := NonNegative("test", "rate", 0); err != nil {
		t.Errorf("zero rate should be valid: %v", err)
	}
	if err := NonNegative("test", "rate", -0.5); !errors.Is(err, calcerr.InvalidInput) {
		t.Errorf("negative rate should be InvalidInput, got %v", err)
	}
	if err := NonNegative("test", "rate", math.NaN()); !errors.Is(err, calcerr.InvalidInput) {
		t.Errorf("NaN rate should be InvalidInput, got %v", err)
	}
}

func TestPositiveInt(t *testing.T) {
	if err := PositiveInt("test", "months", 12); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := PositiveInt("test", "months", 0); !errors.Is(err, calcerr.InvalidInput) {
		t.Errorf("zero months should be InvalidInput, got %v", err)
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		min, max  float64
		wantBound float64
		wantError bool
	}{
		{"inside", 1000, 500, 150000, 0, false},
		{"at minimum", 500, 500, 150000, 0, false},
		{"at maximum", 150000, 500, 150000, 0, false},
		{"below minimum", 100, 500, 150000, 500, true},
		{"above maximum", 150001, 500, 150000, 150000, true},
		{"unbounded maximum", 1e9, 1000, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Bounds("test", "deposit", tt.value, tt.min, tt.max)
			if (err != nil) != tt.wantError {
				t.Fatalf("Bounds() error = %v, wantError %v", err, tt.wantError)
			}
			if err == nil {
				return
			}
			var calcErr *calcerr.Error
			if !errors.As(err, &calcErr) {
				t.Fatalf("expected *calcerr.Error, got %T", err)
			}
			if calcErr.Kind != calcerr.OutOfBounds {
				t.Errorf("Kind = %v, want OutOfBounds", calcErr.Kind)
			}
			if calcErr.Bound != tt.wantBound {
				t.Errorf("Bound = %v, want %v", calcErr.Bound, tt.wantBound)
			}
		})
	}
}
