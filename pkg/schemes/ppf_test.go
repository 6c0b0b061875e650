package schemes

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/fincalc/pkg/calcerr"
)

func TestExtension(t *testing.T) {
	result, err := Extension(1000000, 5, 7.1, 150000, 5)
	if err != nil {
		t.Fatalf("Extension() error = %v", err)
	}

	if math.Abs(result.WithoutDeposits.FinalAmount-1409117.97) > 0.01 {
		t.Errorf("without deposits = %.2f, expected 1409117.97", result.WithoutDeposits.FinalAmount)
	}
	if math.Abs(result.WithDeposits.FinalAmount-2334819.41) > 0.01 {
		t.Errorf("with deposits = %.2f, expected 2334819.41", result.WithDeposits.FinalAmount)
	}
	if result.WithDeposits.AdditionalInvestment != 750000 {
		t.Errorf("additional investment = %.2f, expected 750000", result.WithDeposits.AdditionalInvestment)
	}
	if result.WithDeposits.FinalAmount <= result.WithoutDeposits.FinalAmount {
		t.Error("continuing deposits should end higher than growth only")
	}

	ten, err := Extension(1000000, 10, 7.1, 0, 5)
	if err != nil {
		t.Fatalf("Extension(10 years) error = %v", err)
	}
	if ten.WithDeposits.FinalAmount != ten.WithoutDeposits.FinalAmount {
		t.Errorf("zero deposit should match growth only: %.2f vs %.2f",
			ten.WithDeposits.FinalAmount, ten.WithoutDeposits.FinalAmount)
	}

	if _, err := Extension(1000000, 3, 7.1, 150000, 5); !errors.Is(err, calcerr.InvalidInput) {
		t.Errorf("non-block extension error = %v, want InvalidInput", err)
	}
}

func TestLoan(t *testing.T) {
	tests := []struct {
		name        string
		percentage  float64
		accountYear int
		wantKind    calcerr.Kind
		wantMaxLoan float64
	}{
		{name: "default percentage", percentage: 25, accountYear: 3, wantMaxLoan: 125000},
		{name: "unknown account year", percentage: 10, accountYear: 0, wantMaxLoan: 50000},
		{name: "percentage above maximum", percentage: 30, accountYear: 3, wantKind: calcerr.OutOfBounds},
		{name: "account too young", percentage: 25, accountYear: 2, wantKind: calcerr.IneligibleScheme},
		{name: "zero percentage", percentage: 0, accountYear: 3, wantKind: calcerr.InvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Loan(500000, tt.percentage, 7.1, 1, 25, tt.accountYear, 3)
			if tt.wantKind != 0 {
				if !errors.Is(err, tt.wantKind) {
					t.Fatalf("error = %v, want %s", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Loan() error = %v", err)
			}
			if math.Abs(result.MaxLoan-tt.wantMaxLoan) > 1e-9 {
				t.Errorf("max loan = %.2f, expected %.2f", result.MaxLoan, tt.wantMaxLoan)
			}
			if math.Abs(result.InterestRate-8.1) > 1e-9 {
				t.Errorf("loan rate = %.2f, expected 8.1", result.InterestRate)
			}
			if result.RepaymentMonths != LoanRepaymentMonths {
				t.Errorf("repayment months = %d, expected %d", result.RepaymentMonths, LoanRepaymentMonths)
			}
		})
	}
}

func TestWithdrawal(t *testing.T) {
	result, err := Withdrawal(800000, 50, 50, 7, 7)
	if err != nil {
		t.Fatalf("Withdrawal() error = %v", err)
	}
	if result.MaxWithdrawal != 400000 {
		t.Errorf("max withdrawal = %.2f, expected 400000", result.MaxWithdrawal)
	}
	if !result.TaxFree {
		t.Error("withdrawals should be tax free")
	}

	if _, err := Withdrawal(800000, 50, 50, 6, 7); !errors.Is(err, calcerr.IneligibleScheme) {
		t.Errorf("early withdrawal error = %v, want IneligibleScheme", err)
	}
	if _, err := Withdrawal(800000, 60, 50, 8, 7); !errors.Is(err, calcerr.OutOfBounds) {
		t.Errorf("excess withdrawal error = %v, want OutOfBounds", err)
	}
}
