package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/comparison"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/schemes"
	"github.com/iwvelando/fincalc/pkg/testutil"
)

func names(ranking comparison.Ranking) []string {
	out := make([]string, 0, len(ranking.Entries))
	for _, entry := range ranking.Entries {
		out = append(out, entry.Name)
	}
	return out
}

func equalNames(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestCompareSchemes(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name     string
		amount   float64
		years    int
		profile  *schemes.Profile
		expected []string
	}{
		{
			name:     "One year leaves KVP and PPF out",
			amount:   100000,
			years:    1,
			expected: []string{rates.SCSS, rates.PostOfficeTD, rates.NSC},
		},
		{
			name:     "Five years is short of the KVP doubling time",
			amount:   100000,
			years:    5,
			expected: []string{rates.SCSS, rates.PostOfficeTD, rates.NSC},
		},
		{
			name:     "Profile below 60 drops SCSS",
			amount:   100000,
			years:    5,
			profile:  &schemes.Profile{Age: 35},
			expected: []string{rates.PostOfficeTD, rates.NSC},
		},
		{
			name:     "Amount above the SCSS ceiling drops SCSS",
			amount:   5000000,
			years:    5,
			expected: []string{rates.PostOfficeTD, rates.NSC},
		},
		{
			name:     "Ten years brings in KVP",
			amount:   100000,
			years:    10,
			expected: []string{rates.KVP, rates.PostOfficeTD, rates.NSC},
		},
		{
			name:     "Fifteen years brings in PPF and drops SCSS",
			amount:   1500000,
			years:    15,
			expected: []string{rates.PostOfficeTD, rates.KVP, rates.PPF, rates.NSC},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranking, err := e.CompareSchemes(tt.amount, tt.years, tt.profile)
			if err != nil {
				t.Fatalf("CompareSchemes() error = %v", err)
			}
			if got := names(ranking); !equalNames(got, tt.expected) {
				t.Errorf("order = %v, want %v", got, tt.expected)
			}
			if ranking.Best.Name != tt.expected[0] {
				t.Errorf("best = %s, want %s", ranking.Best.Name, tt.expected[0])
			}
		})
	}
}

func TestCompareSchemesValues(t *testing.T) {
	e := newTestEngine(t)
	ranking, err := e.CompareSchemes(100000, 10, nil)
	if err != nil {
		t.Fatal(err)
	}

	expected := map[string]float64{
		rates.KVP:          200000,
		rates.PostOfficeTD: 194884.39,
		rates.NSC:          138949.27,
	}
	for name, maturity := range expected {
		entry := testutil.FindEntry(ranking, name)
		if entry == nil {
			t.Errorf("%s missing from ranking", name)
			continue
		}
		if math.Abs(entry.Result.Maturity-maturity) > 0.01 {
			t.Errorf("%s maturity = %.2f, want %.2f", name, entry.Result.Maturity, maturity)
		}
	}
}

func TestCompareSchemesRejectsBadInput(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.CompareSchemes(0, 5, nil); !errors.Is(err, calcerr.InvalidInput) {
		t.Errorf("zero amount error = %v, want InvalidInput", err)
	}
	if _, err := e.CompareSchemes(100000, 0, nil); !errors.Is(err, calcerr.InvalidInput) {
		t.Errorf("zero years error = %v, want InvalidInput", err)
	}
}

func TestCompareSchemesUsesTableRates(t *testing.T) {
	e := newTestEngine(t)
	ranking, err := e.CompareSchemes(100000, 1, &schemes.Profile{Age: 65})
	if err != nil {
		t.Fatal(err)
	}
	scss := testutil.FindEntry(ranking, rates.SCSS)
	if scss == nil {
		t.Fatal("scss missing for an eligible profile")
	}
	want, _ := e.Table().Rate(rates.SCSS)
	if scss.Result.AnnualRate != want {
		t.Errorf("scss rate = %v, want the table rate %v", scss.Result.AnnualRate, want)
	}
}

func TestCompareInvestments(t *testing.T) {
	e := newTestEngine(t)
	ranking, err := e.CompareInvestments(100000, 10)
	if err != nil {
		t.Fatalf("CompareInvestments() error = %v", err)
	}

	want := []string{InvestmentPPF, InvestmentSIP, InvestmentFD, InvestmentRD}
	if got := names(ranking); !equalNames(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	expected := map[string]float64{
		InvestmentPPF: 206103.16,
		InvestmentSIP: 191698.91,
		InvestmentFD:  179084.77,
		InvestmentRD:  141096.11,
	}
	for name, maturity := range expected {
		entry := testutil.FindEntry(ranking, name)
		if entry == nil {
			t.Fatalf("%s missing from ranking", name)
		}
		if math.Abs(entry.Result.Maturity-maturity) > 0.01 {
			t.Errorf("%s maturity = %.2f, want %.2f", name, entry.Result.Maturity, maturity)
		}
	}
}

func TestCompareAlternatives(t *testing.T) {
	e := newTestEngine(t)
	ranking, err := e.CompareAlternatives(150000, 15)
	if err != nil {
		t.Fatalf("CompareAlternatives() error = %v", err)
	}

	want := []string{InvestmentELSS, InvestmentPPF, InvestmentNSC, InvestmentFD}
	if got := names(ranking); !equalNames(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	ppf := testutil.FindEntry(ranking, InvestmentPPF)
	if ppf == nil || math.Abs(ppf.Result.Maturity-4068209.22) > 0.01 {
		t.Errorf("ppf entry = %+v, want maturity 4068209.22", ppf)
	}

	if _, err := e.CompareAlternatives(200000, 15); !errors.Is(err, calcerr.OutOfBounds) {
		t.Errorf("deposit above the PPF ceiling error = %v, want OutOfBounds", err)
	}
}

func TestCompareLoans(t *testing.T) {
	e := newTestEngine(t)
	ranking, err := e.CompareLoans(1000000, 5)
	if err != nil {
		t.Fatalf("CompareLoans() error = %v", err)
	}

	want := []string{"Home Loan", "Car Loan", "Education Loan", "Personal Loan"}
	if got := names(ranking); !equalNames(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	home := testutil.FindEntry(ranking, "Home Loan")
	if home == nil {
		t.Fatal("Home Loan missing from ranking")
	}
	if math.Abs(home.Result.PeriodicPayment-20516.53) > 0.01 {
		t.Errorf("home loan EMI = %.2f, want 20516.53", home.Result.PeriodicPayment)
	}
	if home.Result.Scheme != "Home Loan" {
		t.Errorf("scheme = %q, want the loan type name", home.Result.Scheme)
	}
}
