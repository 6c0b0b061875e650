package rates

import (
	"strings"
	"testing"
)

func testPolicy() Policy {
	return Policy{
		Rates: map[string]float64{PPF: 7.1, "NSC": 6.8},
		Schemes: map[string]SchemeLimits{
			PPF: {MinDeposit: 500, MaxDeposit: 150000, TenureYears: 15, TaxFree: true},
		},
		LoanTypes: []LoanType{{Name: "Home Loan", Rate: 8.5}, {Name: "Car Loan", Rate: 9.5}},
		Currency:  map[string]map[string]float64{"usd": {"inr": 83.0}},
		Tax:       TaxPolicy{ExemptionLimit: 150000, Brackets: []float64{0.3, 0.05, 0.2}, DefaultBracket: 0.3},
	}
}

func TestNewNormalizesAndCopies(t *testing.T) {
	policy := testPolicy()
	table, err := New(policy)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if rate, ok := table.Rate("nsc"); !ok || rate != 6.8 {
		t.Errorf("Rate(nsc) = %v, %v; want 6.8, true", rate, ok)
	}
	if rate, ok := table.CrossRate("USD", "inr"); !ok || rate != 83.0 {
		t.Errorf("CrossRate(USD, inr) = %v, %v; want 83, true", rate, ok)
	}

	policy.Rates[PPF] = 1.0
	policy.LoanTypes[0].Rate = 99
	policy.Currency["usd"]["inr"] = 1
	if rate, _ := table.Rate(PPF); rate != 7.1 {
		t.Errorf("table changed after mutating policy: ppf = %v", rate)
	}
	if table.LoanTypes()[0].Rate != 8.5 {
		t.Errorf("loan types changed after mutating policy")
	}
	if rate, _ := table.CrossRate("USD", "INR"); rate != 83.0 {
		t.Errorf("currency table changed after mutating policy")
	}

	brackets := table.Tax().Brackets
	if len(brackets) != 3 || brackets[0] != 0.05 || brackets[2] != 0.3 {
		t.Errorf("brackets not sorted: %v", brackets)
	}
	brackets[0] = 0.9
	if table.Tax().Brackets[0] != 0.05 {
		t.Errorf("Tax() must return a copy of the brackets")
	}
}

func TestNewRejectsInvalidPolicy(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Policy)
		wantErr string
	}{
		{
			name:    "min above max",
			mutate:  func(p *Policy) { p.Schemes[PPF] = SchemeLimits{MinDeposit: 1000, MaxDeposit: 500, TenureYears: 15} },
			wantErr: "exceeds maximum",
		},
		{
			name:    "zero tenure",
			mutate:  func(p *Policy) { p.Schemes[NSC] = SchemeLimits{MinDeposit: 1000} },
			wantErr: "tenure must be positive",
		},
		{
			name:    "deposit years beyond tenure",
			mutate:  func(p *Policy) { p.Schemes[SukanyaSamriddhi] = SchemeLimits{TenureYears: 21, DepositYears: 22} },
			wantErr: "deposit years",
		},
		{
			name:    "negative rate",
			mutate:  func(p *Policy) { p.Rates[KVP] = -1 },
			wantErr: "must not be negative",
		},
		{
			name:    "bracket out of range",
			mutate:  func(p *Policy) { p.Tax.Brackets = []float64{30} },
			wantErr: "tax bracket",
		},
		{
			name:    "non-positive cross rate",
			mutate:  func(p *Policy) { p.Currency["EUR"] = map[string]float64{"USD": 0} },
			wantErr: "must be positive",
		},
		{
			name:    "unnamed loan type",
			mutate:  func(p *Policy) { p.LoanTypes = append(p.LoanTypes, LoanType{Rate: 10}) },
			wantErr: "has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := testPolicy()
			tt.mutate(&policy)
			_, err := New(policy)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestPolicyRoundTrip(t *testing.T) {
	table, err := New(testPolicy())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rebuilt, err := New(table.Policy())
	if err != nil {
		t.Fatalf("New(Policy()) error = %v", err)
	}
	if got, want := rebuilt.Schemes(), table.Schemes(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Schemes() = %v, want %v", got, want)
	}
	if limits, ok := rebuilt.Limits(PPF); !ok || limits.MaxDeposit != 150000 {
		t.Errorf("Limits(ppf) = %+v, %v", limits, ok)
	}
	if codes := rebuilt.Currencies(); len(codes) != 1 || codes[0] != "USD" {
		t.Errorf("Currencies() = %v, want [USD]", codes)
	}
}
