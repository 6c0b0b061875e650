package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/finance"
)

func runCLI(t *testing.T, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	status := Run(context.Background(), "fincalc", args, &stdout, &stderr)
	return status, stdout.String(), stderr.String()
}

func TestResultCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		maturity float64
		rate     float64
	}{
		{
			name:     "EMI",
			args:     []string{"emi", "-principal", "100000", "-rate", "10", "-months", "12"},
			maturity: 105499.08,
			rate:     10,
		},
		{
			name:     "Recurring deposit",
			args:     []string{"rd", "-amount", "5000", "-rate", "5.8", "-months", "60"},
			maturity: 348740.45,
			rate:     5.8,
		},
		{
			name:     "PPF scheme",
			args:     []string{"scheme", "-amount", "150000", "-years", "15", "ppf"},
			maturity: 4068209.22,
			rate:     7.1,
		},
		{
			name:     "NSC uses its tenure",
			args:     []string{"scheme", "-amount", "50000", "nsc"},
			maturity: 69474.63,
			rate:     6.8,
		},
		{
			name:     "SCSS with an eligible profile",
			args:     []string{"scheme", "-amount", "1000000", "-age", "62", "scss"},
			maturity: 1410000,
			rate:     8.2,
		},
		{
			name:     "Generic calculation",
			args:     []string{"calc", "-amount", "100000", "-rate", "10", "-tenure", "12", "-unit", "months", "emi"},
			maturity: 105499.08,
			rate:     10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-output-format", "json"}, tt.args...)
			status, stdout, stderr := runCLI(t, args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("exit status = %v, stderr: %s", status, stderr)
			}
			var result finance.Result
			if err := json.Unmarshal([]byte(stdout), &result); err != nil {
				t.Fatalf("output is not a json result: %v\n%s", err, stdout)
			}
			if math.Abs(result.Maturity-tt.maturity) > 0.05 {
				t.Errorf("maturity = %.2f, want %.2f", result.Maturity, tt.maturity)
			}
			if result.AnnualRate != tt.rate {
				t.Errorf("annual rate = %v, want %v", result.AnnualRate, tt.rate)
			}
		})
	}
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{
			name: "Invalid input is a usage error",
			args: []string{"emi", "-principal=-5", "-rate", "10", "-months", "12"},
			want: subcommands.ExitUsageError,
		},
		{
			name: "Unknown scheme is a usage error",
			args: []string{"scheme", "-amount", "1000", "gold_bond"},
			want: subcommands.ExitUsageError,
		},
		{
			name: "Missing scheme id",
			args: []string{"scheme", "-amount", "1000"},
			want: subcommands.ExitUsageError,
		},
		{
			name: "Deposit above the ceiling fails",
			args: []string{"scheme", "-amount", "200000", "-years", "15", "ppf"},
			want: subcommands.ExitFailure,
		},
		{
			name: "Ineligible profile fails",
			args: []string{"scheme", "-amount", "100000", "-age", "40", "scss"},
			want: subcommands.ExitFailure,
		},
		{
			name: "Unsupported currency pair fails",
			args: []string{"convert", "-amount", "100", "-from", "JPY"},
			want: subcommands.ExitFailure,
		},
		{
			name: "Unknown output format",
			args: []string{"-output-format", "xml", "emi", "-principal", "1000", "-rate", "10", "-months", "12"},
			want: subcommands.ExitFailure,
		},
		{
			name: "Missing policy file",
			args: []string{"-config", "does-not-exist.yaml", "rates"},
			want: subcommands.ExitFailure,
		},
		{
			name: "Unknown command",
			args: []string{"mortgage"},
			want: subcommands.ExitUsageError,
		},
		{
			name: "Partial years on a yearly calculation",
			args: []string{"calc", "-amount", "100000", "-rate", "6.5", "-tenure", "23", "-unit", "months", "fd"},
			want: subcommands.ExitUsageError,
		},
		{
			name: "Unknown tenure unit",
			args: []string{"calc", "-amount", "100000", "-rate", "10", "-tenure", "12", "-unit", "weeks", "emi"},
			want: subcommands.ExitUsageError,
		},
		{
			name: "Tax needs exactly one mode",
			args: []string{"tax"},
			want: subcommands.ExitUsageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, stderr := runCLI(t, tt.args...)
			if status != tt.want {
				t.Errorf("exit status = %v, want %v (stderr: %s)", status, tt.want, stderr)
			}
		})
	}
}

func TestExitStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want subcommands.ExitStatus
	}{
		{nil, subcommands.ExitSuccess},
		{calcerr.Invalid("test", "amount", -1, "amount must be positive"), subcommands.ExitUsageError},
		{calcerr.AboveMaximum("test", "deposit", 200000, 150000), subcommands.ExitFailure},
		{calcerr.Unsupported("test", "JPY", "INR"), subcommands.ExitFailure},
	}

	for _, tt := range tests {
		if got := exitStatus(tt.err); got != tt.want {
			t.Errorf("exitStatus(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestTextOutputs(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		checks []string
	}{
		{
			name:   "Pretty result",
			args:   []string{"emi", "-principal", "100000", "-rate", "10", "-months", "12"},
			checks: []string{"--- Results for emi ---", "₹105,499.08"},
		},
		{
			name:   "CSV comparison",
			args:   []string{"-output-format", "csv", "compare", "-amount", "100000", "-years", "10"},
			checks: []string{"rank,name,scheme", "1,kvp,kvp,200000.00"},
		},
		{
			name:   "Loan ranking",
			args:   []string{"compare-loans", "-principal", "1000000", "-years", "5"},
			checks: []string{"--- Loan comparison ---", "Best: Home Loan"},
		},
		{
			name:   "Schedule",
			args:   []string{"-output-format", "csv", "schedule", "-principal", "100000", "-rate", "10", "-months", "12"},
			checks: []string{"1,8791.59,7958.26,833.33,92041.74"},
		},
		{
			name:   "Rates as yaml",
			args:   []string{"rates"},
			checks: []string{"ppf: 7.1", "Home Loan"},
		},
		{
			name:   "Policy file overlay",
			args:   []string{"-config", "../config/testdata/rates.yaml", "rates"},
			checks: []string{"nsc: 7.7", "Gold Loan"},
		},
		{
			name:   "GST",
			args:   []string{"-output-format", "json", "gst", "-amount", "1000", "-rate", "18"},
			checks: []string{`"total": 1180`, `"cgst": 90`},
		},
		{
			name:   "Currency conversion",
			args:   []string{"-output-format", "json", "convert", "-amount", "100", "-from", "USD"},
			checks: []string{`"converted": 8300`},
		},
		{
			name:   "Tax benefits",
			args:   []string{"-output-format", "json", "tax", "-deposit", "200000"},
			checks: []string{`"eligibleAmount": 150000`, `"maxBenefit": 45000`},
		},
		{
			name:   "Short horizon leaves KVP out",
			args:   []string{"-output-format", "csv", "compare", "-amount", "100000", "-years", "1"},
			checks: []string{"1,scss,scss,108200.00"},
		},
		{
			name:   "Post-tax comparison",
			args:   []string{"-output-format", "json", "tax", "-amount", "100000", "-years", "10"},
			checks: []string{`"scheme": "kvp"`, `"netReturn"`},
		},
		{
			name:   "PPF loan at the policy maximum",
			args:   []string{"-output-format", "json", "ppf-loan", "-balance", "100000"},
			checks: []string{`"maxLoan": 25000`, `"interestRate": 8.1`},
		},
		{
			name:   "PPF withdrawal",
			args:   []string{"-output-format", "json", "ppf-withdraw", "-balance", "100000", "-account-year", "8"},
			checks: []string{`"maxWithdrawal": 50000`},
		},
		{
			name:   "Eligibility",
			args:   []string{"-output-format", "json", "eligibility", "-age", "8", "-gender", "female"},
			checks: []string{`"scheme": "sukanya_samriddhi"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, stdout, stderr := runCLI(t, tt.args...)
			if status != subcommands.ExitSuccess {
				t.Fatalf("exit status = %v, stderr: %s", status, stderr)
			}
			for _, want := range tt.checks {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
		})
	}
}
