package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/fincalc/pkg/rates"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Defaults only",
			configPath: "",
		},
		{
			name:       "Override file",
			configPath: "testdata/rates.yaml",
		},
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Malformed YAML",
			configPath: "testdata/invalid.yaml",
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			if config == nil {
				t.Fatal("LoadConfiguration() returned nil config")
			}
			if _, err := config.Table(); err != nil {
				t.Errorf("Table() error = %v", err)
			}
		})
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	expectedRates := Default().Rates
	for id, want := range expectedRates {
		if got := config.Rates[id]; got != want {
			t.Errorf("rate %s = %v, want %v", id, got, want)
		}
	}

	ssy := config.Schemes[rates.SukanyaSamriddhi]
	if ssy.TenureYears != 21 || ssy.DepositYears != 15 || !ssy.TaxFree {
		t.Errorf("sukanya limits = %+v, want 21-year tenure with 15 deposit years, tax free", ssy)
	}
	if len(config.LoanTypes) != 4 || config.LoanTypes[0].Name != "Home Loan" {
		t.Errorf("loan types = %+v, want the four defaults starting with Home Loan", config.LoanTypes)
	}
	if config.Currency["USD"]["INR"] != 83.0 {
		t.Errorf("USD->INR = %v, want 83", config.Currency["USD"]["INR"])
	}
	if config.PPF.ExtensionBlockYears != 5 {
		t.Errorf("extension block = %d, want 5", config.PPF.ExtensionBlockYears)
	}
	if config.Benchmarks.Alternative.ELSS != 12.0 {
		t.Errorf("ELSS benchmark = %v, want 12", config.Benchmarks.Alternative.ELSS)
	}
	if warnings := config.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("defaults should not produce warnings, got %v", warnings)
	}
}

func TestLoadConfigurationOverlay(t *testing.T) {
	config, err := LoadConfiguration("testdata/rates.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"overridden ppf rate", config.Rates[rates.PPF], 7.5},
		{"overridden nsc rate", config.Rates[rates.NSC], 7.7},
		{"default kvp rate", config.Rates[rates.KVP], 7.5},
		{"overridden ppf max", config.Schemes[rates.PPF].MaxDeposit, 200000},
		{"default ppf min", config.Schemes[rates.PPF].MinDeposit, 500},
		{"overridden USD->INR", config.Currency["USD"]["INR"], 84.1},
		{"default USD->EUR", config.Currency["USD"]["EUR"], 0.85},
		{"default GBP->INR", config.Currency["GBP"]["INR"], 114},
		{"overridden default bracket", config.Tax.DefaultBracket, 0.2},
		{"default exemption limit", config.Tax.ExemptionLimit, 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > 1e-9 {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}

	// Lists replace rather than merge.
	if len(config.LoanTypes) != 2 || config.LoanTypes[1].Name != "Gold Loan" {
		t.Errorf("loan types = %+v, want the two from the file", config.LoanTypes)
	}
	if _, ok := config.Currency["usd"]; ok {
		t.Error("currency codes should be upper-cased after decoding")
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("FINCALC_RATES_PPF", "7.9")
	t.Setenv("FINCALC_TAX_EXEMPTIONLIMIT", "200000")

	config, err := LoadConfiguration("testdata/rates.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Rates[rates.PPF] != 7.9 {
		t.Errorf("ppf rate = %v, want 7.9 from the environment", config.Rates[rates.PPF])
	}
	if config.Tax.ExemptionLimit != 200000 {
		t.Errorf("exemption limit = %v, want 200000 from the environment", config.Tax.ExemptionLimit)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	if !strings.Contains(buf.String(), "post_office_mis:") {
		t.Errorf("encoded policy is missing scheme ids:\n%s", buf.String())
	}

	loaded, err := LoadConfigurationFromReader(&buf)
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	want := Default()
	if loaded.Schemes[rates.SCSS] != want.Schemes[rates.SCSS] {
		t.Errorf("scss limits = %+v, want %+v", loaded.Schemes[rates.SCSS], want.Schemes[rates.SCSS])
	}
	if loaded.Currency["EUR"]["JPY"] != want.Currency["EUR"]["JPY"] {
		t.Errorf("EUR->JPY = %v, want %v", loaded.Currency["EUR"]["JPY"], want.Currency["EUR"]["JPY"])
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	config := Default()
	config.Rates["gold_bond"] = 2.5
	config.LoanTypes = append(config.LoanTypes, config.LoanTypes[0])

	warnings := config.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestSourceReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte("rates:\n  ppf: 7.2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	source := NewSource(path)
	config, err := source.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if config.Rates[rates.PPF] != 7.2 {
		t.Fatalf("ppf rate = %v, want 7.2", config.Rates[rates.PPF])
	}

	if err := os.WriteFile(path, []byte("rates:\n  ppf: 7.4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	config, err = source.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if config.Rates[rates.PPF] != 7.4 {
		t.Errorf("ppf rate after reload = %v, want 7.4", config.Rates[rates.PPF])
	}
	if config.Rates[rates.NSC] != 6.8 {
		t.Errorf("nsc rate after reload = %v, want the default 6.8", config.Rates[rates.NSC])
	}
}

// writeAtomically replaces path in one rename so readers never see a
// partially written file.
func writeAtomically(t *testing.T, path, contents string) {
	t.Helper()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func TestSourceWatchWhileLoading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	writeAtomically(t, path, "rates:\n  ppf: 7.0\n")

	source := NewSource(path)
	changes := make(chan float64, 64)
	source.Watch(func(c *Configuration, err error) {
		if err != nil {
			return
		}
		select {
		case changes <- c.Rates[rates.PPF]:
		default:
		}
	})

	done := make(chan struct{})
	loadErrs := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if _, err := source.Load(); err != nil {
				select {
				case loadErrs <- err:
				default:
				}
				return
			}
		}
	}()

	for i := 1; i <= 20; i++ {
		writeAtomically(t, path, fmt.Sprintf("rates:\n  ppf: %.2f\n", 7.0+float64(i)*0.05))
	}
	close(done)
	wg.Wait()

	select {
	case err := <-loadErrs:
		t.Fatalf("Load() during watch error = %v", err)
	default:
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ppf := <-changes:
			if math.Abs(ppf-8.0) < 1e-9 {
				return
			}
		case <-timeout:
			t.Fatal("watch never reported the final ppf rate of 8.00")
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("FINCALC_TEST_DOTENV=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("FINCALC_TEST_DOTENV") })

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("FINCALC_TEST_DOTENV"); got != "loaded" {
		t.Errorf("FINCALC_TEST_DOTENV = %q, want %q", got, "loaded")
	}
}
