// Package rates holds the immutable rate policy the engine is constructed
// with: scheme rates, scheme limits, loan-type rates, currency cross rates,
// tax policy and PPF rules.
package rates

import (
	"fmt"
	"sort"
	"strings"
)

// Scheme identifiers.
const (
	PPF              = "ppf"
	NSC              = "nsc"
	KVP              = "kvp"
	SukanyaSamriddhi = "sukanya_samriddhi"
	SCSS             = "scss"
	PostOfficeTD     = "post_office_td"
	PostOfficeRD     = "post_office_rd"
	PostOfficeMIS    = "post_office_mis"
	FD               = "fd"
)

// KnownSchemes lists every scheme id the engine has a calculator for.
var KnownSchemes = []string{PPF, NSC, KVP, SukanyaSamriddhi, SCSS, PostOfficeTD, PostOfficeRD, PostOfficeMIS, FD}

// SchemeLimits are the deposit and tenure rules of one scheme. A zero
// MaxDeposit means the scheme has no ceiling; a zero DepositYears means
// deposits are made for the whole tenure.
type SchemeLimits struct {
	MinDeposit          float64 `json:"minDeposit" yaml:"minDeposit" mapstructure:"minDeposit"`
	MaxDeposit          float64 `json:"maxDeposit" yaml:"maxDeposit" mapstructure:"maxDeposit"`
	TenureYears         int     `json:"tenureYears" yaml:"tenureYears" mapstructure:"tenureYears"`
	DepositYears        int     `json:"depositYears,omitempty" yaml:"depositYears,omitempty" mapstructure:"depositYears"`
	TaxFree             bool    `json:"taxFree" yaml:"taxFree" mapstructure:"taxFree"`
	PrematureWithdrawal bool    `json:"prematureWithdrawal" yaml:"prematureWithdrawal" mapstructure:"prematureWithdrawal"`
}

// Validate checks min <= max when both are defined and tenure > 0.
func (l SchemeLimits) Validate() error {
	if l.MinDeposit < 0 || l.MaxDeposit < 0 {
		return fmt.Errorf("deposit bounds must not be negative (min %.2f, max %.2f)", l.MinDeposit, l.MaxDeposit)
	}
	if l.MaxDeposit > 0 && l.MinDeposit > l.MaxDeposit {
		return fmt.Errorf("minimum deposit %.2f exceeds maximum deposit %.2f", l.MinDeposit, l.MaxDeposit)
	}
	if l.TenureYears <= 0 {
		return fmt.Errorf("tenure must be positive, got %d", l.TenureYears)
	}
	if l.DepositYears < 0 || l.DepositYears > l.TenureYears {
		return fmt.Errorf("deposit years %d must be within the tenure of %d years", l.DepositYears, l.TenureYears)
	}
	return nil
}

// LoanType is a named loan product with its typical annual rate in percent.
type LoanType struct {
	Name string  `json:"name" yaml:"name" mapstructure:"name"`
	Rate float64 `json:"rate" yaml:"rate" mapstructure:"rate"`
}

// TaxPolicy describes the Section 80C exemption and the income-tax brackets
// (decimal fractions) used for savings and net-return analysis.
type TaxPolicy struct {
	ExemptionLimit float64   `json:"exemptionLimit" yaml:"exemptionLimit" mapstructure:"exemptionLimit"`
	Brackets       []float64 `json:"brackets" yaml:"brackets" mapstructure:"brackets"`
	DefaultBracket float64   `json:"defaultBracket" yaml:"defaultBracket" mapstructure:"defaultBracket"`
}

// PPFRules are the loan, withdrawal and extension rules of the PPF account.
type PPFRules struct {
	LoanPercentage       float64 `json:"loanPercentage" yaml:"loanPercentage" mapstructure:"loanPercentage"`
	LoanRatePremium      float64 `json:"loanRatePremium" yaml:"loanRatePremium" mapstructure:"loanRatePremium"`
	LoanFromYear         int     `json:"loanFromYear" yaml:"loanFromYear" mapstructure:"loanFromYear"`
	WithdrawalPercentage float64 `json:"withdrawalPercentage" yaml:"withdrawalPercentage" mapstructure:"withdrawalPercentage"`
	WithdrawalFromYear   int     `json:"withdrawalFromYear" yaml:"withdrawalFromYear" mapstructure:"withdrawalFromYear"`
	ExtensionBlockYears  int     `json:"extensionBlockYears" yaml:"extensionBlockYears" mapstructure:"extensionBlockYears"`
}

// Benchmarks are the assumed rates (percent) of the comparison products
// that are not government schemes.
type Benchmarks struct {
	Investments InvestmentBenchmarks  `json:"investments" yaml:"investments" mapstructure:"investments"`
	Alternative AlternativeBenchmarks `json:"alternatives" yaml:"alternatives" mapstructure:"alternatives"`
}

// InvestmentBenchmarks are used by the lump-sum investment comparison.
type InvestmentBenchmarks struct {
	FD  float64 `json:"fd" yaml:"fd" mapstructure:"fd"`
	RD  float64 `json:"rd" yaml:"rd" mapstructure:"rd"`
	SIP float64 `json:"sip" yaml:"sip" mapstructure:"sip"`
	PPF float64 `json:"ppf" yaml:"ppf" mapstructure:"ppf"`
}

// AlternativeBenchmarks are used when comparing PPF against alternatives.
type AlternativeBenchmarks struct {
	FD   float64 `json:"fd" yaml:"fd" mapstructure:"fd"`
	ELSS float64 `json:"elss" yaml:"elss" mapstructure:"elss"`
	NSC  float64 `json:"nsc" yaml:"nsc" mapstructure:"nsc"`
}

// Policy is the mutable input used to build a Table.
type Policy struct {
	Rates      map[string]float64            `json:"rates" yaml:"rates"`
	Schemes    map[string]SchemeLimits       `json:"schemes" yaml:"schemes"`
	LoanTypes  []LoanType                    `json:"loanTypes" yaml:"loanTypes"`
	Currency   map[string]map[string]float64 `json:"currency" yaml:"currency"`
	Tax        TaxPolicy                     `json:"tax" yaml:"tax"`
	PPF        PPFRules                      `json:"ppf" yaml:"ppf"`
	Benchmarks Benchmarks                    `json:"benchmarks" yaml:"benchmarks"`
}

// Table is the read-only rate policy. It is safe for concurrent use because
// nothing mutates it after New returns.
type Table struct {
	rates      map[string]float64
	schemes    map[string]SchemeLimits
	loanTypes  []LoanType
	currency   map[string]map[string]float64
	tax        TaxPolicy
	ppf        PPFRules
	benchmarks Benchmarks
}

// New validates the policy and deep-copies it into a Table.
func New(p Policy) (*Table, error) {
	t := &Table{
		rates:      make(map[string]float64, len(p.Rates)),
		schemes:    make(map[string]SchemeLimits, len(p.Schemes)),
		loanTypes:  append([]LoanType(nil), p.LoanTypes...),
		currency:   make(map[string]map[string]float64, len(p.Currency)),
		tax:        p.Tax,
		ppf:        p.PPF,
		benchmarks: p.Benchmarks,
	}
	t.tax.Brackets = append([]float64(nil), p.Tax.Brackets...)

	for id, rate := range p.Rates {
		id = normalizeScheme(id)
		if rate < 0 {
			return nil, fmt.Errorf("rate for %s must not be negative, got %.2f", id, rate)
		}
		t.rates[id] = rate
	}

	for id, limits := range p.Schemes {
		id = normalizeScheme(id)
		if err := limits.Validate(); err != nil {
			return nil, fmt.Errorf("scheme %s: %w", id, err)
		}
		t.schemes[id] = limits
	}

	for i, lt := range t.loanTypes {
		if lt.Name == "" {
			return nil, fmt.Errorf("loan type %d has no name", i)
		}
		if lt.Rate < 0 {
			return nil, fmt.Errorf("loan type %s: rate must not be negative", lt.Name)
		}
	}

	for from, row := range p.Currency {
		from = NormalizeCurrency(from)
		copied := make(map[string]float64, len(row))
		for to, rate := range row {
			if rate <= 0 {
				return nil, fmt.Errorf("currency rate %s/%s must be positive", from, NormalizeCurrency(to))
			}
			copied[NormalizeCurrency(to)] = rate
		}
		t.currency[from] = copied
	}

	for _, b := range t.tax.Brackets {
		if b < 0 || b >= 1 {
			return nil, fmt.Errorf("tax bracket %.2f must be a fraction in [0, 1)", b)
		}
	}
	if t.tax.DefaultBracket < 0 || t.tax.DefaultBracket >= 1 {
		return nil, fmt.Errorf("default tax bracket %.2f must be a fraction in [0, 1)", t.tax.DefaultBracket)
	}
	sort.Float64s(t.tax.Brackets)

	return t, nil
}

// Rate returns the annual rate in percent for scheme.
func (t *Table) Rate(scheme string) (float64, bool) {
	rate, ok := t.rates[normalizeScheme(scheme)]
	return rate, ok
}

// Limits returns the limits for scheme.
func (t *Table) Limits(scheme string) (SchemeLimits, bool) {
	limits, ok := t.schemes[normalizeScheme(scheme)]
	return limits, ok
}

// Schemes returns the scheme ids with a configured rate, sorted.
func (t *Table) Schemes() []string {
	ids := make([]string, 0, len(t.rates))
	for id := range t.rates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoanTypes returns a copy of the loan types in configured order.
func (t *Table) LoanTypes() []LoanType {
	return append([]LoanType(nil), t.loanTypes...)
}

// CrossRate returns the conversion rate from -> to.
func (t *Table) CrossRate(from, to string) (float64, bool) {
	row, ok := t.currency[NormalizeCurrency(from)]
	if !ok {
		return 0, false
	}
	rate, ok := row[NormalizeCurrency(to)]
	return rate, ok
}

// Currencies returns the source currency codes, sorted.
func (t *Table) Currencies() []string {
	codes := make([]string, 0, len(t.currency))
	for code := range t.currency {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Targets returns the currencies from converts to, sorted.
func (t *Table) Targets(from string) []string {
	row := t.currency[NormalizeCurrency(from)]
	codes := make([]string, 0, len(row))
	for code := range row {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Tax returns the tax policy.
func (t *Table) Tax() TaxPolicy {
	tax := t.tax
	tax.Brackets = append([]float64(nil), t.tax.Brackets...)
	return tax
}

// PPF returns the PPF account rules.
func (t *Table) PPF() PPFRules {
	return t.ppf
}

// Benchmarks returns the comparison benchmark rates.
func (t *Table) Benchmarks() Benchmarks {
	return t.benchmarks
}

// Policy returns a deep copy of the table's contents, e.g. for export.
func (t *Table) Policy() Policy {
	p := Policy{
		Rates:      make(map[string]float64, len(t.rates)),
		Schemes:    make(map[string]SchemeLimits, len(t.schemes)),
		LoanTypes:  t.LoanTypes(),
		Currency:   make(map[string]map[string]float64, len(t.currency)),
		Tax:        t.Tax(),
		PPF:        t.ppf,
		Benchmarks: t.benchmarks,
	}
	for id, rate := range t.rates {
		p.Rates[id] = rate
	}
	for id, limits := range t.schemes {
		p.Schemes[id] = limits
	}
	for from, row := range t.currency {
		copied := make(map[string]float64, len(row))
		for to, rate := range row {
			copied[to] = rate
		}
		p.Currency[from] = copied
	}
	return p
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeScheme(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
