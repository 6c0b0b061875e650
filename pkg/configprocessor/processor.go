// Package configprocessor checks a loaded rate policy for entries that are
// valid but probably not what the operator meant.
package configprocessor

import (
	"fmt"
	"sort"

	"github.com/Rhymond/go-money"
	"github.com/iwvelando/fincalc/pkg/rates"
)

// Processor handles policy processing and validation
type Processor struct {
	known map[string]bool
}

// NewProcessor creates a new policy processor that recognises the given
// scheme ids. With no ids it recognises rates.KnownSchemes.
func NewProcessor(schemeIDs ...string) *Processor {
	if len(schemeIDs) == 0 {
		schemeIDs = rates.KnownSchemes
	}
	known := make(map[string]bool, len(schemeIDs))
	for _, id := range schemeIDs {
		known[id] = true
	}
	return &Processor{known: known}
}

// ValidatePolicy returns human-readable warnings, sorted within each
// section so the output is stable.
func (p *Processor) ValidatePolicy(policy rates.Policy) []string {
	var warnings []string

	for _, id := range sortedKeys(policy.Rates) {
		if !p.known[id] {
			warnings = append(warnings, fmt.Sprintf("Rate for unknown scheme '%s' is never used", id))
		}
		if policy.Rates[id] == 0 {
			warnings = append(warnings, fmt.Sprintf("Scheme '%s' has a zero rate", id))
		}
		if _, ok := policy.Schemes[id]; !ok && p.known[id] && id != rates.FD {
			warnings = append(warnings, fmt.Sprintf("Scheme '%s' has no limits; deposits are unbounded", id))
		}
	}

	for _, id := range sortedKeys(policy.Schemes) {
		if _, ok := policy.Rates[id]; !ok {
			warnings = append(warnings, fmt.Sprintf("Scheme '%s' has limits but no rate", id))
		}
	}

	seen := make(map[string]bool, len(policy.LoanTypes))
	for _, lt := range policy.LoanTypes {
		if seen[lt.Name] {
			warnings = append(warnings, fmt.Sprintf("Loan type '%s' is listed more than once", lt.Name))
		}
		seen[lt.Name] = true
	}

	for _, from := range sortedKeys(policy.Currency) {
		if money.GetCurrency(rates.NormalizeCurrency(from)) == nil {
			warnings = append(warnings, fmt.Sprintf("Currency '%s' is not an ISO-4217 code", from))
		}
		for _, to := range sortedKeys(policy.Currency[from]) {
			if money.GetCurrency(rates.NormalizeCurrency(to)) == nil {
				warnings = append(warnings, fmt.Sprintf("Currency '%s' is not an ISO-4217 code", to))
			}
		}
	}

	if len(policy.Tax.Brackets) == 0 {
		warnings = append(warnings, "No tax brackets configured; tax benefits will be empty")
	} else if !contains(policy.Tax.Brackets, policy.Tax.DefaultBracket) {
		warnings = append(warnings, fmt.Sprintf("Default tax bracket %.2f is not one of the configured brackets", policy.Tax.DefaultBracket))
	}

	return warnings
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(values []float64, v float64) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
