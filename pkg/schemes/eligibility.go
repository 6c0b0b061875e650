package schemes

import (
	"strings"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/rates"
)

// Eligibility age gates.
const (
	SukanyaMaxAge = 10
	SCSSMinAge    = 60
)

// Profile describes the account holder for eligibility checks.
type Profile struct {
	Age    int    `json:"age" yaml:"age"`
	Gender string `json:"gender,omitempty" yaml:"gender,omitempty"`
}

// Female reports whether the profile's gender is female.
func (p Profile) Female() bool {
	g := strings.ToLower(strings.TrimSpace(p.Gender))
	return g == "female" || g == "f"
}

// SchemeEligibility is the outcome of one scheme's gate.
type SchemeEligibility struct {
	Scheme     string `json:"scheme" yaml:"scheme"`
	Eligible   bool   `json:"eligible" yaml:"eligible"`
	Conditions string `json:"conditions" yaml:"conditions"`
}

var eligibilityRules = []struct {
	scheme     string
	conditions string
	check      func(Profile) bool
}{
	{rates.PPF, "open to all Indian residents", func(Profile) bool { return true }},
	{rates.NSC, "open to all Indian residents", func(Profile) bool { return true }},
	{rates.SukanyaSamriddhi, "for a girl child aged 10 or below", func(p Profile) bool { return p.Female() && p.Age <= SukanyaMaxAge }},
	{rates.SCSS, "for senior citizens aged 60 or above", func(p Profile) bool { return p.Age >= SCSSMinAge }},
	{rates.KVP, "open to all Indian residents", func(Profile) bool { return true }},
}

// Eligibility evaluates every gated scheme for profile, in a fixed order.
func Eligibility(profile Profile) ([]SchemeEligibility, error) {
	if profile.Age < 0 {
		return nil, calcerr.Invalid("schemes.Eligibility", "age", float64(profile.Age), "age must not be negative, got %d", profile.Age)
	}

	out := make([]SchemeEligibility, 0, len(eligibilityRules))
	for _, rule := range eligibilityRules {
		out = append(out, SchemeEligibility{
			Scheme:     rule.scheme,
			Eligible:   rule.check(profile),
			Conditions: rule.conditions,
		})
	}
	return out, nil
}

// CheckEligible returns an IneligibleScheme error when profile fails the
// gate of scheme. Schemes without a gate always pass.
func CheckEligible(scheme string, profile Profile) error {
	const op = "schemes.CheckEligible"
	if profile.Age < 0 {
		return calcerr.Invalid(op, "age", float64(profile.Age), "age must not be negative, got %d", profile.Age)
	}
	for _, rule := range eligibilityRules {
		if rule.scheme == scheme && !rule.check(profile) {
			return calcerr.Ineligible(op, scheme, rule.conditions)
		}
	}
	return nil
}
