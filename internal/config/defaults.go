package config

import (
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/spf13/viper"
)

// Default returns the built-in policy: the 2024 small-savings rates and
// limits, typical loan rates and indicative currency cross rates.
func Default() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{Format: constants.OutputFormatPretty},
		Rates: map[string]float64{
			rates.PPF:              7.1,
			rates.NSC:              6.8,
			rates.KVP:              7.5,
			rates.SukanyaSamriddhi: 8.0,
			rates.SCSS:             8.2,
			rates.PostOfficeTD:     6.9,
			rates.PostOfficeRD:     5.8,
			rates.PostOfficeMIS:    7.4,
			rates.FD:               6.5,
		},
		Schemes: map[string]rates.SchemeLimits{
			rates.PPF:              {MinDeposit: 500, MaxDeposit: 150000, TenureYears: 15, TaxFree: true},
			rates.NSC:              {MinDeposit: 1000, TenureYears: 5},
			rates.SukanyaSamriddhi: {MinDeposit: 250, MaxDeposit: 150000, TenureYears: 21, DepositYears: 15, TaxFree: true, PrematureWithdrawal: true},
			rates.KVP:              {MinDeposit: 1000, TenureYears: 10, PrematureWithdrawal: true},
			rates.SCSS:             {MinDeposit: 1000, MaxDeposit: 3000000, TenureYears: 5, PrematureWithdrawal: true},
			rates.PostOfficeTD:     {MinDeposit: 1000, TenureYears: 5},
			rates.PostOfficeRD:     {MinDeposit: 100, TenureYears: 5},
			rates.PostOfficeMIS:    {MinDeposit: 1000, MaxDeposit: 900000, TenureYears: 5},
		},
		LoanTypes: []rates.LoanType{
			{Name: "Home Loan", Rate: 8.5},
			{Name: "Personal Loan", Rate: 12.0},
			{Name: "Car Loan", Rate: 9.5},
			{Name: "Education Loan", Rate: 10.0},
		},
		Currency: map[string]map[string]float64{
			"USD": {"INR": 83.0, "EUR": 0.85, "GBP": 0.73, "JPY": 110.0},
			"INR": {"USD": 0.012, "EUR": 0.010, "GBP": 0.009, "JPY": 1.32},
			"EUR": {"USD": 1.18, "INR": 98.0, "GBP": 0.86, "JPY": 129.0},
			"GBP": {"USD": 1.37, "INR": 114.0, "EUR": 1.16, "JPY": 150.0},
		},
		Tax: rates.TaxPolicy{
			ExemptionLimit: 150000,
			Brackets:       []float64{0.05, 0.20, 0.30},
			DefaultBracket: 0.30,
		},
		PPF: rates.PPFRules{
			LoanPercentage:       25,
			LoanRatePremium:      1,
			LoanFromYear:         3,
			WithdrawalPercentage: 50,
			WithdrawalFromYear:   7,
			ExtensionBlockYears:  5,
		},
		Benchmarks: rates.Benchmarks{
			Investments: rates.InvestmentBenchmarks{FD: 6.0, RD: 6.5, SIP: 12.0, PPF: 7.5},
			Alternative: rates.AlternativeBenchmarks{FD: 6.5, ELSS: 12.0, NSC: 6.8},
		},
	}
}

// setDefaults registers every leaf of d with v so that a policy file only
// needs the keys it changes.
func setDefaults(v *viper.Viper, d *Configuration) {
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.outputFile", d.Logging.OutputFile)
	v.SetDefault("output.format", d.Output.Format)

	for id, rate := range d.Rates {
		v.SetDefault("rates."+id, rate)
	}

	for id, l := range d.Schemes {
		prefix := "schemes." + id + "."
		v.SetDefault(prefix+"minDeposit", l.MinDeposit)
		v.SetDefault(prefix+"maxDeposit", l.MaxDeposit)
		v.SetDefault(prefix+"tenureYears", l.TenureYears)
		v.SetDefault(prefix+"depositYears", l.DepositYears)
		v.SetDefault(prefix+"taxFree", l.TaxFree)
		v.SetDefault(prefix+"prematureWithdrawal", l.PrematureWithdrawal)
	}

	loanTypes := make([]map[string]interface{}, 0, len(d.LoanTypes))
	for _, lt := range d.LoanTypes {
		loanTypes = append(loanTypes, map[string]interface{}{"name": lt.Name, "rate": lt.Rate})
	}
	v.SetDefault("loanTypes", loanTypes)

	for from, row := range d.Currency {
		for to, rate := range row {
			v.SetDefault("currency."+from+"."+to, rate)
		}
	}

	v.SetDefault("tax.exemptionLimit", d.Tax.ExemptionLimit)
	v.SetDefault("tax.brackets", d.Tax.Brackets)
	v.SetDefault("tax.defaultBracket", d.Tax.DefaultBracket)

	v.SetDefault("ppf.loanPercentage", d.PPF.LoanPercentage)
	v.SetDefault("ppf.loanRatePremium", d.PPF.LoanRatePremium)
	v.SetDefault("ppf.loanFromYear", d.PPF.LoanFromYear)
	v.SetDefault("ppf.withdrawalPercentage", d.PPF.WithdrawalPercentage)
	v.SetDefault("ppf.withdrawalFromYear", d.PPF.WithdrawalFromYear)
	v.SetDefault("ppf.extensionBlockYears", d.PPF.ExtensionBlockYears)

	v.SetDefault("benchmarks.investments.fd", d.Benchmarks.Investments.FD)
	v.SetDefault("benchmarks.investments.rd", d.Benchmarks.Investments.RD)
	v.SetDefault("benchmarks.investments.sip", d.Benchmarks.Investments.SIP)
	v.SetDefault("benchmarks.investments.ppf", d.Benchmarks.Investments.PPF)
	v.SetDefault("benchmarks.alternatives.fd", d.Benchmarks.Alternative.FD)
	v.SetDefault("benchmarks.alternatives.elss", d.Benchmarks.Alternative.ELSS)
	v.SetDefault("benchmarks.alternatives.nsc", d.Benchmarks.Alternative.NSC)
}
