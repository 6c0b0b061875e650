package schemes

import (
	"fmt"

	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/iwvelando/fincalc/pkg/validation"
)

// LoanRepaymentMonths is the longest repayment period of a loan against PPF.
const LoanRepaymentMonths = 36

// ExtensionOption is one way of continuing a matured PPF account.
type ExtensionOption struct {
	FinalAmount          float64 `json:"finalAmount" yaml:"finalAmount"`
	AdditionalInvestment float64 `json:"additionalInvestment" yaml:"additionalInvestment"`
	Growth               float64 `json:"growth" yaml:"growth"`
}

// ExtensionResult compares extending with and without fresh deposits.
type ExtensionResult struct {
	Balance         float64         `json:"balance" yaml:"balance"`
	Years           int             `json:"years" yaml:"years"`
	AnnualRate      float64         `json:"annualRate" yaml:"annualRate"`
	WithDeposits    ExtensionOption `json:"withDeposits" yaml:"withDeposits"`
	WithoutDeposits ExtensionOption `json:"withoutDeposits" yaml:"withoutDeposits"`
}

// Extension projects a matured PPF balance over an extension of years,
// which must be a whole number of blockYears blocks when blockYears > 0.
// With deposits, annualDeposit is added each year and compounds the same
// way as during the original tenure.
func Extension(balance float64, years int, annualRatePercent, annualDeposit float64, blockYears int) (ExtensionResult, error) {
	const op = "schemes.Extension"
	if err := validation.Positive(op, "balance", balance); err != nil {
		return ExtensionResult{}, err
	}
	if err := validation.PositiveInt(op, "extension years", years); err != nil {
		return ExtensionResult{}, err
	}
	if blockYears > 0 && years%blockYears != 0 {
		return ExtensionResult{}, calcerr.Invalid(op, "extension years", float64(years),
			"extension must be in blocks of %d years, got %d", blockYears, years)
	}
	if err := validation.NonNegative(op, "annual rate", annualRatePercent); err != nil {
		return ExtensionResult{}, err
	}
	if err := validation.NonNegative(op, "annual deposit", annualDeposit); err != nil {
		return ExtensionResult{}, err
	}

	rate := mathutil.PercentToDecimal(annualRatePercent)
	grown := balance * mathutil.CompoundFactor(rate, float64(years))
	deposits := compoundDeposits(annualDeposit, rate, years, years)
	additional := annualDeposit * float64(years)
	withDeposits := grown + deposits

	return ExtensionResult{
		Balance:    balance,
		Years:      years,
		AnnualRate: annualRatePercent,
		WithDeposits: ExtensionOption{
			FinalAmount:          withDeposits,
			AdditionalInvestment: additional,
			Growth:               withDeposits - balance - additional,
		},
		WithoutDeposits: ExtensionOption{
			FinalAmount: grown,
			Growth:      grown - balance,
		},
	}, nil
}

// LoanEligibility is the loan that can be drawn against a PPF balance.
type LoanEligibility struct {
	Balance         float64 `json:"balance" yaml:"balance"`
	Percentage      float64 `json:"percentage" yaml:"percentage"`
	MaxLoan         float64 `json:"maxLoan" yaml:"maxLoan"`
	InterestRate    float64 `json:"interestRate" yaml:"interestRate"`
	RepaymentMonths int     `json:"repaymentMonths" yaml:"repaymentMonths"`
	FromYear        int     `json:"fromYear" yaml:"fromYear"`
}

// Loan computes the loan available against balance. The loan rate is the
// PPF rate plus premium. percentage above maxPercentage is OutOfBounds, and
// an account younger than fromYear is ineligible. accountYear 0 skips the
// account-age check.
func Loan(balance, percentage, annualRatePercent, premium, maxPercentage float64, accountYear, fromYear int) (LoanEligibility, error) {
	const op = "schemes.Loan"
	if err := checkAccountDraw(op, "loan", balance, percentage, maxPercentage, accountYear, fromYear); err != nil {
		return LoanEligibility{}, err
	}
	if err := validation.NonNegative(op, "annual rate", annualRatePercent); err != nil {
		return LoanEligibility{}, err
	}
	if err := validation.NonNegative(op, "rate premium", premium); err != nil {
		return LoanEligibility{}, err
	}

	return LoanEligibility{
		Balance:         balance,
		Percentage:      percentage,
		MaxLoan:         mathutil.ApplyPercentage(balance, percentage),
		InterestRate:    annualRatePercent + premium,
		RepaymentMonths: LoanRepaymentMonths,
		FromYear:        fromYear,
	}, nil
}

// WithdrawalEligibility is the partial withdrawal allowed from a PPF balance.
type WithdrawalEligibility struct {
	Balance       float64 `json:"balance" yaml:"balance"`
	Percentage    float64 `json:"percentage" yaml:"percentage"`
	MaxWithdrawal float64 `json:"maxWithdrawal" yaml:"maxWithdrawal"`
	FromYear      int     `json:"fromYear" yaml:"fromYear"`
	TaxFree       bool    `json:"taxFree" yaml:"taxFree"`
}

// Withdrawal computes the partial withdrawal allowed from balance, with the
// same gating as Loan. Withdrawals are tax free.
func Withdrawal(balance, percentage, maxPercentage float64, accountYear, fromYear int) (WithdrawalEligibility, error) {
	const op = "schemes.Withdrawal"
	if err := checkAccountDraw(op, "withdrawal", balance, percentage, maxPercentage, accountYear, fromYear); err != nil {
		return WithdrawalEligibility{}, err
	}

	return WithdrawalEligibility{
		Balance:       balance,
		Percentage:    percentage,
		MaxWithdrawal: mathutil.ApplyPercentage(balance, percentage),
		FromYear:      fromYear,
		TaxFree:       true,
	}, nil
}

func checkAccountDraw(op, kind string, balance, percentage, maxPercentage float64, accountYear, fromYear int) error {
	if err := validation.Positive(op, "balance", balance); err != nil {
		return err
	}
	if err := validation.Positive(op, kind+" percentage", percentage); err != nil {
		return err
	}
	if err := validation.Bounds(op, kind+" percentage", percentage, 0, maxPercentage); err != nil {
		return err
	}
	if accountYear < 0 {
		return calcerr.Invalid(op, "account year", float64(accountYear), "account year must not be negative, got %d", accountYear)
	}
	if accountYear > 0 && accountYear < fromYear {
		return calcerr.Ineligible(op, "ppf", fmt.Sprintf("%s allowed from account year %d, account is in year %d", kind, fromYear, accountYear))
	}
	return nil
}
