package cli

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/iwvelando/fincalc/pkg/engine"
	"github.com/iwvelando/fincalc/pkg/output"
)

// rateOption applies -rate when the flag was set to a non-negative value.
func rateOption(rate float64) []engine.Option {
	if rate < 0 {
		return nil
	}
	return []engine.Option{engine.WithRate(rate)}
}

type ppfTargetCmd struct {
	app    *App
	target float64
	years  int
	rate   float64
}

func (*ppfTargetCmd) Name() string     { return "ppf-target" }
func (*ppfTargetCmd) Synopsis() string { return "yearly PPF deposit needed to reach a target" }
func (*ppfTargetCmd) Usage() string {
	return `fincalc ppf-target -target <amount> [-years <n>] [-rate <annual %>]

  Fails when the required deposit is above the yearly PPF ceiling.
`
}

func (c *ppfTargetCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.target, "target", 0, "maturity goal")
	f.IntVar(&c.years, "years", 15, "years of deposits")
	f.Float64Var(&c.rate, "rate", -1, "annual rate override in percent")
}

func (c *ppfTargetCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("ppf-target", func(e *engine.Engine, w io.Writer, format string) error {
		result, err := e.PPFTarget(c.target, c.years, rateOption(c.rate)...)
		if err != nil {
			return err
		}
		return output.Result(w, format, result)
	})
}

type ppfExtendCmd struct {
	app     *App
	balance float64
	years   int
	deposit float64
	rate    float64
}

func (*ppfExtendCmd) Name() string     { return "ppf-extend" }
func (*ppfExtendCmd) Synopsis() string { return "project a matured PPF account over an extension" }
func (*ppfExtendCmd) Usage() string {
	return `fincalc ppf-extend -balance <amount> [-years <n>] [-deposit <yearly>] [-rate <annual %>]

  Compares extending with and without fresh deposits. Years must be a
  whole number of extension blocks.
`
}

func (c *ppfExtendCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.balance, "balance", 0, "balance at maturity")
	f.IntVar(&c.years, "years", 5, "extension length in years")
	f.Float64Var(&c.deposit, "deposit", 0, "yearly deposit during the extension; 0 extends without deposits only")
	f.Float64Var(&c.rate, "rate", -1, "annual rate override in percent")
}

func (c *ppfExtendCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("ppf-extend", func(e *engine.Engine, w io.Writer, format string) error {
		result, err := e.PPFExtension(c.balance, c.years, c.deposit, rateOption(c.rate)...)
		if err != nil {
			return err
		}
		return output.Value(w, format, result)
	})
}

// drawFlags are shared by ppf-loan and ppf-withdraw. A negative percentage
// selects the policy maximum.
type drawFlags struct {
	balance     float64
	percentage  float64
	accountYear int
}

func (d *drawFlags) set(f *flag.FlagSet) {
	f.Float64Var(&d.balance, "balance", 0, "account balance")
	f.Float64Var(&d.percentage, "percent", -1, "share of the balance in percent (default: policy maximum)")
	f.IntVar(&d.accountYear, "account-year", 0, "current account year; 0 skips the account age check")
}

type ppfLoanCmd struct {
	app  *App
	draw drawFlags
}

func (*ppfLoanCmd) Name() string     { return "ppf-loan" }
func (*ppfLoanCmd) Synopsis() string { return "loan available against a PPF balance" }
func (*ppfLoanCmd) Usage() string {
	return `fincalc ppf-loan -balance <amount> [-percent <n>] [-account-year <n>]
`
}

func (c *ppfLoanCmd) SetFlags(f *flag.FlagSet) { c.draw.set(f) }

func (c *ppfLoanCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("ppf-loan", func(e *engine.Engine, w io.Writer, format string) error {
		pct := c.draw.percentage
		if pct < 0 {
			pct = e.Table().PPF().LoanPercentage
		}
		result, err := e.PPFLoan(c.draw.balance, pct, c.draw.accountYear)
		if err != nil {
			return err
		}
		return output.Value(w, format, result)
	})
}

type ppfWithdrawCmd struct {
	app  *App
	draw drawFlags
}

func (*ppfWithdrawCmd) Name() string     { return "ppf-withdraw" }
func (*ppfWithdrawCmd) Synopsis() string { return "partial withdrawal allowed from a PPF balance" }
func (*ppfWithdrawCmd) Usage() string {
	return `fincalc ppf-withdraw -balance <amount> [-percent <n>] [-account-year <n>]
`
}

func (c *ppfWithdrawCmd) SetFlags(f *flag.FlagSet) { c.draw.set(f) }

func (c *ppfWithdrawCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("ppf-withdraw", func(e *engine.Engine, w io.Writer, format string) error {
		pct := c.draw.percentage
		if pct < 0 {
			pct = e.Table().PPF().WithdrawalPercentage
		}
		result, err := e.PPFWithdrawal(c.draw.balance, pct, c.draw.accountYear)
		if err != nil {
			return err
		}
		return output.Value(w, format, result)
	})
}
