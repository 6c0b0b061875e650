package cli

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/engine"
	"github.com/iwvelando/fincalc/pkg/output"
)

type emiCmd struct {
	app       *App
	principal float64
	rate      float64
	months    int
}

func (*emiCmd) Name() string     { return "emi" }
func (*emiCmd) Synopsis() string { return "equated monthly installment of a loan" }
func (*emiCmd) Usage() string {
	return `fincalc emi -principal <amount> -rate <annual %> -months <n>

  Computes the monthly installment, total payment and total interest of a
  reducing-balance loan.
`
}

func (c *emiCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.principal, "principal", 0, "loan principal")
	f.Float64Var(&c.rate, "rate", 0, "annual interest rate in percent")
	f.IntVar(&c.months, "months", 0, "tenure in months")
}

func (c *emiCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("emi", func(e *engine.Engine, w io.Writer, format string) error {
		result, err := e.EMI(c.principal, c.rate, c.months)
		if err != nil {
			return err
		}
		return output.Result(w, format, result)
	})
}

type loanCmd struct {
	app       *App
	principal float64
	rate      float64
	years     int
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "loan repayment with the tenure in years" }
func (*loanCmd) Usage() string {
	return `fincalc loan -principal <amount> -rate <annual %> -years <n>
`
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.principal, "principal", 0, "loan principal")
	f.Float64Var(&c.rate, "rate", 0, "annual interest rate in percent")
	f.IntVar(&c.years, "years", 0, "tenure in years")
}

func (c *loanCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("loan", func(e *engine.Engine, w io.Writer, format string) error {
		result, err := e.Loan(c.principal, c.rate, c.years)
		if err != nil {
			return err
		}
		return output.Result(w, format, result)
	})
}

type scheduleCmd struct {
	app       *App
	principal float64
	rate      float64
	months    int
	years     int
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "month by month amortization schedule" }
func (*scheduleCmd) Usage() string {
	return `fincalc schedule -principal <amount> -rate <annual %> (-months <n> | -years <n>)

  Prints one row per installment with the principal and interest parts and
  the remaining balance.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.principal, "principal", 0, "loan principal")
	f.Float64Var(&c.rate, "rate", 0, "annual interest rate in percent")
	f.IntVar(&c.months, "months", 0, "tenure in months")
	f.IntVar(&c.years, "years", 0, "tenure in years, used when -months is not set")
}

func (c *scheduleCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	months := c.months
	if months == 0 {
		months = c.years * constants.MonthsPerYear
	}
	return c.app.run("schedule", func(e *engine.Engine, w io.Writer, format string) error {
		installments, err := e.Schedule(c.principal, c.rate, months)
		if err != nil {
			return err
		}
		return output.Schedule(w, format, installments)
	})
}

type compareLoansCmd struct {
	app       *App
	principal float64
	years     int
}

func (*compareLoansCmd) Name() string     { return "compare-loans" }
func (*compareLoansCmd) Synopsis() string { return "rank the configured loan types by total cost" }
func (*compareLoansCmd) Usage() string {
	return `fincalc compare-loans -principal <amount> -years <n>
`
}

func (c *compareLoansCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.principal, "principal", 0, "loan principal")
	f.IntVar(&c.years, "years", 0, "tenure in years")
}

func (c *compareLoansCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("compare-loans", func(e *engine.Engine, w io.Writer, format string) error {
		ranking, err := e.CompareLoans(c.principal, c.years)
		if err != nil {
			return err
		}
		return output.Ranking(w, format, "Loan comparison", ranking)
	})
}
