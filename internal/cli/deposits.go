package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/engine"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/output"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/iwvelando/fincalc/pkg/schemes"
)

type rdCmd struct {
	app    *App
	amount float64
	rate   float64
	months int
}

func (*rdCmd) Name() string     { return "rd" }
func (*rdCmd) Synopsis() string { return "bank recurring deposit maturity" }
func (*rdCmd) Usage() string {
	return `fincalc rd -amount <monthly deposit> -rate <annual %> -months <n>
`
}

func (c *rdCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "monthly deposit")
	f.Float64Var(&c.rate, "rate", 0, "annual interest rate in percent")
	f.IntVar(&c.months, "months", 0, "tenure in months")
}

func (c *rdCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("rd", func(e *engine.Engine, w io.Writer, format string) error {
		result, err := e.RecurringDeposit(c.amount, c.rate, c.months)
		if err != nil {
			return err
		}
		return output.Result(w, format, result)
	})
}

type fdCmd struct {
	app    *App
	amount float64
	rate   float64
	years  int
}

func (*fdCmd) Name() string     { return "fd" }
func (*fdCmd) Synopsis() string { return "bank fixed deposit maturity with quarterly compounding" }
func (*fdCmd) Usage() string {
	return `fincalc fd -amount <principal> [-rate <annual %>] -years <n>

  Without -rate the policy's fd rate is used.
`
}

func (c *fdCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "principal")
	f.Float64Var(&c.rate, "rate", -1, "annual interest rate in percent (default: policy fd rate)")
	f.IntVar(&c.years, "years", 0, "tenure in years")
}

func (c *fdCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("fd", func(e *engine.Engine, w io.Writer, format string) error {
		rate := c.rate
		if rate < 0 {
			rate, _ = e.Table().Rate(rates.FD)
		}
		result, err := e.FixedDeposit(c.amount, rate, c.years)
		if err != nil {
			return err
		}
		return output.Result(w, format, result)
	})
}

// profileFlags collects an optional investor profile. Age 0 means no
// profile was given.
type profileFlags struct {
	age    int
	gender string
}

func (p *profileFlags) set(f *flag.FlagSet) {
	f.IntVar(&p.age, "age", 0, "investor age; enables eligibility checks")
	f.StringVar(&p.gender, "gender", "", "investor gender (female, male)")
}

func (p *profileFlags) profile() *schemes.Profile {
	if p.age == 0 && p.gender == "" {
		return nil
	}
	return &schemes.Profile{Age: p.age, Gender: p.gender}
}

func (p *profileFlags) options() []engine.Option {
	if profile := p.profile(); profile != nil {
		return []engine.Option{engine.WithProfile(*profile)}
	}
	return nil
}

type schemeCmd struct {
	app     *App
	amount  float64
	years   int
	rate    float64
	profile profileFlags
}

func (*schemeCmd) Name() string     { return "scheme" }
func (*schemeCmd) Synopsis() string { return "maturity of a government savings scheme" }
func (*schemeCmd) Usage() string {
	return fmt.Sprintf(`fincalc scheme [-years <n>] [-rate <annual %%>] [-age <n>] -amount <amount> <scheme>

  Runs one scheme at the policy rate. The amount is the yearly deposit for
  ppf and sukanya_samriddhi, the monthly deposit for post_office_rd and the
  lump sum otherwise. Without -years the scheme tenure is used.

  Schemes: %s
`, strings.Join(engine.Schemes(), ", "))
}

func (c *schemeCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "deposit amount")
	f.IntVar(&c.years, "years", 0, "tenure in years (default: scheme tenure)")
	f.Float64Var(&c.rate, "rate", -1, "annual rate override in percent")
	c.profile.set(f)
}

func (c *schemeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("scheme: expected exactly one scheme id, got %d", f.NArg())
	}
	id := f.Arg(0)

	opts := c.profile.options()
	if c.rate >= 0 {
		opts = append(opts, engine.WithRate(c.rate))
	}
	return c.app.run("scheme", func(e *engine.Engine, w io.Writer, format string) error {
		result, err := e.Scheme(id, c.amount, c.years, opts...)
		if err != nil {
			return err
		}
		return output.Result(w, format, result)
	})
}

type calcCmd struct {
	app    *App
	amount float64
	rate   float64
	tenure int
	unit   string
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "run any calculation from a generic request" }
func (*calcCmd) Usage() string {
	return fmt.Sprintf(`fincalc calc -amount <amount> -rate <annual %%> -tenure <n> [-unit months|years] <id>

  The request rate is always used, overriding the policy.

  Ids: %s
`, strings.Join(engine.Calculations(), ", "))
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "principal or deposit")
	f.Float64Var(&c.rate, "rate", 0, "annual interest rate in percent")
	f.IntVar(&c.tenure, "tenure", 0, "tenure in -unit")
	f.StringVar(&c.unit, "unit", constants.UnitYears, "tenure unit (months, years)")
}

func (c *calcCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usage("calc: expected exactly one calculation id, got %d", f.NArg())
	}
	req := finance.Request{Amount: c.amount, AnnualRate: c.rate, Tenure: c.tenure, Unit: c.unit}
	return c.app.run("calc", func(e *engine.Engine, w io.Writer, format string) error {
		result, err := e.Calculate(f.Arg(0), req)
		if err != nil {
			return err
		}
		return output.Result(w, format, result)
	})
}

type eligibilityCmd struct {
	app     *App
	profile profileFlags
}

func (*eligibilityCmd) Name() string     { return "eligibility" }
func (*eligibilityCmd) Synopsis() string { return "which gated schemes an investor may open" }
func (*eligibilityCmd) Usage() string {
	return `fincalc eligibility -age <n> [-gender female|male]
`
}

func (c *eligibilityCmd) SetFlags(f *flag.FlagSet) {
	c.profile.set(f)
}

func (c *eligibilityCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	profile := schemes.Profile{Age: c.profile.age, Gender: c.profile.gender}
	return c.app.run("eligibility", func(e *engine.Engine, w io.Writer, format string) error {
		result, err := e.Eligibility(profile)
		if err != nil {
			return err
		}
		return output.Value(w, format, result)
	})
}
