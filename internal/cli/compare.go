package cli

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/iwvelando/fincalc/pkg/engine"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/output"
)

type compareCmd struct {
	app     *App
	amount  float64
	years   int
	profile profileFlags
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "rank the lump-sum government schemes by maturity" }
func (*compareCmd) Usage() string {
	return `fincalc compare -amount <amount> -years <n> [-age <n>] [-gender female|male]

  Schemes that reject the amount, or the profile when one is given, are
  left out of the ranking.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "lump sum")
	f.IntVar(&c.years, "years", 0, "horizon in years")
	c.profile.set(f)
}

func (c *compareCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("compare", func(e *engine.Engine, w io.Writer, format string) error {
		ranking, err := e.CompareSchemes(c.amount, c.years, c.profile.profile())
		if err != nil {
			return err
		}
		return output.Ranking(w, format, "Scheme comparison", ranking)
	})
}

type compareInvestmentsCmd struct {
	app    *App
	amount float64
	years  int
}

func (*compareInvestmentsCmd) Name() string { return "compare-investments" }
func (*compareInvestmentsCmd) Synopsis() string {
	return "rank FD, RD, SIP and PPF at the benchmark rates"
}
func (*compareInvestmentsCmd) Usage() string {
	return `fincalc compare-investments -amount <amount> -years <n>
`
}

func (c *compareInvestmentsCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "amount invested")
	f.IntVar(&c.years, "years", 0, "horizon in years")
}

func (c *compareInvestmentsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("compare-investments", func(e *engine.Engine, w io.Writer, format string) error {
		ranking, err := e.CompareInvestments(c.amount, c.years)
		if err != nil {
			return err
		}
		return output.Ranking(w, format, "Investment comparison", ranking)
	})
}

type alternativesCmd struct {
	app     *App
	deposit float64
	years   int
}

func (*alternativesCmd) Name() string     { return "alternatives" }
func (*alternativesCmd) Synopsis() string { return "compare a PPF deposit with FD, ELSS and NSC" }
func (*alternativesCmd) Usage() string {
	return `fincalc alternatives -deposit <yearly> [-years <n>]
`
}

func (c *alternativesCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.deposit, "deposit", 0, "yearly deposit")
	f.IntVar(&c.years, "years", 15, "horizon in years")
}

func (c *alternativesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("alternatives", func(e *engine.Engine, w io.Writer, format string) error {
		ranking, err := e.CompareAlternatives(c.deposit, c.years)
		if err != nil {
			return err
		}
		return output.Ranking(w, format, "PPF alternatives", ranking)
	})
}

type taxCmd struct {
	app     *App
	deposit float64
	amount  float64
	years   int
	bracket float64
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "Section 80C benefit or post-tax scheme returns" }
func (*taxCmd) Usage() string {
	return `fincalc tax -deposit <yearly>
fincalc tax -amount <amount> -years <n> [-bracket <fraction>]

  With -deposit prints the 80C saving in every bracket. With -amount runs
  the scheme comparison and taxes each result at the bracket.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.deposit, "deposit", 0, "yearly 80C deposit")
	f.Float64Var(&c.amount, "amount", 0, "lump sum for the post-tax comparison")
	f.IntVar(&c.years, "years", 5, "horizon in years for the post-tax comparison")
	f.Float64Var(&c.bracket, "bracket", -1, "tax bracket as a fraction, e.g. 0.3 (default: policy bracket)")
}

func (c *taxCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.deposit == 0) == (c.amount == 0) {
		return c.app.usage("tax: set exactly one of -deposit or -amount")
	}
	return c.app.run("tax", func(e *engine.Engine, w io.Writer, format string) error {
		if c.deposit != 0 {
			summary, err := e.TaxBenefits(c.deposit)
			if err != nil {
				return err
			}
			return output.Value(w, format, summary)
		}

		ranking, err := e.CompareSchemes(c.amount, c.years, nil)
		if err != nil {
			return err
		}
		results := make([]finance.Result, 0, len(ranking.Entries))
		for _, entry := range ranking.Entries {
			results = append(results, entry.Result)
		}
		bracket := c.bracket
		if bracket < 0 {
			bracket = e.DefaultBracket()
		}
		analysis, err := e.TaxImplications(results, bracket)
		if err != nil {
			return err
		}
		return output.Value(w, format, analysis)
	})
}
