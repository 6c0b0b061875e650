package cli

import (
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/iwvelando/fincalc/pkg/engine"
	"github.com/iwvelando/fincalc/pkg/output"
)

type gstCmd struct {
	app    *App
	amount float64
	rate   float64
	remove bool
}

func (*gstCmd) Name() string     { return "gst" }
func (*gstCmd) Synopsis() string { return "add GST to an amount or remove it" }
func (*gstCmd) Usage() string {
	return `fincalc gst -amount <amount> -rate <percent> [-remove]

  Without -remove the amount excludes GST. With -remove it includes GST and
  the base is recovered. Both print the CGST and SGST halves.
`
}

func (c *gstCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "amount")
	f.Float64Var(&c.rate, "rate", 18, "GST rate in percent")
	f.BoolVar(&c.remove, "remove", false, "treat -amount as GST inclusive")
}

func (c *gstCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("gst", func(e *engine.Engine, w io.Writer, format string) error {
		calc := e.AddGST
		if c.remove {
			calc = e.RemoveGST
		}
		breakdown, err := calc(c.amount, c.rate)
		if err != nil {
			return err
		}
		return output.Value(w, format, breakdown)
	})
}

type convertCmd struct {
	app    *App
	amount float64
	from   string
	to     string
	pairs  bool
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert between the configured currencies" }
func (*convertCmd) Usage() string {
	return `fincalc convert -amount <amount> -from <code> -to <code>
fincalc convert -pairs
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "amount in the source currency")
	f.StringVar(&c.from, "from", "", "source currency code")
	f.StringVar(&c.to, "to", "INR", "target currency code")
	f.BoolVar(&c.pairs, "pairs", false, "list the supported conversions instead")
}

func (c *convertCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("convert", func(e *engine.Engine, w io.Writer, format string) error {
		if c.pairs {
			return output.Value(w, format, e.CurrencyPairs())
		}
		conversion, err := e.Convert(c.amount, c.from, c.to)
		if err != nil {
			return err
		}
		return output.Value(w, format, conversion)
	})
}

type ratesCmd struct {
	app *App
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "print the effective rate policy" }
func (*ratesCmd) Usage() string {
	return `fincalc rates

  Prints the policy after defaults, the policy file and FINCALC_ environment
  overrides have been applied.
`
}

func (*ratesCmd) SetFlags(*flag.FlagSet) {}

func (c *ratesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run("rates", func(e *engine.Engine, w io.Writer, format string) error {
		return output.Value(w, format, e.Table().Policy())
	})
}
