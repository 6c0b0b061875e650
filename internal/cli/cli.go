// Package cli implements the fincalc command line on top of the
// calculation engine. Each command parses its own flags, runs one engine
// operation and writes the result in the selected output format.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/pkg/calcerr"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/engine"
	"github.com/iwvelando/fincalc/pkg/validation"
	"go.uber.org/zap"
)

// Version is reported by `fincalc serve` on /api/version.
var Version = "dev"

// App carries the global flags and the state built from them. Commands
// share one App.
type App struct {
	configPath   string
	logLevel     string
	outputFormat string

	stdout io.Writer
	stderr io.Writer

	logger *zap.Logger
	engine *engine.Engine
	format string
}

// NewApp returns an App writing results to stdout and diagnostics to stderr.
func NewApp(stdout, stderr io.Writer) *App {
	return &App{stdout: stdout, stderr: stderr}
}

// SetFlags registers the global flags on f.
func (a *App) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to rate policy file")
	f.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	f.StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
}

// Register adds every fincalc command to c.
func (a *App) Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&emiCmd{app: a}, "loans")
	c.Register(&loanCmd{app: a}, "loans")
	c.Register(&scheduleCmd{app: a}, "loans")
	c.Register(&compareLoansCmd{app: a}, "loans")

	c.Register(&rdCmd{app: a}, "deposits")
	c.Register(&fdCmd{app: a}, "deposits")
	c.Register(&schemeCmd{app: a}, "deposits")
	c.Register(&calcCmd{app: a}, "deposits")
	c.Register(&eligibilityCmd{app: a}, "deposits")

	c.Register(&ppfTargetCmd{app: a}, "ppf")
	c.Register(&ppfExtendCmd{app: a}, "ppf")
	c.Register(&ppfLoanCmd{app: a}, "ppf")
	c.Register(&ppfWithdrawCmd{app: a}, "ppf")

	c.Register(&compareCmd{app: a}, "comparisons")
	c.Register(&compareInvestmentsCmd{app: a}, "comparisons")
	c.Register(&alternativesCmd{app: a}, "comparisons")
	c.Register(&taxCmd{app: a}, "comparisons")

	c.Register(&gstCmd{app: a}, "utilities")
	c.Register(&convertCmd{app: a}, "utilities")
	c.Register(&ratesCmd{app: a}, "utilities")

	c.Register(&serveCmd{app: a}, "server")
}

// Run parses args and executes the selected command.
func Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) subcommands.ExitStatus {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(stderr)

	app := NewApp(stdout, stderr)
	app.SetFlags(f)

	commander := subcommands.NewCommander(f, name)
	commander.Output = stdout
	commander.Error = stderr
	app.Register(commander)

	if err := f.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return subcommands.ExitSuccess
		}
		return subcommands.ExitUsageError
	}
	return commander.Execute(ctx)
}

// loadConfiguration reads the policy file. The default file is optional;
// without it the built-in rates apply.
func (a *App) loadConfiguration() (*config.Configuration, error) {
	path := a.configPath
	if path == constants.DefaultConfigFile {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	return conf, nil
}

// setup loads the policy, builds the logger and the engine, and settles
// the output format.
func (a *App) setup() error {
	conf, err := a.loadConfiguration()
	if err != nil {
		return err
	}

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	format := conf.Output.Format
	if a.outputFormat != "" {
		format = a.outputFormat
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cli.setup"),
		)
	}

	table, err := conf.Table()
	if err != nil {
		return fmt.Errorf("invalid rate policy: %w", err)
	}

	a.logger = logger
	a.engine = engine.New(table, logger)
	a.format = format
	return nil
}

// run performs setup and then fn, mapping failures to exit statuses.
func (a *App) run(op string, fn func(e *engine.Engine, w io.Writer, format string) error) subcommands.ExitStatus {
	if err := a.setup(); err != nil {
		fmt.Fprintln(a.stderr, err)
		return subcommands.ExitFailure
	}
	defer func() {
		_ = a.logger.Sync()
	}()

	if err := fn(a.engine, a.stdout, a.format); err != nil {
		a.logger.Debug("command failed",
			zap.String("op", op),
			zap.Error(err),
		)
		fmt.Fprintf(a.stderr, "%s: %v\n", op, err)
		return exitStatus(err)
	}
	return subcommands.ExitSuccess
}

// exitStatus maps calculation failures onto exit codes: bad input is a
// usage error, every other failure is a plain failure.
func exitStatus(err error) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case calcerr.KindOf(err) == calcerr.InvalidInput:
		return subcommands.ExitUsageError
	default:
		return subcommands.ExitFailure
	}
}

// usage reports a missing or extra argument.
func (a *App) usage(format string, args ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(a.stderr, format+"\n", args...)
	return subcommands.ExitUsageError
}
