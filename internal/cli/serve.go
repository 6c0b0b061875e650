package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/internal/metrics"
	"github.com/iwvelando/fincalc/internal/server"
	"github.com/iwvelando/fincalc/internal/tracing"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/engine"
	"go.uber.org/zap"
)

type serveCmd struct {
	app          *App
	serverConfig string
	address      string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the calculations as a JSON HTTP API" }
func (*serveCmd) Usage() string {
	return `fincalc serve [-server-config <file>] [-address <host:port>]

  Serves /api/v1 until interrupted. The rate policy comes from the server
  config's ratesFile, or from -config when that is empty, and is reloaded
  on file change or on the configured cron schedule.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	f.StringVar(&c.address, "address", "", "listen address override")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.serve(ctx); err != nil {
		fmt.Fprintln(c.app.stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) serve(ctx context.Context) error {
	cfg, err := server.LoadConfig(c.serverConfig)
	if err != nil {
		return err
	}
	if c.address != "" {
		cfg.Address = c.address
	}

	logger, err := initializeLogger(cfg.Logging, c.app.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ratesFile := cfg.RatesFile
	if ratesFile == "" {
		ratesFile = c.app.configPath
		if _, err := os.Stat(ratesFile); errors.Is(err, fs.ErrNotExist) && ratesFile == constants.DefaultConfigFile {
			ratesFile = ""
		}
	}
	source := config.NewSource(ratesFile)
	conf, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load rate policy: %w", err)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cli.serve"),
		)
	}
	table, err := conf.Table()
	if err != nil {
		return fmt.Errorf("invalid rate policy: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.Init(ctx, tracing.Config{
		ServiceName:    constants.DefaultServiceName,
		ServiceVersion: Version,
		Endpoint:       cfg.OTelEndpoint,
		Insecure:       cfg.OTelInsecure,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", zap.String("op", "cli.serve"), zap.Error(err))
		}
	}()

	h := server.NewHandler(server.Options{
		Engine:       engine.New(table, logger),
		Source:       source,
		Logger:       logger,
		Metrics:      metrics.New(),
		Tracer:       provider.Tracer(),
		MaxBodyBytes: cfg.BodySizeBytes(),
		Version:      Version,
	})

	stopReloader, err := h.StartReloader(cfg)
	if err != nil {
		return err
	}
	defer stopReloader()

	logger.Info("serving rate policy",
		zap.String("op", "cli.serve"),
		zap.String("rates_file", source.Path()),
		zap.Strings("schemes", table.Schemes()),
	)
	return server.Run(ctx, cfg, h, logger)
}
