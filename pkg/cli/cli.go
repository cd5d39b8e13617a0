package cli

import (
	"context"
	"io"
	"os"

	"github.com/landlordsafeguarding/riskaudit/pkg/cli/config"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/errutil"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, os.Stdout)
}

func run(ctx context.Context, args []string, version string, w io.Writer) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()
	// closers run after the error is handled so that it still reaches the
	// log file and Sentry
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "riskaudit",
		Usage:   "Landlord compliance audit scoring and report assembly",
		Version: version,
		Writer:  w,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Info("Starting riskaudit", "logger", loggerCfg, "sentry", sentryCfg)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdReport(version),
			cmdCatalog(),
			cmdValidate(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return errutil.Handle(ctx, err, "failed to run app")
	}

	return nil
}
