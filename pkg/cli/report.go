package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/landlordsafeguarding/riskaudit/pkg/cli/config"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/landlordsafeguarding/riskaudit/pkg/usecase"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdReport(version string) *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var fixtureCfg config.Fixture
	var outputCfg config.Output
	var auditIDs []string
	var submitted bool
	var concurrency int
	var printJSON bool

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "audit-id",
			Aliases:     []string{"a"},
			Usage:       "Audit to report on (repeatable)",
			Sources:     cli.EnvVars("RISKAUDIT_AUDIT_ID"),
			Destination: &auditIDs,
		},
		&cli.BoolFlag{
			Name:        "submitted",
			Usage:       "Report on every submitted or completed audit",
			Destination: &submitted,
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Reports generated in parallel",
			Value:       usecase.DefaultReportConcurrency,
			Sources:     cli.EnvVars("RISKAUDIT_CONCURRENCY"),
			Destination: &concurrency,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the report documents to stdout",
			Destination: &printJSON,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, fixtureCfg.Flags()...)
	flags = append(flags, outputCfg.Flags()...)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Score audits and assemble their report documents",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if len(auditIDs) == 0 && !submitted {
				return goerr.New("either --audit-id or --submitted is required")
			}

			publisher, closePublisher, err := outputCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure report output")
			}
			defer closePublisher()

			opts := []usecase.Option{usecase.WithVersion(version)}
			if publisher != nil {
				opts = append(opts, usecase.WithPublisher(publisher))
			}

			env, closer, err := setup(ctx, &catalogCfg, &repoCfg, &fixtureCfg, opts...)
			if err != nil {
				return err
			}
			defer closer()

			logging.Default().Info("Report configuration",
				"output", outputCfg,
				"audits", len(auditIDs),
				"submitted", submitted,
				"concurrency", concurrency,
			)

			var results []usecase.ReportResult
			if submitted {
				results, err = env.uc.Report.GenerateSubmitted(ctx, concurrency)
				if err != nil {
					return err
				}
			} else {
				ids := make([]model.AuditID, 0, len(auditIDs))
				for _, id := range auditIDs {
					ids = append(ids, model.AuditID(id))
				}
				results = env.uc.Report.GenerateBatch(ctx, ids, concurrency)
			}

			if printJSON {
				if err := printReports(c.Root().Writer, results); err != nil {
					return err
				}
			} else {
				printSummary(c.Root().Writer, results)
			}

			var failed int
			for _, r := range results {
				if r.Err != nil {
					failed++
					logging.Default().Error("report failed", "audit_id", r.AuditID, "error", r.Err)
				}
			}
			if failed > 0 {
				return goerr.New("some reports failed",
					goerr.V("failed", failed),
					goerr.V("total", len(results)),
				)
			}
			return nil
		},
	}
}

var bandColors = map[types.Color]*color.Color{
	types.ColorGreen:  color.New(color.FgGreen, color.Bold),
	types.ColorOrange: color.New(color.FgYellow, color.Bold),
	types.ColorRed:    color.New(color.FgRed, color.Bold),
}

func printSummary(w io.Writer, results []usecase.ReportResult) {
	for _, r := range results {
		if r.Err != nil {
			color.New(color.FgRed).Fprintf(w, "%s  failed: %v\n", r.AuditID, r.Err)
			continue
		}

		report := r.Report
		fmt.Fprintf(w, "%s  %s  ", report.ReportID, report.PropertyAddress)
		bandColors[report.RiskTier].Fprintf(w, "%.1f %s", report.OverallScore, report.RiskLabel)
		fmt.Fprintf(w, "  critical=%d", len(report.CriticalFindings))
		if r.Location != "" {
			fmt.Fprintf(w, "  -> %s", r.Location)
		}
		fmt.Fprintln(w)
	}
}

func printReports(w io.Writer, results []usecase.ReportResult) error {
	reports := make([]*model.ReportData, 0, len(results))
	for _, r := range results {
		if r.Report != nil {
			reports = append(reports, r.Report)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return goerr.Wrap(err, "failed to print reports")
	}
	return nil
}
