package cli

import (
	"context"

	"github.com/landlordsafeguarding/riskaudit/pkg/cli/config"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var fixtureCfg config.Fixture

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, fixtureCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the catalog file and check stored responses against it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: load the catalog and the repository
			env, closer, err := setup(ctx, &catalogCfg, &repoCfg, &fixtureCfg)
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}
			defer closer()

			logger.Info("Catalog validation passed",
				"categories", len(env.catalog.Categories),
				"questions", len(env.catalog.Questions),
			)

			// Step 2: check responses against the catalog
			result, err := env.uc.ValidateResponses(ctx)
			if err != nil {
				return goerr.Wrap(err, "response consistency check failed")
			}

			if result.HasIssues() {
				for _, issue := range result.Issues {
					logger.Warn("Response consistency issue found",
						"audit_id", issue.AuditID,
						"question", issue.QuestionNumber,
						"message", issue.Message,
						"expected", issue.Expected,
						"actual", issue.Actual,
					)
				}

				return goerr.New("response consistency check found issues",
					goerr.V("issues", len(result.Issues)),
					goerr.V("audits", result.Audits),
				)
			}

			logger.Info("Response consistency check passed", "audits", result.Audits)
			return nil
		},
	}
}
