package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/landlordsafeguarding/riskaudit/pkg/cli/config"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/landlordsafeguarding/riskaudit/pkg/usecase"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdCatalog() *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"c"},
		Usage:   "Manage the question catalog",
		Commands: []*cli.Command{
			cmdCatalogList(),
			cmdCatalogImport(),
			cmdCatalogDeactivate(),
		},
	}
}

func cmdCatalogList() *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var tier string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "tier",
			Aliases:     []string{"t"},
			Usage:       "Audit tier (tier_0 to tier_4)",
			Required:    true,
			Destination: &tier,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "list",
		Usage: "List the active questions of a tier in presentation order",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			t, err := types.ParseTier(tier)
			if err != nil {
				return err
			}

			env, closer, err := setup(ctx, &catalogCfg, &repoCfg, &config.Fixture{})
			if err != nil {
				return err
			}
			defer closer()

			questions, err := env.uc.Catalog.QuestionsForTier(ctx, t)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NUMBER\tCATEGORY\tSUBCATEGORY\tWEIGHT\tCRITICAL\tTEXT")
			for _, q := range questions {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%t\t%s\n",
					q.Number, q.Category, q.Subcategory, q.Weight, q.Critical, q.Text)
			}
			if err := tw.Flush(); err != nil {
				return goerr.Wrap(err, "failed to print questions")
			}

			logging.Default().Info("Questions listed", "tier", t, "count", len(questions))
			return nil
		},
	}
}

func cmdCatalogImport() *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "import",
		Usage: "Validate the catalog file and upsert its questions into the repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appCfg, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}
			questions, err := appCfg.ToQuestions()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, usecase.WithCatalogConfig(appCfg.ToCatalogConfig()))
			n, err := uc.Catalog.Import(ctx, questions)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "imported %d question(s) into %s\n", n, repoCfg.Backend())
			return nil
		},
	}
}

func cmdCatalogDeactivate() *cli.Command {
	var repoCfg config.Repository
	var numbers []string

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "number",
			Aliases:     []string{"n"},
			Usage:       "Question number to deactivate (repeatable)",
			Required:    true,
			Destination: &numbers,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "deactivate",
		Usage: "Deactivate questions. Existing responses keep scoring against them",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo)
			for _, number := range numbers {
				if err := uc.Catalog.DeactivateQuestion(ctx, strings.TrimSpace(number)); err != nil {
					return err
				}
			}

			fmt.Fprintf(c.Root().Writer, "deactivated %s\n", strings.Join(numbers, ", "))
			return nil
		},
	}
}
