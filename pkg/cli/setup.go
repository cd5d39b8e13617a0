package cli

import (
	"context"

	"github.com/landlordsafeguarding/riskaudit/pkg/cli/config"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/usecase"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

type environment struct {
	uc      *usecase.UseCases
	repo    interfaces.Repository
	catalog *config.AppConfig
	seeded  []model.AuditID
}

// setup loads the catalog, opens the repository and seeds the fixture. The
// memory backend has no stored catalog, so the file's questions are
// imported into it. The returned function closes the repository.
func setup(ctx context.Context, catalogCfg *config.Catalog, repoCfg *config.Repository, fixtureCfg *config.Fixture, opts ...usecase.Option) (*environment, func(), error) {
	noop := func() {}

	appCfg, err := catalogCfg.Configure()
	if err != nil {
		return nil, noop, goerr.Wrap(err, "failed to load catalog")
	}

	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, noop, goerr.Wrap(err, "failed to initialize repository")
	}
	closer := func() { safe.Close(ctx, repo) }

	opts = append([]usecase.Option{usecase.WithCatalogConfig(appCfg.ToCatalogConfig())}, opts...)
	uc := usecase.New(repo, opts...)

	if repoCfg.Backend() == config.BackendMemory || repoCfg.Backend() == "" {
		questions, err := appCfg.ToQuestions()
		if err != nil {
			closer()
			return nil, noop, err
		}
		if _, err := uc.Catalog.Import(ctx, questions); err != nil {
			closer()
			return nil, noop, goerr.Wrap(err, "failed to load catalog questions")
		}
	}

	seeded, err := fixtureCfg.Configure(ctx, repo)
	if err != nil {
		closer()
		return nil, noop, goerr.Wrap(err, "failed to seed fixture")
	}

	logging.From(ctx).Debug("environment ready",
		"catalog", catalogCfg,
		"repository", repoCfg,
		"seeded", len(seeded),
	)

	return &environment{
		uc:      uc,
		repo:    repo,
		catalog: appCfg,
		seeded:  seeded,
	}, closer, nil
}
