package usecase

import (
	"time"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model/config"
)

type UseCases struct {
	repo      interfaces.Repository
	catalog   *config.CatalogConfig
	publisher interfaces.ReportPublisher
	version   string
	now       func() time.Time

	Engine    *ScoringEngine
	Assembler *ReportAssembler
	Catalog   *CatalogUseCase
	Audit     *AuditUseCase
	Report    *ReportUseCase
}

type Option func(*UseCases)

// WithCatalogConfig sets category declarations and scoring thresholds
func WithCatalogConfig(cfg *config.CatalogConfig) Option {
	return func(uc *UseCases) {
		uc.catalog = cfg
	}
}

// WithPublisher sets the destination of generated report documents
func WithPublisher(p interfaces.ReportPublisher) Option {
	return func(uc *UseCases) {
		uc.publisher = p
	}
}

// WithVersion sets the version stamped into generated reports
func WithVersion(v string) Option {
	return func(uc *UseCases) {
		uc.version = v
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.catalog == nil {
		uc.catalog = &config.CatalogConfig{Scoring: config.DefaultScoringConfig()}
	}

	uc.Engine = NewScoringEngine(uc.catalog)
	uc.Assembler = NewReportAssembler(uc.Engine)
	uc.Catalog = NewCatalogUseCase(repo, uc.Engine)
	uc.Audit = NewAuditUseCase(repo, uc.Catalog, uc.now)
	uc.Report = NewReportUseCase(repo, uc.Catalog, uc.Engine, uc.Assembler,
		uc.publisher, uc.version, uc.now)

	return uc
}
