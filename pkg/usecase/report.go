package usecase

import (
	"context"
	"time"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/async"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultReportConcurrency bounds parallel generation when no limit is given
const DefaultReportConcurrency = 4

// ReportResult is the outcome of generating the report of one audit
type ReportResult struct {
	AuditID  model.AuditID
	Report   *model.ReportData
	Scores   *model.ScoreResult
	Location string
	Err      error
}

// ReportUseCase orchestrates reading, scoring, assembling and publishing
type ReportUseCase struct {
	repo      interfaces.Repository
	catalog   *CatalogUseCase
	engine    *ScoringEngine
	assembler *ReportAssembler
	publisher interfaces.ReportPublisher
	version   string
	now       func() time.Time
}

func NewReportUseCase(
	repo interfaces.Repository,
	catalog *CatalogUseCase,
	engine *ScoringEngine,
	assembler *ReportAssembler,
	publisher interfaces.ReportPublisher,
	version string,
	now func() time.Time,
) *ReportUseCase {
	return &ReportUseCase{
		repo:      repo,
		catalog:   catalog,
		engine:    engine,
		assembler: assembler,
		publisher: publisher,
		version:   version,
		now:       now,
	}
}

// Score reads the audit, its responses and the applicable questions, and
// computes the scores. A partial result accompanies ErrMissingResponse.
func (uc *ReportUseCase) Score(ctx context.Context, id model.AuditID) (*model.ScoreResult, error) {
	audit, err := uc.repo.Audit().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get audit", goerr.V(AuditIDKey, id))
	}

	_, _, scores, err := uc.scoreAudit(ctx, audit)
	return scores, err
}

func (uc *ReportUseCase) scoreAudit(ctx context.Context, audit *model.Audit) ([]*model.Response, []*model.Question, *model.ScoreResult, error) {
	responses, err := uc.repo.Response().List(ctx, audit.ID)
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to get responses", goerr.V(AuditIDKey, audit.ID))
	}

	questions, err := uc.catalog.QuestionsForAudit(ctx, audit.Tier, responses)
	if err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to get questions", goerr.V(AuditIDKey, audit.ID))
	}

	scores, err := uc.engine.ComputeScores(responses, questions)
	if err != nil {
		return responses, questions, scores, goerr.Wrap(err, "failed to compute scores", goerr.V(AuditIDKey, audit.ID))
	}

	return responses, questions, scores, nil
}

// Generate produces the report document of one audit without publishing it
func (uc *ReportUseCase) Generate(ctx context.Context, id model.AuditID) (*model.ReportData, error) {
	report, _, err := uc.generate(ctx, id)
	return report, err
}

func (uc *ReportUseCase) generate(ctx context.Context, id model.AuditID) (*model.ReportData, *model.ScoreResult, error) {
	audit, err := uc.repo.Audit().Get(ctx, id)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to get audit", goerr.V(AuditIDKey, id))
	}
	// pending audits fail with NotReady, not with their missing responses
	if !audit.Status.IsReportable() {
		return nil, nil, goerr.Wrap(ErrNotReady, "audit must be submitted or completed",
			goerr.V(AuditIDKey, id), goerr.V(StatusKey, audit.Status))
	}

	responses, questions, scores, err := uc.scoreAudit(ctx, audit)
	if err != nil {
		return nil, scores, err
	}

	report, err := uc.assembler.Assemble(audit, responses, questions, scores)
	if err != nil {
		return nil, scores, goerr.Wrap(err, "failed to assemble report", goerr.V(AuditIDKey, id))
	}
	report.GeneratedAt = uc.now()
	report.SourceVersion = uc.version

	logging.From(ctx).Info("report generated",
		"audit_id", id,
		"report_id", report.ReportID,
		"overall_score", report.OverallScore,
		"risk_tier", report.RiskTier,
	)
	return report, scores, nil
}

// GenerateBatch generates, and publishes when a publisher is configured,
// the reports of many audits in parallel. A failing audit does not stop
// the others; its error is returned in its result.
func (uc *ReportUseCase) GenerateBatch(ctx context.Context, ids []model.AuditID, concurrency int) []ReportResult {
	if concurrency <= 0 {
		concurrency = DefaultReportConcurrency
	}

	results := make([]ReportResult, len(ids))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, id := range ids {
		eg.Go(func() error {
			err := async.Guard(ctx, func(ctx context.Context) error {
				results[i] = uc.generateOne(ctx, id)
				return nil
			})
			if err != nil {
				results[i] = ReportResult{AuditID: id, Err: goerr.Wrap(err, "report generation failed", goerr.V(AuditIDKey, id))}
			}
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

func (uc *ReportUseCase) generateOne(ctx context.Context, id model.AuditID) ReportResult {
	result := ReportResult{AuditID: id}

	if err := ctx.Err(); err != nil {
		result.Err = goerr.Wrap(err, "report generation canceled", goerr.V(AuditIDKey, id))
		return result
	}

	report, scores, err := uc.generate(ctx, id)
	result.Scores = scores
	if err != nil {
		result.Err = err
		return result
	}
	result.Report = report

	if uc.publisher != nil {
		location, err := uc.publisher.Publish(ctx, report)
		if err != nil {
			result.Err = goerr.Wrap(err, "failed to publish report",
				goerr.V(AuditIDKey, id), goerr.V("report_id", report.ReportID))
			return result
		}
		result.Location = location
	}

	return result
}

// GenerateSubmitted generates the reports of every submitted or completed audit
func (uc *ReportUseCase) GenerateSubmitted(ctx context.Context, concurrency int) ([]ReportResult, error) {
	audits, err := uc.repo.Audit().List(ctx,
		interfaces.WithAuditStatus(types.AuditStatusSubmitted, types.AuditStatusCompleted))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list reportable audits")
	}

	ids := make([]model.AuditID, 0, len(audits))
	for _, a := range audits {
		ids = append(ids, a.ID)
	}

	logging.From(ctx).Info("generating reports", "audits", len(ids), "concurrency", concurrency)
	return uc.GenerateBatch(ctx, ids, concurrency), nil
}
