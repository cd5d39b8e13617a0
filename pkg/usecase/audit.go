package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AuditUseCase drives the audit lifecycle
type AuditUseCase struct {
	repo    interfaces.Repository
	catalog *CatalogUseCase
	now     func() time.Time
}

func NewAuditUseCase(repo interfaces.Repository, catalog *CatalogUseCase, now func() time.Time) *AuditUseCase {
	return &AuditUseCase{
		repo:    repo,
		catalog: catalog,
		now:     now,
	}
}

// Create starts a pending audit
func (uc *AuditUseCase) Create(ctx context.Context, tier types.Tier, propertyAddress, clientName, auditorName string) (*model.Audit, error) {
	audit, err := model.NewAudit(tier, propertyAddress, clientName, auditorName, uc.now())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Audit().Put(ctx, audit); err != nil {
		return nil, goerr.Wrap(err, "failed to create audit")
	}

	logging.From(ctx).Info("audit created", "audit_id", audit.ID, "tier", tier)
	return audit, nil
}

// Submit stores the responses and moves the audit to submitted. Every
// response must reference an active question of the audit's tier and
// match one of its options.
func (uc *AuditUseCase) Submit(ctx context.Context, id model.AuditID, responses []*model.Response) (*model.Audit, error) {
	audit, err := uc.repo.Audit().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get audit", goerr.V(AuditIDKey, id))
	}

	questions, err := uc.catalog.QuestionsForTier(ctx, audit.Tier)
	if err != nil {
		return nil, err
	}
	byNumber := make(map[string]*model.Question, len(questions))
	for _, q := range questions {
		byNumber[q.Number] = q
	}

	seen := make(map[string]bool, len(responses))
	for _, r := range responses {
		if seen[r.QuestionNumber] {
			return nil, goerr.Wrap(ErrDuplicateResponse, "question answered more than once",
				goerr.V(AuditIDKey, id), goerr.V(QuestionNumberKey, r.QuestionNumber))
		}
		seen[r.QuestionNumber] = true

		q, ok := byNumber[r.QuestionNumber]
		if !ok {
			return nil, goerr.New("response references a question outside the audit tier",
				goerr.V(AuditIDKey, id), goerr.V(QuestionNumberKey, r.QuestionNumber), goerr.V(TierKey, audit.Tier))
		}
		if strings.TrimSpace(r.Answer) == "" {
			continue
		}
		if _, found := q.MatchOption(r.Answer); !found {
			return nil, goerr.Wrap(ErrInvalidAnswerValue, "answer does not match any option",
				goerr.V(AuditIDKey, id), goerr.V(QuestionNumberKey, r.QuestionNumber), goerr.V(AnswerKey, r.Answer))
		}
	}

	now := uc.now()
	if err := audit.Submit(now); err != nil {
		return nil, err
	}

	if err := uc.repo.Response().Put(ctx, id, responses); err != nil {
		return nil, goerr.Wrap(err, "failed to save responses", goerr.V(AuditIDKey, id))
	}
	if err := uc.repo.Audit().Put(ctx, audit); err != nil {
		return nil, goerr.Wrap(err, "failed to save audit", goerr.V(AuditIDKey, id))
	}

	logging.From(ctx).Info("audit submitted", "audit_id", id, "responses", len(responses))
	return audit, nil
}

// Complete moves a submitted audit to completed
func (uc *AuditUseCase) Complete(ctx context.Context, id model.AuditID) (*model.Audit, error) {
	audit, err := uc.repo.Audit().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get audit", goerr.V(AuditIDKey, id))
	}

	if err := audit.Complete(uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.Audit().Put(ctx, audit); err != nil {
		return nil, goerr.Wrap(err, "failed to save audit", goerr.V(AuditIDKey, id))
	}

	logging.From(ctx).Info("audit completed", "audit_id", id)
	return audit, nil
}
