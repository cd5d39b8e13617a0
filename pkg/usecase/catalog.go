package usecase

import (
	"context"
	"slices"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// CatalogUseCase is the read view and administrator surface of the question catalog
type CatalogUseCase struct {
	repo   interfaces.Repository
	engine *ScoringEngine
}

func NewCatalogUseCase(repo interfaces.Repository, engine *ScoringEngine) *CatalogUseCase {
	return &CatalogUseCase{
		repo:   repo,
		engine: engine,
	}
}

// SortQuestions orders questions by category, then by question number
func (uc *CatalogUseCase) SortQuestions(questions []*model.Question) {
	slices.SortStableFunc(questions, func(a, b *model.Question) int {
		if c := uc.engine.compareCategories(a.Category, b.Category); c != 0 {
			return c
		}
		return model.CompareQuestionNumbers(a.Number, b.Number)
	})
}

// QuestionsForTier returns the active questions applicable to the tier
func (uc *CatalogUseCase) QuestionsForTier(ctx context.Context, tier types.Tier) ([]*model.Question, error) {
	if err := tier.Validate(); err != nil {
		return nil, err
	}

	questions, err := uc.repo.Question().List(ctx, interfaces.WithTier(tier), interfaces.WithActiveOnly())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions", goerr.V(TierKey, tier))
	}

	uc.SortQuestions(questions)
	return questions, nil
}

// HistoricalQuestions returns the deactivated questions applicable to the
// tier whose numbers are listed. Audits answered before a deactivation
// keep scoring them.
func (uc *CatalogUseCase) HistoricalQuestions(ctx context.Context, tier types.Tier, numbers []string) ([]*model.Question, error) {
	if err := tier.Validate(); err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, nil
	}

	wanted := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		wanted[n] = true
	}

	all, err := uc.repo.Question().List(ctx, interfaces.WithTier(tier))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions", goerr.V(TierKey, tier))
	}

	var historical []*model.Question
	for _, q := range all {
		if !q.Active && wanted[q.Number] {
			historical = append(historical, q)
		}
	}

	uc.SortQuestions(historical)
	return historical, nil
}

// QuestionsForAudit returns the active tier questions plus the
// deactivated ones the responses refer to
func (uc *CatalogUseCase) QuestionsForAudit(ctx context.Context, tier types.Tier, responses []*model.Response) ([]*model.Question, error) {
	questions, err := uc.QuestionsForTier(ctx, tier)
	if err != nil {
		return nil, err
	}

	numbers := make([]string, 0, len(responses))
	for _, r := range responses {
		numbers = append(numbers, r.QuestionNumber)
	}

	historical, err := uc.HistoricalQuestions(ctx, tier, numbers)
	if err != nil {
		return nil, err
	}
	if len(historical) == 0 {
		return questions, nil
	}

	questions = append(questions, historical...)
	uc.SortQuestions(questions)
	return questions, nil
}

// EditQuestion validates and upserts a question by number
func (uc *CatalogUseCase) EditQuestion(ctx context.Context, q *model.Question) error {
	if q == nil {
		return goerr.Wrap(model.ErrInvalidQuestion, "question is required")
	}
	if err := q.Validate(); err != nil {
		return err
	}

	if err := uc.repo.Question().Put(ctx, q); err != nil {
		return goerr.Wrap(err, "failed to save question", goerr.V(QuestionNumberKey, q.Number))
	}

	logging.From(ctx).Info("question saved", "number", q.Number, "active", q.Active)
	return nil
}

// DeactivateQuestion soft-deletes a question. Its responses stay untouched.
func (uc *CatalogUseCase) DeactivateQuestion(ctx context.Context, number string) error {
	if err := uc.repo.Question().Deactivate(ctx, number); err != nil {
		return goerr.Wrap(err, "failed to deactivate question", goerr.V(QuestionNumberKey, number))
	}

	logging.From(ctx).Info("question deactivated", "number", number)
	return nil
}

// Import validates every question before saving any of them
func (uc *CatalogUseCase) Import(ctx context.Context, questions []*model.Question) (int, error) {
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return 0, err
		}
		if seen[q.Number] {
			return 0, goerr.Wrap(model.ErrInvalidQuestion, "duplicate question number",
				goerr.V(QuestionNumberKey, q.Number))
		}
		seen[q.Number] = true
	}

	for _, q := range questions {
		if err := uc.repo.Question().Put(ctx, q); err != nil {
			return 0, goerr.Wrap(err, "failed to import question", goerr.V(QuestionNumberKey, q.Number))
		}
	}

	logging.From(ctx).Info("catalog imported", "count", len(questions))
	return len(questions), nil
}
