package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type questionRepository struct {
	mu        sync.RWMutex
	questions map[string]*model.Question
}

func newQuestionRepository() *questionRepository {
	return &questionRepository{
		questions: make(map[string]*model.Question),
	}
}

func (r *questionRepository) Get(ctx context.Context, number string) (*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, exists := r.questions[number]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "question not found", goerr.V(model.QuestionNumberKey, number))
	}

	// Return a copy to prevent external modification
	return q.Copy(), nil
}

func (r *questionRepository) List(ctx context.Context, opts ...interfaces.ListQuestionOption) ([]*model.Question, error) {
	cfg := interfaces.BuildListQuestionConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	questions := make([]*model.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if cfg.ActiveOnly() && !q.Active {
			continue
		}
		if tier := cfg.Tier(); tier != nil && !q.AppliesTo(*tier) {
			continue
		}
		questions = append(questions, q.Copy())
	}

	slices.SortFunc(questions, func(a, b *model.Question) int {
		return model.CompareQuestionNumbers(a.Number, b.Number)
	})

	return questions, nil
}

func (r *questionRepository) Put(ctx context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := q.Copy()
	if existing, ok := r.questions[q.Number]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.questions[q.Number] = stored
	return nil
}

func (r *questionRepository) Deactivate(ctx context.Context, number string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, exists := r.questions[number]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "question not found", goerr.V(model.QuestionNumberKey, number))
	}

	q.Active = false
	q.UpdatedAt = time.Now().UTC()
	return nil
}
