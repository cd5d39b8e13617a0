package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
)

type responseRepository struct {
	mu sync.RWMutex
	// responses[auditID][questionNumber]
	responses map[model.AuditID]map[string]*model.Response
}

func newResponseRepository() *responseRepository {
	return &responseRepository{
		responses: make(map[model.AuditID]map[string]*model.Response),
	}
}

func (r *responseRepository) List(ctx context.Context, auditID model.AuditID) ([]*model.Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byNumber := r.responses[auditID]
	responses := make([]*model.Response, 0, len(byNumber))
	for _, resp := range byNumber {
		c := *resp
		responses = append(responses, &c)
	}

	slices.SortFunc(responses, func(a, b *model.Response) int {
		return model.CompareQuestionNumbers(a.QuestionNumber, b.QuestionNumber)
	})

	return responses, nil
}

func (r *responseRepository) Put(ctx context.Context, auditID model.AuditID, responses []*model.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byNumber, ok := r.responses[auditID]
	if !ok {
		byNumber = make(map[string]*model.Response)
		r.responses[auditID] = byNumber
	}

	now := time.Now().UTC()
	for _, resp := range responses {
		c := *resp
		c.AuditID = auditID
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		byNumber[c.QuestionNumber] = &c
	}

	return nil
}
