package interfaces

import (
	"context"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
)

// QuestionRepository defines the interface for catalog question access
type QuestionRepository interface {
	// Get retrieves a question by number, active or not
	Get(ctx context.Context, number string) (*model.Question, error)

	// List retrieves questions ordered by number with optional filtering
	List(ctx context.Context, opts ...ListQuestionOption) ([]*model.Question, error)

	// Put creates or replaces a question by number
	Put(ctx context.Context, q *model.Question) error

	// Deactivate marks a question inactive. The question is never deleted.
	Deactivate(ctx context.Context, number string) error
}
