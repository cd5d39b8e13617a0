package interfaces

import (
	"context"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
)

// ResponseRepository defines the interface for audit Response data access
type ResponseRepository interface {
	// List retrieves all responses of an audit ordered by question number
	List(ctx context.Context, auditID model.AuditID) ([]*model.Response, error)

	// Put upserts responses keyed by (audit, question number)
	Put(ctx context.Context, auditID model.AuditID, responses []*model.Response) error
}
