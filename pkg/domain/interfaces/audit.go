package interfaces

import (
	"context"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
)

// AuditRepository defines the interface for Audit data access
type AuditRepository interface {
	// Get retrieves an audit by ID
	Get(ctx context.Context, id model.AuditID) (*model.Audit, error)

	// List retrieves audits ordered by creation time with optional filtering
	List(ctx context.Context, opts ...ListAuditOption) ([]*model.Audit, error)

	// Put creates or replaces an audit
	Put(ctx context.Context, audit *model.Audit) error
}
