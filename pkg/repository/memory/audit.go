package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type auditRepository struct {
	mu     sync.RWMutex
	audits map[model.AuditID]*model.Audit
}

func newAuditRepository() *auditRepository {
	return &auditRepository{
		audits: make(map[model.AuditID]*model.Audit),
	}
}

func (r *auditRepository) Get(ctx context.Context, id model.AuditID) (*model.Audit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	audit, exists := r.audits[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "audit not found", goerr.V(model.AuditIDKey, id))
	}
	return audit.Copy(), nil
}

func (r *auditRepository) List(ctx context.Context, opts ...interfaces.ListAuditOption) ([]*model.Audit, error) {
	cfg := interfaces.BuildListAuditConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	audits := make([]*model.Audit, 0, len(r.audits))
	for _, audit := range r.audits {
		if !cfg.MatchStatus(audit.Status) {
			continue
		}
		audits = append(audits, audit.Copy())
	}

	slices.SortFunc(audits, func(a, b *model.Audit) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(string(a.ID), string(b.ID))
	})

	return audits, nil
}

func (r *auditRepository) Put(ctx context.Context, audit *model.Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.audits[audit.ID] = audit.Copy()
	return nil
}
