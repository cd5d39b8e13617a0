package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type auditRepository struct {
	pool *pgxpool.Pool
}

const selectAuditColumns = `
	SELECT id, status, risk_audit_tier, COALESCE(property_address, ''), COALESCE(client_name, ''),
	       COALESCE(auditor_name, ''), created_at, submitted_at, completed_at, updated_at
	FROM audits`

func scanAudit(row pgx.Row) (*model.Audit, error) {
	var (
		a           model.Audit
		id          string
		status      string
		tier        string
		submittedAt *time.Time
		completedAt *time.Time
	)
	if err := row.Scan(&id, &status, &tier, &a.PropertyAddress, &a.ClientName, &a.AuditorName,
		&a.CreatedAt, &submittedAt, &completedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}

	a.ID = model.AuditID(id)
	a.Status = types.AuditStatus(status)
	a.Tier = types.Tier(tier)
	if submittedAt != nil {
		a.SubmittedAt = submittedAt.UTC()
	}
	if completedAt != nil {
		a.CompletedAt = completedAt.UTC()
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r *auditRepository) Get(ctx context.Context, id model.AuditID) (*model.Audit, error) {
	audit, err := scanAudit(r.pool.QueryRow(ctx, selectAuditColumns+` WHERE id = $1`, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "audit not found", goerr.V(model.AuditIDKey, id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get audit", goerr.V(model.AuditIDKey, id))
	}
	return audit, nil
}

func (r *auditRepository) List(ctx context.Context, opts ...interfaces.ListAuditOption) ([]*model.Audit, error) {
	cfg := interfaces.BuildListAuditConfig(opts...)

	statuses := make([]string, 0, len(cfg.Statuses()))
	for _, s := range cfg.Statuses() {
		statuses = append(statuses, string(s))
	}

	rows, err := r.pool.Query(ctx, selectAuditColumns+`
		WHERE cardinality($1::text[]) = 0 OR status = ANY($1)
		ORDER BY created_at, id`, statuses)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query audits")
	}
	defer rows.Close()

	var audits []*model.Audit
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan audit")
		}
		audits = append(audits, audit)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate audits")
	}

	return audits, nil
}

func (r *auditRepository) Put(ctx context.Context, audit *model.Audit) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audits (id, status, risk_audit_tier, property_address, client_name, auditor_name,
			created_at, submitted_at, completed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			risk_audit_tier = EXCLUDED.risk_audit_tier,
			property_address = EXCLUDED.property_address,
			client_name = EXCLUDED.client_name,
			auditor_name = EXCLUDED.auditor_name,
			submitted_at = EXCLUDED.submitted_at,
			completed_at = EXCLUDED.completed_at,
			updated_at = EXCLUDED.updated_at`,
		audit.ID.String(), string(audit.Status.Normalize()), string(audit.Tier),
		audit.PropertyAddress, audit.ClientName, audit.AuditorName,
		audit.CreatedAt, nullableTime(audit.SubmittedAt), nullableTime(audit.CompletedAt), audit.UpdatedAt,
	)
	if err != nil {
		return goerr.Wrap(err, "failed to put audit", goerr.V(model.AuditIDKey, audit.ID))
	}
	return nil
}
