package postgres

import (
	"context"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type responseRepository struct {
	pool *pgxpool.Pool
}

func (r *responseRepository) List(ctx context.Context, auditID model.AuditID) ([]*model.Response, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT q.question_number, fr.answer_value, COALESCE(fr.comment, ''), fr.created_at
		FROM form_responses fr
		JOIN question_templates q ON q.id = fr.question_id
		WHERE fr.audit_id = $1`, auditID.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query responses", goerr.V(model.AuditIDKey, auditID))
	}
	defer rows.Close()

	var responses []*model.Response
	for rows.Next() {
		resp := &model.Response{AuditID: auditID}
		if err := rows.Scan(&resp.QuestionNumber, &resp.Answer, &resp.Comment, &resp.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan response", goerr.V(model.AuditIDKey, auditID))
		}
		resp.CreatedAt = resp.CreatedAt.UTC()
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate responses", goerr.V(model.AuditIDKey, auditID))
	}

	slices.SortFunc(responses, func(a, b *model.Response) int {
		return model.CompareQuestionNumbers(a.QuestionNumber, b.QuestionNumber)
	})
	return responses, nil
}

func (r *responseRepository) Put(ctx context.Context, auditID model.AuditID, responses []*model.Response) error {
	if len(responses) == 0 {
		return nil
	}

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, resp := range responses {
		createdAt := resp.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		batch.Queue(`
			INSERT INTO form_responses (audit_id, question_id, answer_value, comment, created_at)
			SELECT $1, id, $3, $4, $5 FROM question_templates WHERE question_number = $2
			ON CONFLICT (audit_id, question_id) DO UPDATE SET
				answer_value = EXCLUDED.answer_value,
				comment = EXCLUDED.comment`,
			auditID.String(), resp.QuestionNumber, resp.Answer, resp.Comment, createdAt)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for _, resp := range responses {
		tag, err := br.Exec()
		if err != nil {
			return goerr.Wrap(err, "failed to upsert response",
				goerr.V(model.AuditIDKey, auditID), goerr.V(model.QuestionNumberKey, resp.QuestionNumber))
		}
		if tag.RowsAffected() == 0 {
			return goerr.New("response references unknown question",
				goerr.V(model.AuditIDKey, auditID), goerr.V(model.QuestionNumberKey, resp.QuestionNumber))
		}
	}

	return nil
}
