package postgres

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type questionRepository struct {
	pool *pgxpool.Pool
}

const selectQuestionColumns = `
	SELECT id, question_number, category, subcategory, question_text, question_type,
	       applicable_tiers, weight, is_critical, is_active,
	       COALESCE(motivation_learning_point, ''), created_at, updated_at
	FROM question_templates`

func scanQuestion(row pgx.Row) (int64, *model.Question, error) {
	var (
		id    int64
		q     model.Question
		qType string
		tiers []string
	)
	if err := row.Scan(&id, &q.Number, &q.Category, &q.Subcategory, &q.Text, &qType,
		&tiers, &q.Weight, &q.Critical, &q.Active, &q.LearningPoint, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return 0, nil, err
	}

	q.Type = types.QuestionType(qType)
	for _, t := range tiers {
		q.Tiers = append(q.Tiers, types.Tier(t))
	}
	return id, &q, nil
}

// loadDetails fills options and guidance for the questions keyed by row id
func (r *questionRepository) loadDetails(ctx context.Context, byID map[int64]*model.Question) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT question_id, option_text, score_value, option_order, is_example
		FROM question_answer_options
		WHERE question_id = ANY($1)
		ORDER BY question_id, option_order`, ids)
	if err != nil {
		return goerr.Wrap(err, "failed to query answer options")
	}
	for rows.Next() {
		var qid int64
		var opt model.AnswerOption
		if err := rows.Scan(&qid, &opt.Text, &opt.Score, &opt.Order, &opt.Example); err != nil {
			rows.Close()
			return goerr.Wrap(err, "failed to scan answer option")
		}
		q := byID[qid]
		q.Options = append(q.Options, opt)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return goerr.Wrap(err, "failed to iterate answer options")
	}

	rows, err = r.pool.Query(ctx, `
		SELECT question_id, score_level, COALESCE(reason_text, ''), COALESCE(report_action, '')
		FROM question_score_examples
		WHERE question_id = ANY($1)`, ids)
	if err != nil {
		return goerr.Wrap(err, "failed to query score examples")
	}
	defer rows.Close()
	for rows.Next() {
		var qid int64
		var level string
		var g model.Guidance
		if err := rows.Scan(&qid, &level, &g.Reason, &g.Action); err != nil {
			return goerr.Wrap(err, "failed to scan score example")
		}
		q := byID[qid]
		if q.Guidance == nil {
			q.Guidance = make(map[types.ScoreLevel]model.Guidance)
		}
		q.Guidance[types.ScoreLevel(level)] = g
	}
	if err := rows.Err(); err != nil {
		return goerr.Wrap(err, "failed to iterate score examples")
	}

	return nil
}

func (r *questionRepository) Get(ctx context.Context, number string) (*model.Question, error) {
	id, q, err := scanQuestion(r.pool.QueryRow(ctx, selectQuestionColumns+` WHERE question_number = $1`, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "question not found", goerr.V(model.QuestionNumberKey, number))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get question", goerr.V(model.QuestionNumberKey, number))
	}

	if err := r.loadDetails(ctx, map[int64]*model.Question{id: q}); err != nil {
		return nil, goerr.Wrap(err, "failed to load question details", goerr.V(model.QuestionNumberKey, number))
	}
	return q, nil
}

func (r *questionRepository) List(ctx context.Context, opts ...interfaces.ListQuestionOption) ([]*model.Question, error) {
	cfg := interfaces.BuildListQuestionConfig(opts...)

	query := selectQuestionColumns + ` WHERE ($1 = false OR is_active) AND ($2 = '' OR $2 = ANY(applicable_tiers))`
	var tier string
	if t := cfg.Tier(); t != nil {
		tier = string(*t)
	}

	rows, err := r.pool.Query(ctx, query, cfg.ActiveOnly(), tier)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query questions")
	}

	byID := make(map[int64]*model.Question)
	var questions []*model.Question
	for rows.Next() {
		id, q, err := scanQuestion(rows)
		if err != nil {
			rows.Close()
			return nil, goerr.Wrap(err, "failed to scan question")
		}
		byID[id] = q
		questions = append(questions, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate questions")
	}

	if err := r.loadDetails(ctx, byID); err != nil {
		return nil, err
	}

	slices.SortFunc(questions, func(a, b *model.Question) int {
		return model.CompareQuestionNumbers(a.Number, b.Number)
	})
	return questions, nil
}

func (r *questionRepository) Put(ctx context.Context, q *model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tiers := make([]string, 0, len(q.Tiers))
	for _, t := range q.Tiers {
		tiers = append(tiers, string(t))
	}

	now := time.Now().UTC()
	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO question_templates (question_number, category, subcategory, question_text, question_type,
			applicable_tiers, weight, is_critical, is_active, motivation_learning_point, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (question_number) DO UPDATE SET
			category = EXCLUDED.category,
			subcategory = EXCLUDED.subcategory,
			question_text = EXCLUDED.question_text,
			question_type = EXCLUDED.question_type,
			applicable_tiers = EXCLUDED.applicable_tiers,
			weight = EXCLUDED.weight,
			is_critical = EXCLUDED.is_critical,
			is_active = EXCLUDED.is_active,
			motivation_learning_point = EXCLUDED.motivation_learning_point,
			updated_at = EXCLUDED.updated_at
		RETURNING id`,
		q.Number, q.Category, q.Subcategory, q.Text, string(q.Type),
		tiers, q.Weight, q.Critical, q.Active, q.LearningPoint, now,
	).Scan(&id)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert question", goerr.V(model.QuestionNumberKey, q.Number))
	}

	if _, err := tx.Exec(ctx, `DELETE FROM question_answer_options WHERE question_id = $1`, id); err != nil {
		return goerr.Wrap(err, "failed to clear answer options", goerr.V(model.QuestionNumberKey, q.Number))
	}
	for _, opt := range q.Options {
		if _, err := tx.Exec(ctx, `
			INSERT INTO question_answer_options (question_id, option_text, score_value, option_order, is_example)
			VALUES ($1, $2, $3, $4, $5)`, id, opt.Text, opt.Score, opt.Order, opt.Example); err != nil {
			return goerr.Wrap(err, "failed to insert answer option",
				goerr.V(model.QuestionNumberKey, q.Number), goerr.V(model.OptionTextKey, opt.Text))
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM question_score_examples WHERE question_id = $1`, id); err != nil {
		return goerr.Wrap(err, "failed to clear score examples", goerr.V(model.QuestionNumberKey, q.Number))
	}
	for level, g := range q.Guidance {
		if _, err := tx.Exec(ctx, `
			INSERT INTO question_score_examples (question_id, score_level, reason_text, report_action)
			VALUES ($1, $2, $3, $4)`, id, string(level), g.Reason, g.Action); err != nil {
			return goerr.Wrap(err, "failed to insert score example",
				goerr.V(model.QuestionNumberKey, q.Number), goerr.V("score_level", level))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return goerr.Wrap(err, "failed to commit question", goerr.V(model.QuestionNumberKey, q.Number))
	}
	return nil
}

func (r *questionRepository) Deactivate(ctx context.Context, number string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE question_templates SET is_active = false, updated_at = $2
		WHERE question_number = $1`, number, time.Now().UTC())
	if err != nil {
		return goerr.Wrap(err, "failed to deactivate question", goerr.V(model.QuestionNumberKey, number))
	}
	if tag.RowsAffected() == 0 {
		return goerr.Wrap(interfaces.ErrNotFound, "question not found", goerr.V(model.QuestionNumberKey, number))
	}
	return nil
}
