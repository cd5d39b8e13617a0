package usecase_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model/config"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/landlordsafeguarding/riskaudit/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

// question builds a multiple choice question with options "Level 1" to
// "Level 10" scored 1 to 10. Numeric answers match by score.
func question(number, category, subcategory string, weight float64) *model.Question {
	q := &model.Question{
		Number:      number,
		Category:    category,
		Subcategory: subcategory,
		Text:        "Question " + number,
		Type:        types.QuestionTypeMultipleChoice,
		Tiers:       []types.Tier{types.Tier2},
		Weight:      weight,
		Active:      true,
		Guidance: map[types.ScoreLevel]model.Guidance{
			types.ScoreLevelLow:    {Reason: number + " low reason", Action: number + " low action"},
			types.ScoreLevelMedium: {Reason: number + " medium reason", Action: number + " medium action"},
			types.ScoreLevelHigh:   {Reason: number + " high reason", Action: number + " high action"},
		},
	}
	for i := 1; i <= 10; i++ {
		q.Options = append(q.Options, model.AnswerOption{
			Text:  "Level " + strconv.Itoa(i),
			Score: i,
			Order: i,
		})
	}
	return q
}

func critical(q *model.Question) *model.Question {
	q.Critical = true
	return q
}

func answer(number string, score int) *model.Response {
	return &model.Response{QuestionNumber: number, Answer: strconv.Itoa(score)}
}

func catalogConfig(categories ...config.Category) *config.CatalogConfig {
	return &config.CatalogConfig{
		Scoring:    config.DefaultScoringConfig(),
		Categories: categories,
	}
}

var (
	safety        = config.Category{ID: "safety", Name: "Safety"}
	documentation = config.Category{ID: "documentation", Name: "Documentation"}
)

var generatedAt = time.Date(2025, 3, 20, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return generatedAt
}

// seedAudit stores questions, an audit at tier_2 and its responses in a memory repository
func seedAudit(t *testing.T, repo *memory.Memory, status types.AuditStatus, questions []*model.Question, responses []*model.Response) *model.Audit {
	t.Helper()
	ctx := context.Background()

	for _, q := range questions {
		gt.NoError(t, repo.Question().Put(ctx, q)).Required()
	}

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	audit, err := model.NewAudit(types.Tier2, "12 Acacia Avenue, Leeds LS1 2AB", "Jane Landlord", "Sam Auditor", created)
	gt.NoError(t, err).Required()

	switch status {
	case types.AuditStatusSubmitted:
		gt.NoError(t, audit.Submit(created.Add(13*24*time.Hour))).Required()
	case types.AuditStatusCompleted:
		gt.NoError(t, audit.Submit(created.Add(13*24*time.Hour))).Required()
		gt.NoError(t, audit.Complete(created.Add(14*24*time.Hour))).Required()
	}
	gt.NoError(t, repo.Audit().Put(ctx, audit)).Required()
	gt.NoError(t, repo.Response().Put(ctx, audit.ID, responses)).Required()

	return audit
}
