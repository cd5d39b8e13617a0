package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func newTestQuestion(number string, tiers ...types.Tier) *model.Question {
	return &model.Question{
		Number:        number,
		Category:      "Documentation",
		Subcategory:   "Tenancy Agreements",
		Text:          "Question " + number,
		Type:          types.QuestionTypeYesNo,
		Tiers:         tiers,
		Weight:        1.5,
		Critical:      true,
		Active:        true,
		LearningPoint: "Keep signed copies",
		Options:       model.DefaultYesNoOptions(),
		Guidance: map[types.ScoreLevel]model.Guidance{
			types.ScoreLevelLow:  {Reason: "No agreement", Action: "Issue a written agreement"},
			types.ScoreLevelHigh: {Reason: "Agreement in place", Action: "Review annually"},
		},
	}
}

func runQuestionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		q := newTestQuestion("1.1", types.Tier1, types.Tier2)
		gt.NoError(t, repo.Question().Put(ctx, q)).Required()

		got, err := repo.Question().Get(ctx, "1.1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Number).Equal("1.1")
		gt.Value(t, got.Category).Equal(q.Category)
		gt.Value(t, got.Subcategory).Equal(q.Subcategory)
		gt.Value(t, got.Type).Equal(types.QuestionTypeYesNo)
		gt.Value(t, got.Tiers).Equal(q.Tiers)
		gt.Value(t, got.Weight).Equal(1.5)
		gt.Bool(t, got.Critical).True()
		gt.Bool(t, got.Active).True()
		gt.Value(t, got.LearningPoint).Equal("Keep signed copies")
		gt.Array(t, got.Options).Length(2)
		gt.Value(t, got.Options[0]).Equal(model.AnswerOption{Text: "Yes", Score: 10, Order: 1})
		gt.Value(t, got.GuidanceFor(types.ScoreLevelLow).Action).Equal("Issue a written agreement")
		gt.Bool(t, got.CreatedAt.IsZero()).False()
		gt.Bool(t, got.UpdatedAt.IsZero()).False()
	})

	t.Run("Put replaces an existing question", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		q := newTestQuestion("2.1", types.Tier1)
		gt.NoError(t, repo.Question().Put(ctx, q)).Required()

		q.Text = "Updated text"
		q.Options = []model.AnswerOption{
			{Text: "Always", Score: 10, Order: 1},
			{Text: "Sometimes", Score: 5, Order: 2},
			{Text: "Never", Score: 1, Order: 3},
		}
		q.Type = types.QuestionTypeMultipleChoice
		gt.NoError(t, repo.Question().Put(ctx, q)).Required()

		got, err := repo.Question().Get(ctx, "2.1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Text).Equal("Updated text")
		gt.Array(t, got.Options).Length(3)

		all, err := repo.Question().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(1)
	})

	t.Run("Get returns ErrNotFound for unknown number", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Question().Get(context.Background(), "99.99")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("List filters by tier and active flag in natural number order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, q := range []*model.Question{
			newTestQuestion("1.10", types.Tier2),
			newTestQuestion("1.2", types.Tier2, types.Tier3),
			newTestQuestion("1.1", types.Tier1),
			newTestQuestion("3.1", types.Tier2),
		} {
			gt.NoError(t, repo.Question().Put(ctx, q)).Required()
		}
		gt.NoError(t, repo.Question().Deactivate(ctx, "3.1")).Required()

		all, err := repo.Question().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(4)
		gt.Value(t, all[0].Number).Equal("1.1")
		gt.Value(t, all[1].Number).Equal("1.2")
		gt.Value(t, all[2].Number).Equal("1.10")
		gt.Value(t, all[3].Number).Equal("3.1")

		tier2, err := repo.Question().List(ctx, interfaces.WithTier(types.Tier2))
		gt.NoError(t, err).Required()
		gt.Array(t, tier2).Length(3)

		activeTier2, err := repo.Question().List(ctx, interfaces.WithTier(types.Tier2), interfaces.WithActiveOnly())
		gt.NoError(t, err).Required()
		gt.Array(t, activeTier2).Length(2)
		gt.Value(t, activeTier2[0].Number).Equal("1.2")
		gt.Value(t, activeTier2[1].Number).Equal("1.10")

		active, err := repo.Question().List(ctx, interfaces.WithActiveOnly())
		gt.NoError(t, err).Required()
		gt.Array(t, active).Length(3)
	})

	t.Run("Deactivate keeps the question", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Question().Put(ctx, newTestQuestion("4.1", types.Tier0))).Required()
		gt.NoError(t, repo.Question().Deactivate(ctx, "4.1")).Required()

		got, err := repo.Question().Get(ctx, "4.1")
		gt.NoError(t, err).Required()
		gt.Bool(t, got.Active).False()
	})

	t.Run("Deactivate returns ErrNotFound for unknown number", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Question().Deactivate(context.Background(), "5.5")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("returned question is a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Question().Put(ctx, newTestQuestion("6.1", types.Tier1))).Required()

		got, err := repo.Question().Get(ctx, "6.1")
		gt.NoError(t, err).Required()
		got.Options[0].Score = 3

		again, err := repo.Question().Get(ctx, "6.1")
		gt.NoError(t, err).Required()
		gt.Value(t, again.Options[0].Score).Equal(10)
	})
}

func TestMemoryQuestionRepository(t *testing.T) {
	runQuestionRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreQuestionRepository(t *testing.T) {
	runQuestionRepositoryTest(t, newFirestoreRepository)
}

func TestPostgresQuestionRepository(t *testing.T) {
	runQuestionRepositoryTest(t, newPostgresRepository)
}
