package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/landlordsafeguarding/riskaudit/pkg/repository/memory"
	"github.com/landlordsafeguarding/riskaudit/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func numbers(questions []*model.Question) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.Number)
	}
	return out
}

func seedCatalog(t *testing.T) (*usecase.UseCases, *memory.Memory) {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()

	tier3Only := question("3.1", "Licensing", "HMO", 1.0)
	tier3Only.Tiers = []types.Tier{types.Tier3}

	inactive := question("2.3", "Safety", "Gas", 1.0)
	inactive.Active = false

	for _, q := range []*model.Question{
		question("1.10", "Documentation", "Agreements", 1.0),
		question("1.2", "Documentation", "Agreements", 1.0),
		question("2.1", "Safety", "Gas", 1.0),
		tier3Only,
		inactive,
	} {
		gt.NoError(t, repo.Question().Put(ctx, q)).Required()
	}

	return usecase.New(repo, usecase.WithCatalogConfig(catalogConfig(safety, documentation))), repo
}

func TestQuestionsForTier(t *testing.T) {
	ctx := context.Background()
	uc, _ := seedCatalog(t)

	t.Run("active questions in category then number order", func(t *testing.T) {
		questions, err := uc.Catalog.QuestionsForTier(ctx, types.Tier2)
		gt.NoError(t, err).Required()
		gt.Value(t, numbers(questions)).Equal([]string{"2.1", "1.2", "1.10"})
	})

	t.Run("tier without questions", func(t *testing.T) {
		questions, err := uc.Catalog.QuestionsForTier(ctx, types.Tier0)
		gt.NoError(t, err).Required()
		gt.Array(t, questions).Length(0)
	})

	t.Run("unknown tier", func(t *testing.T) {
		_, err := uc.Catalog.QuestionsForTier(ctx, types.Tier("tier_9"))
		gt.Bool(t, errors.Is(err, usecase.ErrUnknownTier)).True()
	})
}

func TestHistoricalQuestions(t *testing.T) {
	ctx := context.Background()
	uc, _ := seedCatalog(t)

	historical, err := uc.Catalog.HistoricalQuestions(ctx, types.Tier2, []string{"2.3", "2.1", "9.9"})
	gt.NoError(t, err).Required()
	gt.Value(t, numbers(historical)).Equal([]string{"2.3"})

	none, err := uc.Catalog.HistoricalQuestions(ctx, types.Tier2, nil)
	gt.NoError(t, err).Required()
	gt.Array(t, none).Length(0)
}

func TestQuestionsForAudit(t *testing.T) {
	ctx := context.Background()
	uc, _ := seedCatalog(t)

	questions, err := uc.Catalog.QuestionsForAudit(ctx, types.Tier2, []*model.Response{answer("2.3", 5)})
	gt.NoError(t, err).Required()
	gt.Value(t, numbers(questions)).Equal([]string{"2.1", "2.3", "1.2", "1.10"})
}

func TestEditQuestion(t *testing.T) {
	ctx := context.Background()
	uc, repo := seedCatalog(t)

	t.Run("valid edit", func(t *testing.T) {
		q := question("1.2", "Documentation", "Agreements", 1.5)
		q.Text = "Is there a signed tenancy agreement?"
		gt.NoError(t, uc.Catalog.EditQuestion(ctx, q)).Required()

		got, err := repo.Question().Get(ctx, "1.2")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Text).Equal("Is there a signed tenancy agreement?")
		gt.Value(t, got.Weight).Equal(1.5)
	})

	t.Run("weight out of range", func(t *testing.T) {
		q := question("1.2", "Documentation", "Agreements", 3.0)
		err := uc.Catalog.EditQuestion(ctx, q)
		gt.Bool(t, errors.Is(err, model.ErrInvalidQuestion)).True()
	})

	t.Run("nil question", func(t *testing.T) {
		err := uc.Catalog.EditQuestion(ctx, nil)
		gt.Bool(t, errors.Is(err, model.ErrInvalidQuestion)).True()
	})
}

func TestDeactivateQuestion(t *testing.T) {
	ctx := context.Background()
	uc, _ := seedCatalog(t)

	gt.NoError(t, uc.Catalog.DeactivateQuestion(ctx, "2.1")).Required()

	questions, err := uc.Catalog.QuestionsForTier(ctx, types.Tier2)
	gt.NoError(t, err).Required()
	gt.Value(t, numbers(questions)).Equal([]string{"1.2", "1.10"})

	err = uc.Catalog.DeactivateQuestion(ctx, "7.7")
	gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("all questions saved", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		n, err := uc.Catalog.Import(ctx, []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.0),
			question("1.2", "Documentation", "Agreements", 1.0),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(2)

		all, err := repo.Question().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2)
	})

	t.Run("duplicate number saves nothing", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.Catalog.Import(ctx, []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.0),
			question("1.1", "Documentation", "Deposits", 1.0),
		})
		gt.Bool(t, errors.Is(err, model.ErrInvalidQuestion)).True()

		all, err := repo.Question().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(0)
	})

	t.Run("invalid question saves nothing", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		bad := question("1.2", "Documentation", "Agreements", 1.0)
		bad.Options = bad.Options[:1]

		_, err := uc.Catalog.Import(ctx, []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.0),
			bad,
		})
		gt.Bool(t, errors.Is(err, model.ErrInvalidQuestion)).True()

		all, err := repo.Question().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(0)
	})
}
