package usecase_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/landlordsafeguarding/riskaudit/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestClassifyScore(t *testing.T) {
	engine := usecase.NewScoringEngine(catalogConfig())

	testCases := []struct {
		name  string
		score float64
		want  types.Color
	}{
		{name: "max score", score: 10.0, want: types.ColorGreen},
		{name: "green threshold", score: 7.5, want: types.ColorGreen},
		{name: "just below green", score: 7.49, want: types.ColorOrange},
		{name: "orange threshold", score: 4.0, want: types.ColorOrange},
		{name: "just below orange", score: 3.99, want: types.ColorRed},
		{name: "zero", score: 0, want: types.ColorRed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, engine.ClassifyScore(tc.score)).Equal(tc.want)
		})
	}
}

func TestQuestionColor(t *testing.T) {
	engine := usecase.NewScoringEngine(catalogConfig())

	testCases := []struct {
		score int
		want  types.Color
	}{
		{score: 1, want: types.ColorRed},
		{score: 3, want: types.ColorRed},
		{score: 4, want: types.ColorOrange},
		{score: 6, want: types.ColorOrange},
		{score: 7, want: types.ColorGreen},
		{score: 10, want: types.ColorGreen},
	}

	for _, tc := range testCases {
		gt.Value(t, engine.QuestionColor(tc.score)).Equal(tc.want)
	}
}

func TestRiskLabel(t *testing.T) {
	engine := usecase.NewScoringEngine(catalogConfig())

	gt.Value(t, engine.RiskLabel(types.ColorGreen)).Equal("Low Risk")
	gt.Value(t, engine.RiskLabel(types.ColorOrange)).Equal("Medium Risk")
	gt.Value(t, engine.RiskLabel(types.ColorRed)).Equal("High Risk")
}

func TestCategoryKey(t *testing.T) {
	engine := usecase.NewScoringEngine(catalogConfig(safety, documentation))

	gt.Value(t, engine.CategoryKey("Safety")).Equal("safety")
	gt.Value(t, engine.CategoryKey("Fire & Smoke Safety")).Equal("fire-smoke-safety")
	gt.Value(t, engine.CategoryKey("&&")).Equal("uncategorized")
}

func TestComputeScores(t *testing.T) {
	t.Run("all answers at maximum", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig(safety, documentation))
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.0),
			question("1.2", "Documentation", "Deposits", 1.0),
			question("2.1", "Safety", "Gas", 1.0),
			question("2.2", "Safety", "Electrical", 1.0),
		}
		responses := []*model.Response{
			answer("1.1", 10), answer("1.2", 10), answer("2.1", 10), answer("2.2", 10),
		}

		result, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()
		gt.Value(t, result.OverallScore).Equal(10.0)
		gt.Value(t, result.RiskTier).Equal(types.ColorGreen)
		gt.Value(t, result.RiskLevel).Equal(types.RiskLevelLow)
		gt.Value(t, result.RiskLabel).Equal("Low Risk")
		gt.Array(t, result.Recommendations).Length(0)
		gt.Array(t, result.MissingQuestions).Length(0)
		gt.Bool(t, result.IsComplete()).True()

		gt.Array(t, result.CategoryScores).Length(2).Required()
		gt.Value(t, result.CategoryScores[0].Key).Equal("safety")
		gt.Value(t, result.CategoryScores[1].Key).Equal("documentation")
		gt.Value(t, result.CategoryScores[0].Percentage).Equal(100.0)
		gt.Value(t, result.CategoryScores[0].MaxScore).Equal(10.0)
	})

	t.Run("tier audit with one unanswered question", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 2.0),
			question("1.2", "Documentation", "Agreements", 1.0),
			question("1.3", "Documentation", "Agreements", 1.0),
			question("1.4", "Documentation", "Agreements", 1.0),
			question("1.5", "Documentation", "Agreements", 1.0),
			question("2.1", "Safety", "Gas", 1.0),
			question("2.2", "Safety", "Gas", 1.0),
			question("2.3", "Safety", "Gas", 1.0),
			question("2.4", "Safety", "Gas", 1.0),
			question("2.5", "Safety", "Gas", 1.0),
		}
		responses := []*model.Response{
			answer("1.1", 10), answer("1.2", 10), answer("1.3", 5), answer("1.4", 5), answer("1.5", 5),
			answer("2.1", 5), answer("2.2", 5), answer("2.3", 5), answer("2.4", 5),
		}

		result, err := engine.ComputeScores(responses, questions)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingResponse)).True()
		gt.Value(t, result).NotNil()
		gt.Value(t, result.OverallScore).Equal(6.5)
		gt.Value(t, result.RiskTier).Equal(types.ColorOrange)
		gt.Value(t, result.RiskLabel).Equal("Medium Risk")
		gt.Value(t, result.MissingQuestions).Equal([]string{"2.5"})
		gt.Bool(t, result.IsComplete()).False()
	})

	t.Run("unanswered questions are not scored as zero", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.0),
			question("1.2", "Documentation", "Agreements", 1.0),
		}

		result, err := engine.ComputeScores([]*model.Response{answer("1.1", 10)}, questions)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingResponse)).True()
		gt.Value(t, result.OverallScore).Equal(10.0)
	})

	t.Run("blank answer counts as missing", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.0),
			question("1.2", "Documentation", "Agreements", 1.0),
		}
		responses := []*model.Response{
			answer("1.1", 7),
			{QuestionNumber: "1.2", Answer: "   "},
		}

		result, err := engine.ComputeScores(responses, questions)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingResponse)).True()
		gt.Value(t, result.MissingQuestions).Equal([]string{"1.2"})
	})

	t.Run("nothing answered", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{question("1.1", "Documentation", "Agreements", 1.0)}

		result, err := engine.ComputeScores(nil, questions)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingResponse)).True()
		gt.Value(t, result).Nil()
	})

	t.Run("empty question set", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())

		result, err := engine.ComputeScores([]*model.Response{answer("1.1", 10)}, nil)
		gt.Bool(t, errors.Is(err, usecase.ErrEmptyAggregate)).True()
		gt.Value(t, result).Nil()
	})

	t.Run("answer outside the options", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{question("1.1", "Documentation", "Agreements", 1.0)}

		result, err := engine.ComputeScores([]*model.Response{{QuestionNumber: "1.1", Answer: "Maybe"}}, questions)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidAnswerValue)).True()
		gt.Value(t, result).Nil()
	})

	t.Run("question answered twice", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.0),
			question("1.2", "Documentation", "Deposits", 1.0),
		}
		responses := []*model.Response{answer("1.1", 10), answer("1.2", 8), answer("1.1", 2)}

		result, err := engine.ComputeScores(responses, questions)
		gt.Bool(t, errors.Is(err, usecase.ErrDuplicateResponse)).True()
		gt.Value(t, result).Nil()
		gt.Value(t, goerr.Unwrap(err).Values()[usecase.QuestionNumberKey]).Equal("1.1")
	})

	t.Run("answer matched by option text", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{question("1.1", "Documentation", "Agreements", 1.0)}

		result, err := engine.ComputeScores([]*model.Response{{QuestionNumber: "1.1", Answer: "  level 7 "}}, questions)
		gt.NoError(t, err).Required()
		qs, ok := result.QuestionScore("1.1")
		gt.Bool(t, ok).True()
		gt.Value(t, qs.Score).Equal(7)
		gt.Value(t, qs.Answer).Equal("Level 7")
		gt.Value(t, qs.Color).Equal(types.ColorGreen)
	})

	t.Run("responses outside the question set are ignored", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{question("1.1", "Documentation", "Agreements", 1.0)}
		responses := []*model.Response{answer("1.1", 10), answer("9.9", 1)}

		result, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()
		gt.Value(t, result.OverallScore).Equal(10.0)
		gt.Array(t, result.QuestionScores).Length(1)
	})

	t.Run("subcategory mean is unweighted and category mean is weighted", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 2.0),
			question("1.2", "Documentation", "Agreements", 0.5),
		}
		responses := []*model.Response{answer("1.1", 10), answer("1.2", 1)}

		result, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()

		gt.Array(t, result.SubcategoryScores).Length(1).Required()
		gt.Value(t, result.SubcategoryScores[0].Score).Equal(5.5)
		gt.Value(t, result.SubcategoryScores[0].Color).Equal(types.ColorOrange)
		gt.Value(t, result.SubcategoryScores[0].QuestionsCount).Equal(2)

		gt.Array(t, result.CategoryScores).Length(1).Required()
		gt.Value(t, result.CategoryScores[0].Score).Equal(8.2)
		gt.Value(t, result.CategoryScores[0].Percentage).Equal(82.0)
		gt.Value(t, result.CategoryScores[0].Color).Equal(types.ColorGreen)
		gt.Value(t, result.OverallScore).Equal(8.2)
	})

	t.Run("scores are rounded half away from zero", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 0.5),
			question("1.2", "Documentation", "Agreements", 1.5),
		}
		responses := []*model.Response{answer("1.1", 1), answer("1.2", 10)}

		result, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()
		gt.Value(t, result.OverallScore).Equal(7.8)
	})

	t.Run("overall color uses the rounded score", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 0.97),
			question("1.2", "Documentation", "Agreements", 1.0),
		}
		responses := []*model.Response{answer("1.1", 10), answer("1.2", 5)}

		result, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()
		gt.Value(t, result.OverallScore).Equal(7.5)
		gt.Value(t, result.RiskTier).Equal(types.ColorGreen)
	})

	t.Run("undeclared categories follow declared ones by name", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig(safety))
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.0),
			question("2.1", "Safety", "Gas", 1.0),
			question("3.1", "Fire & Smoke Safety", "Alarms", 1.0),
		}
		responses := []*model.Response{answer("1.1", 10), answer("2.1", 10), answer("3.1", 10)}

		result, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()
		gt.Array(t, result.CategoryScores).Length(3).Required()
		gt.Value(t, result.CategoryScores[0].Key).Equal("safety")
		gt.Value(t, result.CategoryScores[1].Key).Equal("documentation")
		gt.Value(t, result.CategoryScores[2].Key).Equal("fire-smoke-safety")
	})

	t.Run("identical inputs give identical results", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig(safety, documentation))
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.5),
			question("1.2", "Documentation", "Deposits", 1.0),
			critical(question("2.1", "Safety", "Gas", 2.0)),
			question("2.2", "Safety", "Electrical", 0.5),
		}
		responses := []*model.Response{
			answer("1.1", 3), answer("1.2", 7), answer("2.1", 2), answer("2.2", 5),
		}

		first, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()
		second, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()
		gt.Value(t, first).Equal(second)

		a, err := json.Marshal(first)
		gt.NoError(t, err).Required()
		b, err := json.Marshal(second)
		gt.NoError(t, err).Required()
		gt.Value(t, string(a)).Equal(string(b))
	})
}

func TestRecommendations(t *testing.T) {
	t.Run("priority, color and impact", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig(safety, documentation))
		questions := []*model.Question{
			question("1.1", "Documentation", "Agreements", 1.0),
			question("1.2", "Documentation", "Deposits", 1.0),
			question("1.3", "Documentation", "Inventory", 1.0),
			question("2.1", "Safety", "Gas", 1.0),
			question("2.2", "Safety", "Electrical", 1.0),
		}
		responses := []*model.Response{
			answer("1.1", 5), answer("1.2", 7), answer("1.3", 10), answer("2.1", 3), answer("2.2", 5),
		}

		result, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()

		recs := result.Recommendations
		gt.Array(t, recs).Length(4).Required()

		gt.Value(t, recs[0].Subcategory).Equal("Gas")
		gt.Value(t, recs[0].Priority).Equal(1)
		gt.Value(t, recs[0].Color).Equal(types.ColorRed)
		gt.Value(t, recs[0].Impact).Equal(types.ImpactLegalExposure)
		gt.Value(t, recs[0].CategoryKey).Equal("safety")
		gt.Value(t, recs[0].Actions).Equal([]string{"2.1 low action"})

		// equal scores fall back to category declaration order
		gt.Value(t, recs[1].Subcategory).Equal("Electrical")
		gt.Value(t, recs[1].Priority).Equal(2)
		gt.Value(t, recs[1].Impact).Equal(types.ImpactTribunalRisk)

		gt.Value(t, recs[2].Subcategory).Equal("Agreements")
		gt.Value(t, recs[2].Priority).Equal(3)
		gt.Value(t, recs[2].Color).Equal(types.ColorOrange)
		gt.Value(t, recs[2].Impact).Equal(types.ImpactTribunalRisk)
		gt.Value(t, recs[2].Actions).Equal([]string{"1.1 medium action"})

		gt.Value(t, recs[3].Subcategory).Equal("Deposits")
		gt.Value(t, recs[3].Priority).Equal(4)
		gt.Value(t, recs[3].Score).Equal(7.0)
		gt.Value(t, recs[3].Impact).Equal(types.ImpactBestPractice)
	})

	t.Run("failing critical question overrides a green subcategory", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig(safety))
		questions := []*model.Question{
			critical(question("2.1", "Safety", "Gas", 1.0)),
			question("2.2", "Safety", "Gas", 1.0),
			question("2.3", "Safety", "Gas", 1.0),
			question("2.4", "Safety", "Gas", 1.0),
		}
		responses := []*model.Response{
			answer("2.1", 2), answer("2.2", 10), answer("2.3", 10), answer("2.4", 10),
		}

		result, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()

		gt.Array(t, result.SubcategoryScores).Length(1).Required()
		gt.Value(t, result.SubcategoryScores[0].Score).Equal(8.0)
		gt.Value(t, result.SubcategoryScores[0].Color).Equal(types.ColorGreen)

		gt.Array(t, result.Recommendations).Length(1).Required()
		rec := result.Recommendations[0]
		gt.Value(t, rec.Subcategory).Equal("Gas")
		gt.Bool(t, rec.Critical).True()
		gt.Value(t, rec.CriticalQuestions).Equal([]string{"2.1"})
		gt.Value(t, rec.Score).Equal(8.0)
		gt.Value(t, rec.Impact).Equal(types.ImpactLegalExposure)
		gt.Value(t, rec.Actions).Equal([]string{
			"2.1 low action",
			"2.2 high action",
			"2.3 high action",
			"2.4 high action",
		})
	})

	t.Run("critical question above the fail limit", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig(safety))
		questions := []*model.Question{
			critical(question("2.1", "Safety", "Gas", 1.0)),
			question("2.2", "Safety", "Gas", 1.0),
		}
		responses := []*model.Response{answer("2.1", 7), answer("2.2", 10)}

		result, err := engine.ComputeScores(responses, questions)
		gt.NoError(t, err).Required()
		gt.Array(t, result.Recommendations).Length(0)
	})

	t.Run("unanswered critical question", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig(safety))
		questions := []*model.Question{
			question("2.1", "Safety", "Gas", 1.0),
			critical(question("2.2", "Safety", "Fire", 1.0)),
		}

		result, err := engine.ComputeScores([]*model.Response{answer("2.1", 10)}, questions)
		gt.Bool(t, errors.Is(err, usecase.ErrMissingResponse)).True()
		gt.Value(t, result).NotNil()

		gt.Array(t, result.Recommendations).Length(1).Required()
		rec := result.Recommendations[0]
		gt.Value(t, rec.Subcategory).Equal("Fire")
		gt.Value(t, rec.Score).Equal(0.0)
		gt.Value(t, rec.Color).Equal(types.ColorRed)
		gt.Bool(t, rec.Critical).True()
		gt.Value(t, rec.Actions).Equal([]string{"2.2 low action"})
	})

	t.Run("actions are deduplicated and blanks skipped", func(t *testing.T) {
		engine := usecase.NewScoringEngine(catalogConfig())
		q1 := question("1.1", "Documentation", "Agreements", 1.0)
		q2 := question("1.2", "Documentation", "Agreements", 1.0)
		q3 := question("1.3", "Documentation", "Agreements", 1.0)
		q1.Guidance[types.ScoreLevelLow] = model.Guidance{Action: "Issue a written tenancy agreement"}
		q2.Guidance[types.ScoreLevelLow] = model.Guidance{Action: "Issue a written tenancy agreement "}
		q3.Guidance[types.ScoreLevelLow] = model.Guidance{Action: ""}

		responses := []*model.Response{answer("1.1", 5), answer("1.2", 3), answer("1.3", 1)}

		result, err := engine.ComputeScores(responses, []*model.Question{q1, q2, q3})
		gt.NoError(t, err).Required()
		gt.Array(t, result.Recommendations).Length(1).Required()
		gt.Value(t, result.Recommendations[0].Color).Equal(types.ColorRed)
		gt.Value(t, result.Recommendations[0].Actions).Equal([]string{"Issue a written tenancy agreement"})
	})
}
