package usecase

import (
	"slices"
	"strings"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model/config"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"
)

// ScoringEngine converts the raw answers of one audit into scores, a risk
// classification and recommendations. It holds no mutable state and is
// safe for concurrent use.
type ScoringEngine struct {
	cfg        config.ScoringConfig
	categories []config.Category
}

// NewScoringEngine creates an engine for the catalog thresholds and category declarations
func NewScoringEngine(catalog *config.CatalogConfig) *ScoringEngine {
	e := &ScoringEngine{cfg: config.DefaultScoringConfig()}
	if catalog != nil {
		e.cfg = catalog.Scoring
		e.categories = append([]config.Category(nil), catalog.Categories...)
	}
	return e
}

// Config returns the scoring thresholds of the engine
func (e *ScoringEngine) Config() config.ScoringConfig {
	return e.cfg
}

// ClassifyScore bands an aggregate score on the 0-10 scale
func (e *ScoringEngine) ClassifyScore(score float64) types.Color {
	return e.classify(decimal.NewFromFloat(score))
}

func (e *ScoringEngine) classify(score decimal.Decimal) types.Color {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromFloat(e.cfg.GreenThreshold)):
		return types.ColorGreen
	case score.GreaterThanOrEqual(decimal.NewFromFloat(e.cfg.OrangeThreshold)):
		return types.ColorOrange
	default:
		return types.ColorRed
	}
}

// QuestionColor bands a raw option score on the 1-10 scale
func (e *ScoringEngine) QuestionColor(score int) types.Color {
	switch {
	case score <= e.cfg.QuestionRedMax:
		return types.ColorRed
	case score <= e.cfg.QuestionOrangeMax:
		return types.ColorOrange
	default:
		return types.ColorGreen
	}
}

// RiskLabel returns the human label of an aggregate color
func (e *ScoringEngine) RiskLabel(c types.Color) string {
	switch c {
	case types.ColorGreen:
		return e.cfg.LowRiskLabel
	case types.ColorOrange:
		return e.cfg.MediumRiskLabel
	default:
		return e.cfg.HighRiskLabel
	}
}

// CategoryKey returns the declared category ID, or a slug of the name
func (e *ScoringEngine) CategoryKey(name string) string {
	for _, c := range e.categories {
		if c.Name == name {
			return c.ID
		}
	}
	return types.CategoryIDFromName(name).String()
}

// compareCategories orders declared categories first in declaration
// order, then undeclared categories by name.
func (e *ScoringEngine) compareCategories(a, b string) int {
	ai, bi := e.categoryIndex(a), e.categoryIndex(b)
	switch {
	case ai >= 0 && bi >= 0:
		return ai - bi
	case ai >= 0:
		return -1
	case bi >= 0:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func (e *ScoringEngine) categoryIndex(name string) int {
	for i, c := range e.categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

type subcategoryKey struct {
	category    string
	subcategory string
}

type accumulator struct {
	sum       decimal.Decimal
	weightSum decimal.Decimal
	count     int
}

func (a *accumulator) add(score, weight decimal.Decimal) {
	a.sum = a.sum.Add(score.Mul(weight))
	a.weightSum = a.weightSum.Add(weight)
	a.count++
}

func (a *accumulator) mean() (decimal.Decimal, bool) {
	if a.weightSum.IsZero() {
		return decimal.Zero, false
	}
	return a.sum.Div(a.weightSum).Round(1), true
}

// ComputeScores scores the responses against the question set.
//
// Responses for questions outside the set are ignored. A question answered
// more than once fails with ErrDuplicateResponse. When some questions
// have no response, the partial result over the answered questions is
// returned together with an error wrapping ErrMissingResponse; it must not
// be published.
func (e *ScoringEngine) ComputeScores(responses []*model.Response, questions []*model.Question) (*model.ScoreResult, error) {
	if len(questions) == 0 {
		return nil, goerr.Wrap(ErrEmptyAggregate, "no questions to score")
	}

	answers := make(map[string]*model.Response, len(responses))
	for _, r := range responses {
		if r == nil {
			continue
		}
		if prev, ok := answers[r.QuestionNumber]; ok {
			return nil, goerr.Wrap(ErrDuplicateResponse, "question answered more than once",
				goerr.V(QuestionNumberKey, r.QuestionNumber),
				goerr.V(AnswerKey, []string{prev.Answer, r.Answer}))
		}
		answers[r.QuestionNumber] = r
	}

	result := &model.ScoreResult{}
	var (
		overall        accumulator
		subOrder       []subcategoryKey
		subAcc         = make(map[subcategoryKey]*accumulator)
		catOrder       []string
		catAcc         = make(map[string]*accumulator)
		criticalFailed = make(map[subcategoryKey][]string)
	)

	for _, q := range questions {
		key := subcategoryKey{category: q.Category, subcategory: q.Subcategory}

		resp, ok := answers[q.Number]
		if !ok || strings.TrimSpace(resp.Answer) == "" {
			result.MissingQuestions = append(result.MissingQuestions, q.Number)
			if q.Critical {
				criticalFailed[key] = append(criticalFailed[key], q.Number)
			}
			continue
		}

		opt, found := q.MatchOption(resp.Answer)
		if !found {
			return nil, goerr.Wrap(ErrInvalidAnswerValue, "answer does not match any option",
				goerr.V(QuestionNumberKey, q.Number), goerr.V(AnswerKey, resp.Answer))
		}

		result.QuestionScores = append(result.QuestionScores, model.QuestionScore{
			Number:      q.Number,
			Category:    q.Category,
			Subcategory: q.Subcategory,
			Answer:      opt.Text,
			Score:       opt.Score,
			Weight:      q.Weight,
			Critical:    q.Critical,
			Color:       e.QuestionColor(opt.Score),
		})

		if q.Critical && opt.Score <= e.cfg.CriticalFailMax {
			criticalFailed[key] = append(criticalFailed[key], q.Number)
		}

		score := decimal.NewFromInt(int64(opt.Score))
		weight := decimal.NewFromFloat(q.Weight)

		overall.add(score, weight)

		if _, ok := subAcc[key]; !ok {
			subAcc[key] = &accumulator{}
			subOrder = append(subOrder, key)
		}
		// subcategory scores are an unweighted mean
		subAcc[key].add(score, decimal.NewFromInt(1))

		if _, ok := catAcc[q.Category]; !ok {
			catAcc[q.Category] = &accumulator{}
			catOrder = append(catOrder, q.Category)
		}
		catAcc[q.Category].add(score, weight)
	}

	if len(result.QuestionScores) == 0 {
		return nil, goerr.Wrap(ErrMissingResponse, "no question of the set was answered",
			goerr.V(MissingQuestionsKey, result.MissingQuestions))
	}

	for _, key := range subOrder {
		mean, ok := subAcc[key].mean()
		if !ok {
			continue
		}
		score := mean.InexactFloat64()
		result.SubcategoryScores = append(result.SubcategoryScores, model.SubcategoryScore{
			Category:       key.category,
			Subcategory:    key.subcategory,
			Score:          score,
			Color:          e.classify(mean),
			QuestionsCount: subAcc[key].count,
		})
	}

	slices.SortStableFunc(catOrder, e.compareCategories)
	for _, name := range catOrder {
		mean, ok := catAcc[name].mean()
		if !ok {
			continue
		}
		color := e.classify(mean)
		result.CategoryScores = append(result.CategoryScores, model.CategoryScore{
			Key:            e.CategoryKey(name),
			Category:       name,
			Score:          mean.InexactFloat64(),
			MaxScore:       model.MaxOptionScore,
			Percentage:     mean.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(model.MaxOptionScore)).Round(1).InexactFloat64(),
			Color:          color,
			RiskLevel:      color.RiskLevel(),
			QuestionsCount: catAcc[name].count,
		})
	}

	overallMean, _ := overall.mean()
	result.OverallScore = overallMean.InexactFloat64()
	result.RiskTier = e.classify(overallMean)
	result.RiskLevel = result.RiskTier.RiskLevel()
	result.RiskLabel = e.RiskLabel(result.RiskTier)

	result.Recommendations = e.recommend(result, questions, criticalFailed)

	if len(result.MissingQuestions) > 0 {
		return result, goerr.Wrap(ErrMissingResponse, "questions without response",
			goerr.V(MissingQuestionsKey, result.MissingQuestions))
	}

	return result, nil
}
