package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// recommend builds one entry per orange/red subcategory plus one per
// subcategory holding a failing or unanswered critical question, then
// assigns global priorities.
func (e *ScoringEngine) recommend(result *model.ScoreResult, questions []*model.Question, criticalFailed map[subcategoryKey][]string) []model.Recommendation {
	subScores := make(map[subcategoryKey]model.SubcategoryScore, len(result.SubcategoryScores))
	for _, s := range result.SubcategoryScores {
		subScores[subcategoryKey{category: s.Category, subcategory: s.Subcategory}] = s
	}

	var keys []subcategoryKey
	seen := make(map[subcategoryKey]bool)
	for _, q := range questions {
		key := subcategoryKey{category: q.Category, subcategory: q.Subcategory}
		if seen[key] {
			continue
		}
		seen[key] = true

		s, scored := subScores[key]
		_, critical := criticalFailed[key]
		if critical || (scored && s.Color != types.ColorGreen) {
			keys = append(keys, key)
		}
	}

	recs := make([]model.Recommendation, 0, len(keys))
	for _, key := range keys {
		s, scored := subScores[key]
		criticalNumbers := criticalFailed[key]

		rec := model.Recommendation{
			Category:          key.category,
			CategoryKey:       e.CategoryKey(key.category),
			Subcategory:       key.subcategory,
			Score:             0,
			Color:             types.ColorRed,
			Critical:          len(criticalNumbers) > 0,
			CriticalQuestions: criticalNumbers,
		}
		if scored {
			rec.Score = s.Score
			rec.Color = s.Color
		}
		rec.Actions = e.suggestedActions(result, questions, key, rec.Color, criticalNumbers)
		rec.Impact = e.impact(rec)
		recs = append(recs, rec)
	}

	slices.SortStableFunc(recs, func(a, b model.Recommendation) int {
		if c := cmp.Compare(a.Score, b.Score); c != 0 {
			return c
		}
		if c := e.compareCategories(a.Category, b.Category); c != 0 {
			return c
		}
		return strings.Compare(a.Subcategory, b.Subcategory)
	})
	for i := range recs {
		recs[i].Priority = i + 1
	}

	return recs
}

// suggestedActions lists the guidance actions of a subcategory. Failing
// critical questions contribute the action of their own band first; the
// other questions follow by ascending score with the action of the
// subcategory band.
func (e *ScoringEngine) suggestedActions(result *model.ScoreResult, questions []*model.Question, key subcategoryKey, band types.Color, criticalNumbers []string) []string {
	var actions []string
	added := make(map[string]bool)
	appendAction := func(action string) {
		action = strings.TrimSpace(action)
		if action == "" || added[action] {
			return
		}
		added[action] = true
		actions = append(actions, action)
	}

	byNumber := make(map[string]*model.Question)
	var members []*model.Question
	for _, q := range questions {
		if q.Category == key.category && q.Subcategory == key.subcategory {
			byNumber[q.Number] = q
			members = append(members, q)
		}
	}

	isCritical := make(map[string]bool, len(criticalNumbers))
	for _, n := range criticalNumbers {
		isCritical[n] = true
		q := byNumber[n]
		if q == nil {
			continue
		}
		level := types.ScoreLevelLow
		if qs, ok := result.QuestionScore(n); ok {
			level = qs.Color.ScoreLevel()
		}
		appendAction(q.GuidanceFor(level).Action)
	}

	type scored struct {
		q     *model.Question
		score int
	}
	var rest []scored
	for _, q := range members {
		if isCritical[q.Number] {
			continue
		}
		qs, ok := result.QuestionScore(q.Number)
		if !ok {
			continue
		}
		rest = append(rest, scored{q: q, score: qs.Score})
	}
	slices.SortStableFunc(rest, func(a, b scored) int {
		if c := cmp.Compare(a.score, b.score); c != 0 {
			return c
		}
		return model.CompareQuestionNumbers(a.q.Number, b.q.Number)
	})

	level := band.ScoreLevel()
	for _, r := range rest {
		appendAction(r.q.GuidanceFor(level).Action)
	}

	return actions
}

func (e *ScoringEngine) impact(rec model.Recommendation) types.Impact {
	switch {
	case rec.Color == types.ColorRed || rec.Critical:
		return types.ImpactLegalExposure
	case rec.Color == types.ColorOrange &&
		decimal.NewFromFloat(rec.Score).LessThan(decimal.NewFromFloat(e.cfg.TribunalRiskBelow)):
		return types.ImpactTribunalRisk
	default:
		return types.ImpactBestPractice
	}
}
