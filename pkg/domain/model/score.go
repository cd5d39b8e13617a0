package model

import "github.com/landlordsafeguarding/riskaudit/pkg/domain/types"

// QuestionScore is the scored answer of one question
type QuestionScore struct {
	Number      string
	Category    string
	Subcategory string
	Answer      string
	Score       int
	Weight      float64
	Critical    bool
	Color       types.Color
}

// SubcategoryScore is the mean score of the answered questions of a subcategory
type SubcategoryScore struct {
	Category       string
	Subcategory    string
	Score          float64
	Color          types.Color
	QuestionsCount int
}

// CategoryScore is the weighted mean score of a category
type CategoryScore struct {
	Key            string
	Category       string
	Score          float64
	MaxScore       float64
	Percentage     float64
	Color          types.Color
	RiskLevel      types.RiskLevel
	QuestionsCount int
}

// Recommendation is a prioritized remediation entry for a subcategory
type Recommendation struct {
	Category          string
	CategoryKey       string
	Subcategory       string
	Score             float64
	Color             types.Color
	Actions           []string
	Priority          int
	Impact            types.Impact
	Critical          bool
	CriticalQuestions []string
}

// ScoreResult is the derived scoring of one audit. It is never persisted.
type ScoreResult struct {
	QuestionScores    []QuestionScore
	SubcategoryScores []SubcategoryScore
	CategoryScores    []CategoryScore
	OverallScore      float64
	RiskTier          types.Color
	RiskLevel         types.RiskLevel
	RiskLabel         string
	Recommendations   []Recommendation
	MissingQuestions  []string
}

// QuestionScore returns the score of the question number if it was answered
func (r *ScoreResult) QuestionScore(number string) (QuestionScore, bool) {
	for _, qs := range r.QuestionScores {
		if qs.Number == number {
			return qs, true
		}
	}
	return QuestionScore{}, false
}

// IsComplete reports whether every question of the set was answered
func (r *ScoreResult) IsComplete() bool {
	return len(r.MissingQuestions) == 0
}
