package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	MinOptionScore = 1
	MaxOptionScore = 10
	MinWeight      = 0.5
	MaxWeight      = 2.0

	yesNoPassScore = 10
	yesNoFailScore = 1
)

// Question is one audit question of the catalog
type Question struct {
	Number        string
	Category      string
	Subcategory   string
	Text          string
	Type          types.QuestionType
	Tiers         []types.Tier
	Weight        float64
	Critical      bool
	Active        bool
	LearningPoint string
	Options       []AnswerOption
	Guidance      map[types.ScoreLevel]Guidance
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AnswerOption is a selectable answer of a question
type AnswerOption struct {
	Text    string
	Score   int
	Order   int
	Example bool
}

// Guidance is the reason and report action shown for a score level
type Guidance struct {
	Reason string
	Action string
}

// DefaultYesNoOptions returns the options of a yes/no question
func DefaultYesNoOptions() []AnswerOption {
	return []AnswerOption{
		{Text: "Yes", Score: yesNoPassScore, Order: 1},
		{Text: "No", Score: yesNoFailScore, Order: 2},
	}
}

// NormalizeAnswer trims, lowercases and collapses inner whitespace
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// AppliesTo reports whether the question is applicable to the tier
func (q *Question) AppliesTo(tier types.Tier) bool {
	for _, t := range q.Tiers {
		if t == tier {
			return true
		}
	}
	return false
}

// MatchOption finds the option for a raw answer. Option text is matched
// first; a numeric answer then matches an option score.
func (q *Question) MatchOption(answer string) (AnswerOption, bool) {
	normalized := NormalizeAnswer(answer)
	if normalized == "" {
		return AnswerOption{}, false
	}

	for _, opt := range q.Options {
		if NormalizeAnswer(opt.Text) == normalized {
			return opt, true
		}
	}

	if n, err := strconv.Atoi(normalized); err == nil {
		for _, opt := range q.Options {
			if opt.Score == n {
				return opt, true
			}
		}
	}

	return AnswerOption{}, false
}

// GuidanceFor returns the guidance of the level; zero value if absent
func (q *Question) GuidanceFor(level types.ScoreLevel) Guidance {
	if q.Guidance == nil {
		return Guidance{}
	}
	return q.Guidance[level]
}

// Validate checks the catalog invariants of the question
func (q *Question) Validate() error {
	if !ValidQuestionNumber(q.Number) {
		return goerr.Wrap(ErrInvalidQuestion, "question number must be dotted digits",
			goerr.V(QuestionNumberKey, q.Number))
	}
	if strings.TrimSpace(q.Category) == "" {
		return goerr.Wrap(ErrInvalidQuestion, "category is required", goerr.V(QuestionNumberKey, q.Number))
	}
	if strings.TrimSpace(q.Subcategory) == "" {
		return goerr.Wrap(ErrInvalidQuestion, "subcategory is required", goerr.V(QuestionNumberKey, q.Number))
	}
	if strings.TrimSpace(q.Text) == "" {
		return goerr.Wrap(ErrInvalidQuestion, "question text is required", goerr.V(QuestionNumberKey, q.Number))
	}
	if !q.Type.IsValid() {
		return goerr.Wrap(ErrInvalidQuestion, "invalid question type",
			goerr.V(QuestionNumberKey, q.Number), goerr.V("type", q.Type))
	}

	if len(q.Tiers) == 0 {
		return goerr.Wrap(ErrInvalidQuestion, "at least one applicable tier is required",
			goerr.V(QuestionNumberKey, q.Number))
	}
	for _, tier := range q.Tiers {
		if err := tier.Validate(); err != nil {
			return goerr.Wrap(err, "invalid applicable tier", goerr.V(QuestionNumberKey, q.Number))
		}
	}

	if q.Weight < MinWeight || q.Weight > MaxWeight {
		return goerr.Wrap(ErrInvalidQuestion, "weight must be between 0.5 and 2.0",
			goerr.V(QuestionNumberKey, q.Number), goerr.V("weight", q.Weight))
	}

	if err := q.validateOptions(); err != nil {
		return err
	}

	for level := range q.Guidance {
		if !level.IsValid() {
			return goerr.Wrap(ErrInvalidQuestion, "invalid guidance score level",
				goerr.V(QuestionNumberKey, q.Number), goerr.V("score_level", level))
		}
	}

	return nil
}

func (q *Question) validateOptions() error {
	if len(q.Options) < 2 {
		return goerr.Wrap(ErrInvalidQuestion, "at least two answer options are required",
			goerr.V(QuestionNumberKey, q.Number))
	}

	texts := make(map[string]bool, len(q.Options))
	orders := make(map[int]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.Score < MinOptionScore || opt.Score > MaxOptionScore {
			return goerr.Wrap(ErrInvalidQuestion, "option score must be between 1 and 10",
				goerr.V(QuestionNumberKey, q.Number), goerr.V(OptionTextKey, opt.Text), goerr.V("score", opt.Score))
		}
		if opt.Order <= 0 {
			return goerr.Wrap(ErrInvalidQuestion, "option order must be positive",
				goerr.V(QuestionNumberKey, q.Number), goerr.V(OptionOrderKey, opt.Order))
		}

		text := NormalizeAnswer(opt.Text)
		if text == "" {
			return goerr.Wrap(ErrInvalidQuestion, "option text is required",
				goerr.V(QuestionNumberKey, q.Number), goerr.V(OptionOrderKey, opt.Order))
		}
		if texts[text] {
			return goerr.Wrap(ErrInvalidQuestion, "duplicate option text",
				goerr.V(QuestionNumberKey, q.Number), goerr.V(OptionTextKey, opt.Text))
		}
		if orders[opt.Order] {
			return goerr.Wrap(ErrInvalidQuestion, "duplicate option order",
				goerr.V(QuestionNumberKey, q.Number), goerr.V(OptionOrderKey, opt.Order))
		}
		texts[text] = true
		orders[opt.Order] = true
	}

	if q.Type == types.QuestionTypeYesNo {
		if len(q.Options) != 2 {
			return goerr.Wrap(ErrInvalidQuestion, "yes/no question must have exactly two options",
				goerr.V(QuestionNumberKey, q.Number))
		}
		a, b := q.Options[0].Score, q.Options[1].Score
		if !(a == yesNoPassScore && b == yesNoFailScore) && !(a == yesNoFailScore && b == yesNoPassScore) {
			return goerr.Wrap(ErrInvalidQuestion, "yes/no options must be scored 10 and 1",
				goerr.V(QuestionNumberKey, q.Number))
		}
	}

	return nil
}

// Copy returns a deep copy of the question
func (q *Question) Copy() *Question {
	c := *q
	c.Tiers = append([]types.Tier(nil), q.Tiers...)
	c.Options = append([]AnswerOption(nil), q.Options...)
	if q.Guidance != nil {
		c.Guidance = make(map[types.ScoreLevel]Guidance, len(q.Guidance))
		for k, v := range q.Guidance {
			c.Guidance[k] = v
		}
	}
	return &c
}
