package usecase

import (
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors of the scoring and report pipeline
var (
	// ErrNotReady is returned when a report is requested for an audit that is not submitted
	ErrNotReady = goerr.New("audit is not ready for reporting")

	// ErrMissingResponse is returned when a question of the tier has no response
	ErrMissingResponse = goerr.New("missing response")

	// ErrInvalidAnswerValue is returned when an answer matches no option of its question
	ErrInvalidAnswerValue = goerr.New("invalid answer value")

	// ErrDuplicateResponse is returned when a question has more than one response
	ErrDuplicateResponse = goerr.New("duplicate response")

	// ErrEmptyAggregate is returned when there is nothing to score
	ErrEmptyAggregate = goerr.New("empty aggregate")

	// ErrUnknownTier is returned for a tier outside the fixed five
	ErrUnknownTier = types.ErrUnknownTier
)

// Context keys for error values
const (
	AuditIDKey          = "audit_id"
	QuestionNumberKey   = "question_number"
	AnswerKey           = "answer"
	MissingQuestionsKey = "missing_questions"
	StatusKey           = "status"
	TierKey             = "tier"
)
