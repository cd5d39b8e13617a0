package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidQuestion   = goerr.New("invalid question")
	ErrInvalidTransition = goerr.New("invalid audit status transition")
	ErrInvalidAuditID    = goerr.New("invalid audit ID")
)

// Context keys for error values
const (
	QuestionNumberKey = "question_number"
	OptionTextKey     = "option_text"
	OptionOrderKey    = "option_order"
	AuditIDKey        = "audit_id"
	StatusKey         = "status"
	EventKey          = "event"
)
