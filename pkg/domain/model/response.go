package model

import "time"

// Response is the raw answer of one question in an audit
type Response struct {
	AuditID        AuditID
	QuestionNumber string
	Answer         string
	Comment        string
	CreatedAt      time.Time
}
