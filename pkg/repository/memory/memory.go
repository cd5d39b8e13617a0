package memory

import (
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	question *questionRepository
	audit    *auditRepository
	response *responseRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		question: newQuestionRepository(),
		audit:    newAuditRepository(),
		response: newResponseRepository(),
	}
}

func (m *Memory) Question() interfaces.QuestionRepository {
	return m.question
}

func (m *Memory) Audit() interfaces.AuditRepository {
	return m.audit
}

func (m *Memory) Response() interfaces.ResponseRepository {
	return m.response
}

func (m *Memory) Close() error {
	return nil
}
