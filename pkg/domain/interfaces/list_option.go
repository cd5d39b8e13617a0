package interfaces

import "github.com/landlordsafeguarding/riskaudit/pkg/domain/types"

// ListQuestionOption is a functional option for filtering questions in List
type ListQuestionOption func(*listQuestionConfig)

type listQuestionConfig struct {
	activeOnly bool
	tier       *types.Tier
}

// WithActiveOnly excludes deactivated questions
func WithActiveOnly() ListQuestionOption {
	return func(c *listQuestionConfig) {
		c.activeOnly = true
	}
}

// WithTier filters questions applicable to the tier
func WithTier(tier types.Tier) ListQuestionOption {
	return func(c *listQuestionConfig) {
		c.tier = &tier
	}
}

// BuildListQuestionConfig builds a listQuestionConfig from options
func BuildListQuestionConfig(opts ...ListQuestionOption) *listQuestionConfig {
	cfg := &listQuestionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ActiveOnly reports whether inactive questions are excluded
func (c *listQuestionConfig) ActiveOnly() bool {
	return c.activeOnly
}

// Tier returns the tier filter value, or nil if not set
func (c *listQuestionConfig) Tier() *types.Tier {
	return c.tier
}

// ListAuditOption is a functional option for filtering audits in List
type ListAuditOption func(*listAuditConfig)

type listAuditConfig struct {
	statuses []types.AuditStatus
}

// WithAuditStatus filters audits having any of the statuses
func WithAuditStatus(statuses ...types.AuditStatus) ListAuditOption {
	return func(c *listAuditConfig) {
		c.statuses = append(c.statuses, statuses...)
	}
}

// BuildListAuditConfig builds a listAuditConfig from options
func BuildListAuditConfig(opts ...ListAuditOption) *listAuditConfig {
	cfg := &listAuditConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Statuses returns the status filter, or nil if not set
func (c *listAuditConfig) Statuses() []types.AuditStatus {
	return c.statuses
}

// MatchStatus reports whether the status passes the filter
func (c *listAuditConfig) MatchStatus(status types.AuditStatus) bool {
	if len(c.statuses) == 0 {
		return true
	}
	for _, s := range c.statuses {
		if s == status.Normalize() {
			return true
		}
	}
	return false
}
