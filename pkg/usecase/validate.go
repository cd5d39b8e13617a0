package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ValidationIssue represents a single inconsistency between stored responses and the catalog
type ValidationIssue struct {
	AuditID        model.AuditID
	QuestionNumber string
	Message        string
	Expected       string
	Actual         string
}

// ValidationResult holds the results of response validation
type ValidationResult struct {
	Audits int
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateResponses checks that every stored response references a
// question of its audit's tier and matches one of its options, and that
// submitted audits answer every question. It does NOT modify any data.
func (uc *UseCases) ValidateResponses(ctx context.Context) (*ValidationResult, error) {
	result := &ValidationResult{}

	audits, err := uc.repo.Audit().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list audits")
	}
	result.Audits = len(audits)

	all, err := uc.repo.Question().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list questions")
	}
	byNumber := make(map[string]*model.Question, len(all))
	for _, q := range all {
		byNumber[q.Number] = q
	}

	for _, audit := range audits {
		if err := audit.Tier.Validate(); err != nil {
			result.AddIssue(ValidationIssue{
				AuditID:  audit.ID,
				Message:  "audit has an unknown tier",
				Expected: "tier_0..tier_4",
				Actual:   string(audit.Tier),
			})
			continue
		}

		responses, err := uc.repo.Response().List(ctx, audit.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list responses", goerr.V(AuditIDKey, audit.ID))
		}

		answered := make(map[string]bool, len(responses))
		for _, r := range responses {
			answered[r.QuestionNumber] = strings.TrimSpace(r.Answer) != ""

			q, ok := byNumber[r.QuestionNumber]
			if !ok {
				result.AddIssue(ValidationIssue{
					AuditID:        audit.ID,
					QuestionNumber: r.QuestionNumber,
					Message:        "response references an unknown question",
				})
				continue
			}
			if !q.AppliesTo(audit.Tier) {
				result.AddIssue(ValidationIssue{
					AuditID:        audit.ID,
					QuestionNumber: r.QuestionNumber,
					Message:        "question is not applicable to the audit tier",
					Expected:       string(audit.Tier),
					Actual:         fmt.Sprintf("%v", q.Tiers),
				})
				continue
			}
			if _, found := q.MatchOption(r.Answer); !found && answered[r.QuestionNumber] {
				result.AddIssue(ValidationIssue{
					AuditID:        audit.ID,
					QuestionNumber: r.QuestionNumber,
					Message:        "answer does not match any option",
					Expected:       optionTexts(q),
					Actual:         r.Answer,
				})
			}
		}

		if !audit.Status.IsReportable() {
			continue
		}

		questions, err := uc.Catalog.QuestionsForTier(ctx, audit.Tier)
		if err != nil {
			return nil, err
		}
		for _, q := range questions {
			if !answered[q.Number] {
				result.AddIssue(ValidationIssue{
					AuditID:        audit.ID,
					QuestionNumber: q.Number,
					Message:        "submitted audit has no response",
				})
			}
		}
	}

	return result, nil
}

func optionTexts(q *model.Question) string {
	texts := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		texts = append(texts, fmt.Sprintf("%s (%d)", opt.Text, opt.Score))
	}
	return strings.Join(texts, ", ")
}
