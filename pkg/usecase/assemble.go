package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/model"
	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	reportIDPrefix      = "LRA"
	reportIDLength      = 6
	reportFilenameStem  = "landlord-audit-report"
	criticalFindingSize = 120
	dateLayout          = "2006-01-02"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming hyphens at both ends.
func Slugify(s string) string {
	return strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// ReportID derives the deterministic report identifier
// LRA-<YYYY>-<MM>-<6 base36 chars> from the property address and the
// audit end date.
func ReportID(propertyAddress string, endDate time.Time) string {
	space := uint64(1)
	for range reportIDLength {
		space *= 36
	}

	h := xxhash.Sum64String(strings.TrimSpace(propertyAddress) + "|" + endDate.Format(dateLayout))
	code := strings.ToUpper(strconv.FormatUint(h%space, 36))
	code = strings.Repeat("0", reportIDLength-len(code)) + code

	return fmt.Sprintf("%s-%04d-%02d-%s", reportIDPrefix, endDate.Year(), int(endDate.Month()), code)
}

// ReportFilename returns landlord-audit-report-<slug>-<YYYY-MM-DD>.pdf
func ReportFilename(propertyAddress string, endDate time.Time) string {
	slug := Slugify(propertyAddress)
	if slug == "" {
		slug = "unknown-property"
	}
	return fmt.Sprintf("%s-%s-%s.pdf", reportFilenameStem, slug, endDate.Format(dateLayout))
}

// ReportAssembler merges audit metadata, scores and answers into ReportData.
// Assemble performs no I/O.
type ReportAssembler struct {
	engine *ScoringEngine
}

// NewReportAssembler creates an assembler sharing the engine's thresholds
func NewReportAssembler(engine *ScoringEngine) *ReportAssembler {
	return &ReportAssembler{engine: engine}
}

func reportEndDate(audit *model.Audit) time.Time {
	if end := audit.EndDate(); !end.IsZero() {
		return end
	}
	return audit.UpdatedAt
}

// Assemble builds the report document of a submitted or completed audit
// from a complete score result.
func (a *ReportAssembler) Assemble(audit *model.Audit, responses []*model.Response, questions []*model.Question, scores *model.ScoreResult) (*model.ReportData, error) {
	if audit == nil {
		return nil, goerr.New("audit is required")
	}
	if !audit.Status.IsReportable() {
		return nil, goerr.Wrap(ErrNotReady, "audit must be submitted or completed",
			goerr.V(AuditIDKey, audit.ID), goerr.V(StatusKey, audit.Status))
	}
	if scores == nil {
		return nil, goerr.New("scores are required", goerr.V(AuditIDKey, audit.ID))
	}
	if !scores.IsComplete() {
		return nil, goerr.Wrap(ErrMissingResponse, "cannot assemble a report from partial scores",
			goerr.V(AuditIDKey, audit.ID), goerr.V(MissingQuestionsKey, scores.MissingQuestions))
	}

	endDate := reportEndDate(audit)
	data := &model.ReportData{
		ReportID:                  ReportID(audit.PropertyAddress, endDate),
		Filename:                  ReportFilename(audit.PropertyAddress, endDate),
		AuditID:                   audit.ID,
		AuditTier:                 audit.Tier,
		AuditStatus:               audit.Status,
		PropertyAddress:           audit.PropertyAddress,
		AuditStartDate:            audit.CreatedAt.Format(dateLayout),
		AuditEndDate:              endDate.Format(dateLayout),
		LandlordName:              audit.ClientName,
		AuditorName:               audit.AuditorName,
		OverallScore:              scores.OverallScore,
		RiskTier:                  scores.RiskTier,
		RiskLevel:                 scores.RiskLevel,
		RiskLabel:                 scores.RiskLabel,
		CategoryScores:            make(map[string]model.ReportCategoryScore, len(scores.CategoryScores)),
		SubcategoryScores:         make([]model.ReportSubcategoryScore, 0, len(scores.SubcategoryScores)),
		RecommendationsByCategory: make(map[string][]model.ReportRecommendation),
		QuestionResponses: model.QuestionResponses{
			Red:    []model.ReportQuestion{},
			Orange: []model.ReportQuestion{},
			Green:  []model.ReportQuestion{},
		},
		CriticalFindings: []string{},
	}

	for _, c := range scores.CategoryScores {
		data.CategoryScores[c.Key] = model.ReportCategoryScore{
			Category:       c.Category,
			Score:          c.Score,
			MaxScore:       c.MaxScore,
			Percentage:     c.Percentage,
			RiskLevel:      c.RiskLevel,
			Color:          c.Color,
			QuestionsCount: c.QuestionsCount,
		}
	}

	for _, s := range scores.SubcategoryScores {
		data.SubcategoryScores = append(data.SubcategoryScores, model.ReportSubcategoryScore{
			Name:           s.Subcategory,
			Category:       s.Category,
			Score:          s.Score,
			Color:          s.Color,
			QuestionsCount: s.QuestionsCount,
		})
	}

	// Recommendations are already in priority order
	for _, r := range scores.Recommendations {
		data.RecommendationsByCategory[r.CategoryKey] = append(data.RecommendationsByCategory[r.CategoryKey],
			model.ReportRecommendation{
				Subcategory:       r.Subcategory,
				Score:             r.Score,
				Suggestions:       append([]string{}, r.Actions...),
				Priority:          r.Priority,
				Impact:            r.Impact,
				Critical:          r.Critical,
				CriticalQuestions: r.CriticalQuestions,
			})
	}

	comments := make(map[string]string, len(responses))
	for _, r := range responses {
		if r != nil {
			comments[r.QuestionNumber] = strings.TrimSpace(r.Comment)
		}
	}

	for _, q := range questions {
		qs, ok := scores.QuestionScore(q.Number)
		if !ok {
			continue
		}

		color := a.engine.QuestionColor(qs.Score)
		comment := comments[q.Number]
		if comment == "" {
			comment = q.GuidanceFor(color.ScoreLevel()).Reason
		}

		entry := model.ReportQuestion{
			Number:       q.Number,
			Category:     q.Category,
			Subcategory:  q.Subcategory,
			QuestionText: q.Text,
			Answer:       qs.Answer,
			Score:        qs.Score,
			Color:        color,
			Comment:      comment,
		}

		switch color {
		case types.ColorRed:
			data.QuestionResponses.Red = append(data.QuestionResponses.Red, entry)
			data.CriticalFindings = append(data.CriticalFindings, criticalFinding(q))
		case types.ColorOrange:
			data.QuestionResponses.Orange = append(data.QuestionResponses.Orange, entry)
		default:
			data.QuestionResponses.Green = append(data.QuestionResponses.Green, entry)
		}
	}

	return data, nil
}

// criticalFinding renders "<subcategory>: <text>", marking texts cut at
// criticalFindingSize runes with "..."
func criticalFinding(q *model.Question) string {
	text := q.Text
	if utf8.RuneCountInString(text) > criticalFindingSize {
		text = string([]rune(text)[:criticalFindingSize]) + "..."
	}
	return q.Subcategory + ": " + text
}
