package model

import (
	"time"

	"github.com/landlordsafeguarding/riskaudit/pkg/domain/types"
)

// ReportData is the denormalized document consumed by the PDF renderer.
// JSON field names are part of the renderer contract.
type ReportData struct {
	ReportID        string            `json:"reportId"`
	Filename        string            `json:"filename"`
	AuditID         AuditID           `json:"auditId"`
	AuditTier       types.Tier        `json:"auditTier"`
	AuditStatus     types.AuditStatus `json:"auditStatus"`
	PropertyAddress string            `json:"propertyAddress"`
	AuditStartDate  string            `json:"auditStartDate"`
	AuditEndDate    string            `json:"auditEndDate"`
	LandlordName    string            `json:"landlordName"`
	AuditorName     string            `json:"auditorName"`

	OverallScore float64         `json:"overallScore"`
	RiskTier     types.Color     `json:"riskTier"`
	RiskLevel    types.RiskLevel `json:"riskLevel"`
	RiskLabel    string          `json:"riskLabel"`

	CategoryScores            map[string]ReportCategoryScore   `json:"categoryScores"`
	SubcategoryScores         []ReportSubcategoryScore         `json:"subcategoryScores"`
	RecommendationsByCategory map[string][]ReportRecommendation `json:"recommendationsByCategory"`
	QuestionResponses         QuestionResponses                `json:"questionResponses"`
	CriticalFindings          []string                         `json:"criticalFindings"`

	GeneratedAt   time.Time `json:"generatedAt,omitempty"`
	SourceVersion string    `json:"sourceVersion,omitempty"`
}

// ReportCategoryScore is a category entry of the report
type ReportCategoryScore struct {
	Category       string          `json:"category"`
	Score          float64         `json:"score"`
	MaxScore       float64         `json:"maxScore"`
	Percentage     float64         `json:"percentage"`
	RiskLevel      types.RiskLevel `json:"riskLevel"`
	Color          types.Color     `json:"color"`
	QuestionsCount int             `json:"questionsCount"`
}

// ReportSubcategoryScore is a subcategory entry of the report
type ReportSubcategoryScore struct {
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	Score          float64     `json:"score"`
	Color          types.Color `json:"color"`
	QuestionsCount int         `json:"questionsCount"`
}

// ReportRecommendation is a recommendation entry grouped by category key
type ReportRecommendation struct {
	Subcategory       string       `json:"subcategory"`
	Score             float64      `json:"score"`
	Suggestions       []string     `json:"suggestions"`
	Priority          int          `json:"priority"`
	Impact            types.Impact `json:"impact"`
	Critical          bool         `json:"critical,omitempty"`
	CriticalQuestions []string     `json:"criticalQuestions,omitempty"`
}

// QuestionResponses partitions answered questions by raw score band
type QuestionResponses struct {
	Red    []ReportQuestion `json:"red"`
	Orange []ReportQuestion `json:"orange"`
	Green  []ReportQuestion `json:"green"`
}

// ReportQuestion is one answered question of the report
type ReportQuestion struct {
	Number       string      `json:"number"`
	Category     string      `json:"category"`
	Subcategory  string      `json:"subcategory"`
	QuestionText string      `json:"questionText"`
	Answer       string      `json:"answer"`
	Score        int         `json:"score"`
	Color        types.Color `json:"color"`
	Comment      string      `json:"comment,omitempty"`
}

// Count returns the total number of bucketed questions
func (r QuestionResponses) Count() int {
	return len(r.Red) + len(r.Orange) + len(r.Green)
}
