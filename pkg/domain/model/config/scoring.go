package config

// Category is a catalog category declaration. Declaration order is the
// tie-break order for recommendation ranking.
type Category struct {
	ID   string
	Name string
}

// ScoringConfig holds the fixed thresholds and labels of the scoring
// pipeline. Aggregate bands use GreenThreshold/OrangeThreshold on the 0-10
// scale; question bands use QuestionRedMax/QuestionOrangeMax on the raw 1-10
// option scale.
type ScoringConfig struct {
	GreenThreshold    float64
	OrangeThreshold   float64
	QuestionRedMax    int
	QuestionOrangeMax int
	CriticalFailMax   int
	TribunalRiskBelow float64

	LowRiskLabel    string
	MediumRiskLabel string
	HighRiskLabel   string
}

// DefaultScoringConfig returns the production thresholds
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		GreenThreshold:    7.5,
		OrangeThreshold:   4.0,
		QuestionRedMax:    3,
		QuestionOrangeMax: 6,
		CriticalFailMax:   3,
		TribunalRiskBelow: 6.0,
		LowRiskLabel:      "Low Risk",
		MediumRiskLabel:   "Medium Risk",
		HighRiskLabel:     "High Risk",
	}
}

// CatalogConfig holds the category declarations and scoring thresholds
type CatalogConfig struct {
	Scoring    ScoringConfig
	Categories []Category
}

// CategoryIndex returns the declaration position of the category name, or -1
func (c *CatalogConfig) CategoryIndex(name string) int {
	for i, cat := range c.Categories {
		if cat.Name == name {
			return i
		}
	}
	return -1
}
