package types

import "fmt"

// ScoreLevel selects the scoring guidance (reason and action) of a question
type ScoreLevel string

const (
	ScoreLevelLow    ScoreLevel = "low"
	ScoreLevelMedium ScoreLevel = "medium"
	ScoreLevelHigh   ScoreLevel = "high"
)

// AllScoreLevels returns all valid score levels
func AllScoreLevels() []ScoreLevel {
	return []ScoreLevel{ScoreLevelLow, ScoreLevelMedium, ScoreLevelHigh}
}

// IsValid checks if the score level is valid
func (l ScoreLevel) IsValid() bool {
	switch l {
	case ScoreLevelLow, ScoreLevelMedium, ScoreLevelHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the score level
func (l ScoreLevel) String() string {
	return string(l)
}

// ParseScoreLevel parses a string into a ScoreLevel
func ParseScoreLevel(s string) (ScoreLevel, error) {
	level := ScoreLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid score level: %s", s)
	}
	return level, nil
}
