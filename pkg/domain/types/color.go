package types

// Color is the traffic-light band used for questions and aggregates
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorGreen  Color = "green"
)

// AllColors returns the colors from most to least severe
func AllColors() []Color {
	return []Color{ColorRed, ColorOrange, ColorGreen}
}

// IsValid checks if the color is valid
func (c Color) IsValid() bool {
	switch c {
	case ColorRed, ColorOrange, ColorGreen:
		return true
	default:
		return false
	}
}

// Severity orders colors: red 1, orange 2, green 3, unknown 0
func (c Color) Severity() int {
	switch c {
	case ColorRed:
		return 1
	case ColorOrange:
		return 2
	case ColorGreen:
		return 3
	default:
		return 0
	}
}

// RiskLevel returns the risk level paired with the color
func (c Color) RiskLevel() RiskLevel {
	switch c {
	case ColorGreen:
		return RiskLevelLow
	case ColorOrange:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// ScoreLevel returns the scoring-guidance band matching the color
func (c Color) ScoreLevel() ScoreLevel {
	switch c {
	case ColorGreen:
		return ScoreLevelHigh
	case ColorOrange:
		return ScoreLevelMedium
	default:
		return ScoreLevelLow
	}
}

// String returns the string representation of the color
func (c Color) String() string {
	return string(c)
}

// RiskLevel is the risk classification derived from a color
type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "high"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelLow    RiskLevel = "low"
)

// String returns the string representation of the risk level
func (r RiskLevel) String() string {
	return string(r)
}
