package types

// Impact labels the consequence of leaving a recommendation unaddressed
type Impact string

const (
	ImpactLegalExposure Impact = "Legal Exposure"
	ImpactTribunalRisk  Impact = "Tribunal Risk"
	ImpactBestPractice  Impact = "Best Practice"
)

// IsValid checks if the impact is one of the fixed labels
func (i Impact) IsValid() bool {
	switch i {
	case ImpactLegalExposure, ImpactTribunalRisk, ImpactBestPractice:
		return true
	default:
		return false
	}
}

// String returns the string representation of Impact
func (i Impact) String() string {
	return string(i)
}
