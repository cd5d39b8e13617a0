package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Tier is the audit depth level which decides the applicable questions
type Tier string

const (
	Tier0 Tier = "tier_0"
	Tier1 Tier = "tier_1"
	Tier2 Tier = "tier_2"
	Tier3 Tier = "tier_3"
	Tier4 Tier = "tier_4"
)

// ErrUnknownTier is returned for a tier outside the five fixed tiers
var ErrUnknownTier = goerr.New("unknown tier")

// AllTiers returns all valid tiers in ascending depth
func AllTiers() []Tier {
	return []Tier{Tier0, Tier1, Tier2, Tier3, Tier4}
}

// IsValid checks if the tier is one of the fixed tiers
func (t Tier) IsValid() bool {
	switch t {
	case Tier0, Tier1, Tier2, Tier3, Tier4:
		return true
	default:
		return false
	}
}

// Validate returns ErrUnknownTier when the tier is not valid
func (t Tier) Validate() error {
	if !t.IsValid() {
		return goerr.Wrap(ErrUnknownTier, "invalid tier", goerr.V("tier", t))
	}
	return nil
}

// String returns the string representation of the tier
func (t Tier) String() string {
	return string(t)
}

// ParseTier parses a string into a Tier
func ParseTier(s string) (Tier, error) {
	tier := Tier(s)
	if err := tier.Validate(); err != nil {
		return "", err
	}
	return tier, nil
}
