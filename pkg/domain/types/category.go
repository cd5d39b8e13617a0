package types

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// CategoryID is the key of a category in categoryScores and
// recommendationsByCategory of a report, e.g. "gas-safety"
type CategoryID string

// UncategorizedID keys categories whose name has no letters or digits
const UncategorizedID CategoryID = "uncategorized"

const maxCategoryIDLength = 64

var (
	categoryKeyPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	categoryKeyBreaks  = regexp.MustCompile(`[^a-z0-9]+`)
)

// CategoryIDFromName derives the key of an undeclared category from its
// display name: "Fire & Smoke Safety" becomes "fire-smoke-safety"
func CategoryIDFromName(name string) CategoryID {
	key := strings.Trim(categoryKeyBreaks.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if key == "" {
		return UncategorizedID
	}
	return CategoryID(key)
}

// Validate checks that the ID is a report category key
func (c CategoryID) Validate() error {
	if c == "" {
		return goerr.New("category key cannot be empty")
	}
	if len(c) > maxCategoryIDLength {
		return goerr.New("category key is too long", goerr.V("id", c), goerr.V("max", maxCategoryIDLength))
	}
	if !categoryKeyPattern.MatchString(string(c)) {
		return goerr.New("category key must be lowercase letters and digits joined by single hyphens, e.g. \"gas-safety\"",
			goerr.V("id", c))
	}
	return nil
}

func (c CategoryID) String() string {
	return string(c)
}
