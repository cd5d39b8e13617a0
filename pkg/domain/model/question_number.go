package model

import (
	"regexp"
	"strconv"
	"strings"
)

var questionNumberPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

// ValidQuestionNumber reports whether s is a dotted numeric question number such as "1.2"
func ValidQuestionNumber(s string) bool {
	return questionNumberPattern.MatchString(s)
}

// CompareQuestionNumbers compares dotted question numbers segment by segment
// so that "1.2" sorts before "1.10". Non-numeric segments fall back to string
// comparison.
func CompareQuestionNumbers(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

func compareSegment(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
