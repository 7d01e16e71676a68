package enums

import (
	"fmt"
	"strings"
)

// UnmatchedReason explains why a charge found no transaction.
type UnmatchedReason string

const (
	UnmatchedReasonNoCandidate UnmatchedReason = "no_candidate"
	UnmatchedReasonAmbiguous   UnmatchedReason = "ambiguous"
)

var validUnmatchedReasons = []UnmatchedReason{
	UnmatchedReasonNoCandidate,
	UnmatchedReasonAmbiguous,
}

// String implements fmt.Stringer.
func (u UnmatchedReason) String() string {
	return string(u)
}

// IsValid reports whether the value is known.
func (u UnmatchedReason) IsValid() bool {
	for _, candidate := range validUnmatchedReasons {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUnmatchedReason converts raw input into an UnmatchedReason.
func ParseUnmatchedReason(value string) (UnmatchedReason, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validUnmatchedReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid unmatched reason %q", value)
}
