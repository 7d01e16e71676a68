package enums

import (
	"fmt"
	"strings"
)

// RetagDecision is the retag policy's verdict for one resolved update.
type RetagDecision string

const (
	// RetagDecisionEmit releases the update for the sink to apply.
	RetagDecisionEmit RetagDecision = "emit"
	// RetagDecisionSkipIdentical drops an update identical to the last applied one.
	RetagDecisionSkipIdentical RetagDecision = "skip_identical"
	// RetagDecisionStaleSkip drops a changed update because retagging is disabled.
	RetagDecisionStaleSkip RetagDecision = "stale_skip"
	// RetagDecisionManualSkip protects a user-edited transaction.
	RetagDecisionManualSkip RetagDecision = "manual_skip"
	// RetagDecisionPrompt defers a user-edited transaction to an interactive collaborator.
	RetagDecisionPrompt RetagDecision = "prompt"
)

var validRetagDecisions = []RetagDecision{
	RetagDecisionEmit,
	RetagDecisionSkipIdentical,
	RetagDecisionStaleSkip,
	RetagDecisionManualSkip,
	RetagDecisionPrompt,
}

// String implements fmt.Stringer.
func (r RetagDecision) String() string {
	return string(r)
}

// IsValid reports whether the value is known.
func (r RetagDecision) IsValid() bool {
	for _, candidate := range validRetagDecisions {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRetagDecision converts raw input into a RetagDecision.
func ParseRetagDecision(value string) (RetagDecision, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validRetagDecisions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid retag decision %q", value)
}
