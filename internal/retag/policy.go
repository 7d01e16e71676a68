// Package retag decides whether a resolved update may touch an already-tagged
// transaction. First-time tags always go through; identical re-runs emit
// nothing; manual edits are never clobbered silently.
package retag

import (
	"github.com/angelmondragon/ledgertag/internal/records"
	"github.com/angelmondragon/ledgertag/pkg/enums"
)

// Policy gates updates against a transaction's tag state.
type Policy struct {
	// RetagChanged allows overwriting the tool's own earlier tag when the
	// source data changed.
	RetagChanged bool
	// PromptRetag defers user-edited transactions to an interactive
	// collaborator instead of skipping them outright. The engine only
	// classifies; it never blocks on input.
	PromptRetag bool
}

// StateOf classifies who last touched the transaction. A tool marker with
// drifted content means the user edited it after the tool tagged it.
func (p Policy) StateOf(txn records.Transaction) enums.TagState {
	if !txn.TaggedByTool {
		return enums.TagStateUntagged
	}
	if FingerprintCurrent(txn) == txn.LastFingerprint {
		return enums.TagStateTaggedByTool
	}
	return enums.TagStateTaggedExternally
}

// Decide returns the policy verdict for applying update to txn.
func (p Policy) Decide(txn records.Transaction, update records.Update) enums.RetagDecision {
	switch p.StateOf(txn) {
	case enums.TagStateUntagged:
		return enums.RetagDecisionEmit

	case enums.TagStateTaggedByTool:
		if FingerprintUpdate(update) == txn.LastFingerprint {
			return enums.RetagDecisionSkipIdentical
		}
		if p.RetagChanged {
			return enums.RetagDecisionEmit
		}
		return enums.RetagDecisionStaleSkip

	default: // TagStateTaggedExternally
		if p.PromptRetag {
			return enums.RetagDecisionPrompt
		}
		return enums.RetagDecisionManualSkip
	}
}
