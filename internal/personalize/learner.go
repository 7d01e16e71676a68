// Package personalize learns per-item category preferences from transactions
// the tool has tagged before. A user who recategorizes one purchase out of
// many does not move the needle; the majority for that item name must change.
package personalize

import (
	"github.com/angelmondragon/ledgertag/internal/records"
)

// Learn builds the override table from previously tagged transactions. Only
// unsplit, tool-tagged transactions count: their description is the
// normalized item name written by a prior pass, and their current category is
// whatever the user has it set to now. An override is emitted only when one
// category holds a strict majority of the observations for a name.
// Observations of the default category carry no signal and are skipped.
func Learn(transactions []records.Transaction, defaultCategory string) map[string]string {
	votes := make(map[string]map[string]int)
	for _, txn := range transactions {
		if !txn.TaggedByTool || len(txn.Splits) > 0 {
			continue
		}
		if txn.Category == "" || txn.Category == defaultCategory {
			continue
		}
		name := records.NormalizeItemName(txn.Description)
		if name == "" {
			continue
		}
		if votes[name] == nil {
			votes[name] = make(map[string]int)
		}
		votes[name][txn.Category]++
	}

	overrides := make(map[string]string, len(votes))
	for name, tally := range votes {
		if category, ok := strictMajority(tally); ok {
			overrides[name] = category
		}
	}
	return overrides
}

// strictMajority returns the category holding more than half the votes for
// one name, if any. Ties and pluralities yield nothing.
func strictMajority(tally map[string]int) (string, bool) {
	total := 0
	for _, count := range tally {
		total += count
	}
	for category, count := range tally {
		if count*2 > total {
			return category, true
		}
	}
	return "", false
}
