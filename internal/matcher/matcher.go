// Package matcher pairs charges with transactions. It is a greedy bipartite
// matcher with deterministic ordering rather than a globally optimal one:
// charges claim transactions in a fixed priority order, every run over the
// same snapshot produces the same pairs, and ambiguity is reported instead of
// guessed at. A false positive here clobbers someone's ledger; a missed match
// only lowers the match rate.
package matcher

import (
	"sort"
	"time"

	"github.com/angelmondragon/ledgertag/internal/records"
	"github.com/angelmondragon/ledgertag/pkg/enums"
	"github.com/angelmondragon/ledgertag/pkg/money"
)

// Config bounds the matching predicate.
type Config struct {
	// MaxDaysAfterCharge is how many days after the charge date a
	// transaction may post and still be a candidate.
	MaxDaysAfterCharge int
	// GraceDaysBefore tolerates postings slightly before the charge date.
	GraceDaysBefore int
	// IncludeTagged admits already-tagged transactions into the candidate
	// pool; the retag policy decides what happens to them downstream.
	IncludeTagged bool
}

// Result is the outcome for one charge, in the same order as the input
// charges. Transaction is nil when unmatched and Reason says why.
type Result struct {
	Charge      records.Charge
	Transaction *records.Transaction
	Reason      enums.UnmatchedReason
}

// Matched reports whether the charge claimed a transaction.
func (r Result) Matched() bool {
	return r.Transaction != nil
}

// Match assigns at most one transaction to each charge. Charges are processed
// in ascending (amount magnitude, date, order id) order so distinctive amounts
// claim before small repeated ones collide; each claimed transaction leaves
// the pool for the rest of the pass.
func Match(charges []records.Charge, transactions []records.Transaction, cfg Config) []Result {
	results := make([]Result, len(charges))

	priority := make([]int, len(charges))
	for i := range priority {
		priority[i] = i
	}
	sort.SliceStable(priority, func(a, b int) bool {
		ca, cb := charges[priority[a]], charges[priority[b]]
		if money.Abs(ca.AmountCents) != money.Abs(cb.AmountCents) {
			return money.Abs(ca.AmountCents) < money.Abs(cb.AmountCents)
		}
		if !ca.Date.Equal(cb.Date) {
			return ca.Date.Before(cb.Date)
		}
		return ca.OrderID < cb.OrderID
	})

	claimed := make([]bool, len(transactions))
	for _, idx := range priority {
		results[idx] = matchOne(charges[idx], transactions, claimed, cfg)
	}
	return results
}

func matchOne(charge records.Charge, transactions []records.Transaction, claimed []bool, cfg Config) Result {
	want := money.Abs(charge.AmountCents)

	bestIdx := -1
	bestRank := rank{}
	tied := false
	for i := range transactions {
		if claimed[i] {
			continue
		}
		t := &transactions[i]
		if t.TaggedByTool && !cfg.IncludeTagged {
			continue
		}
		if t.AmountCents != want {
			continue
		}
		delta := daysBetween(charge.Date, t.PostedDate)
		if delta < -cfg.GraceDaysBefore || delta > cfg.MaxDaysAfterCharge {
			continue
		}
		r := rankFor(delta)
		switch {
		case bestIdx == -1 || r.less(bestRank):
			bestIdx, bestRank, tied = i, r, false
		case r == bestRank:
			tied = true
		}
	}

	if bestIdx == -1 {
		return Result{Charge: charge, Reason: enums.UnmatchedReasonNoCandidate}
	}
	if tied {
		return Result{Charge: charge, Reason: enums.UnmatchedReasonAmbiguous}
	}
	claimed[bestIdx] = true
	return Result{Charge: charge, Transaction: &transactions[bestIdx]}
}

// rank orders candidates: closest settlement first, and on equal distance a
// posting after the charge beats one before it (grace postings are the
// exception, not the rule).
type rank struct {
	absDelta int
	before   int
}

func rankFor(delta int) rank {
	r := rank{absDelta: delta}
	if delta < 0 {
		r.absDelta = -delta
		r.before = 1
	}
	return r
}

func (r rank) less(other rank) bool {
	if r.absDelta != other.absDelta {
		return r.absDelta < other.absDelta
	}
	return r.before < other.before
}

// daysBetween counts whole calendar days from a to b, negative when b is
// earlier. Both dates are compared at UTC midnight so time-of-day noise in a
// snapshot cannot shift the window.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
