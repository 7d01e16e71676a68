package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/ledgertag/internal/records"
	"github.com/angelmondragon/ledgertag/pkg/enums"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMatchDateWindowBoundary(t *testing.T) {
	charge := records.Charge{OrderID: "O1", AmountCents: 2000, Date: date(2024, 3, 1)}
	cfg := Config{MaxDaysAfterCharge: 3}

	atBoundary := []records.Transaction{{ID: "T1", AmountCents: 2000, PostedDate: date(2024, 3, 4)}}
	results := Match([]records.Charge{charge}, atBoundary, cfg)
	require.Len(t, results, 1)
	require.True(t, results[0].Matched(), "posting exactly at the window edge must match")
	assert.Equal(t, "T1", results[0].Transaction.ID)

	beyond := []records.Transaction{{ID: "T2", AmountCents: 2000, PostedDate: date(2024, 3, 5)}}
	results = Match([]records.Charge{charge}, beyond, cfg)
	require.False(t, results[0].Matched())
	assert.Equal(t, enums.UnmatchedReasonNoCandidate, results[0].Reason)
}

func TestMatchRejectsPostingBeforeChargeWithoutGrace(t *testing.T) {
	charge := records.Charge{OrderID: "O1", AmountCents: 2000, Date: date(2024, 3, 10)}
	txns := []records.Transaction{{ID: "T1", AmountCents: 2000, PostedDate: date(2024, 3, 9)}}

	results := Match([]records.Charge{charge}, txns, Config{MaxDaysAfterCharge: 3})
	require.False(t, results[0].Matched())

	results = Match([]records.Charge{charge}, txns, Config{MaxDaysAfterCharge: 3, GraceDaysBefore: 1})
	require.True(t, results[0].Matched(), "one-day grace should admit the earlier posting")
}

func TestMatchRequiresExactAmount(t *testing.T) {
	charge := records.Charge{OrderID: "O1", AmountCents: 2000, Date: date(2024, 3, 1)}
	txns := []records.Transaction{{ID: "T1", AmountCents: 2001, PostedDate: date(2024, 3, 2)}}

	results := Match([]records.Charge{charge}, txns, Config{MaxDaysAfterCharge: 3})
	require.False(t, results[0].Matched())
}

func TestMatchRefundAmountComparedByMagnitude(t *testing.T) {
	charge := records.Charge{OrderID: "O1", AmountCents: -1200, Date: date(2024, 3, 1),
		Refund: &records.Refund{ID: "R1", OrderID: "O1", AmountCents: 1200, Date: date(2024, 3, 1)}}
	txns := []records.Transaction{{ID: "T1", AmountCents: 1200, PostedDate: date(2024, 3, 2)}}

	results := Match([]records.Charge{charge}, txns, Config{MaxDaysAfterCharge: 3})
	require.True(t, results[0].Matched())
}

func TestMatchPrefersClosestDate(t *testing.T) {
	charge := records.Charge{OrderID: "O1", AmountCents: 2000, Date: date(2024, 3, 1)}
	txns := []records.Transaction{
		{ID: "far", AmountCents: 2000, PostedDate: date(2024, 3, 3)},
		{ID: "near", AmountCents: 2000, PostedDate: date(2024, 3, 1)},
	}

	results := Match([]records.Charge{charge}, txns, Config{MaxDaysAfterCharge: 3})
	require.True(t, results[0].Matched())
	assert.Equal(t, "near", results[0].Transaction.ID)
}

func TestMatchAmbiguityIsReportedNotGuessed(t *testing.T) {
	charge := records.Charge{OrderID: "O1", AmountCents: 2000, Date: date(2024, 3, 1)}
	txns := []records.Transaction{
		{ID: "T1", AmountCents: 2000, PostedDate: date(2024, 3, 2)},
		{ID: "T2", AmountCents: 2000, PostedDate: date(2024, 3, 2)},
	}

	results := Match([]records.Charge{charge}, txns, Config{MaxDaysAfterCharge: 3})
	require.False(t, results[0].Matched())
	assert.Equal(t, enums.UnmatchedReasonAmbiguous, results[0].Reason)
}

func TestMatchAtMostOneClaimPerTransaction(t *testing.T) {
	chargeA := records.Charge{OrderID: "O1", AmountCents: 2000, Date: date(2024, 3, 1)}
	chargeB := records.Charge{OrderID: "O2", AmountCents: 2000, Date: date(2024, 3, 1)}
	txns := []records.Transaction{
		{ID: "T1", AmountCents: 2000, PostedDate: date(2024, 3, 2)},
	}

	results := Match([]records.Charge{chargeA, chargeB}, txns, Config{MaxDaysAfterCharge: 3})
	matched := 0
	for _, r := range results {
		if r.Matched() {
			matched++
		}
	}
	assert.Equal(t, 1, matched, "a transaction may satisfy at most one charge")
}

func TestMatchSmallAmountsClaimFirst(t *testing.T) {
	// The $8 charge has priority over the $20 one, so with both windows
	// open it claims its own posting and the $20 charge still finds its.
	small := records.Charge{OrderID: "O1", AmountCents: 800, Date: date(2024, 3, 1)}
	large := records.Charge{OrderID: "O2", AmountCents: 2000, Date: date(2024, 3, 1)}
	txns := []records.Transaction{
		{ID: "T20", AmountCents: 2000, PostedDate: date(2024, 3, 2)},
		{ID: "T8", AmountCents: 800, PostedDate: date(2024, 3, 2)},
	}

	results := Match([]records.Charge{large, small}, txns, Config{MaxDaysAfterCharge: 3})
	require.True(t, results[0].Matched())
	require.True(t, results[1].Matched())
	assert.Equal(t, "T20", results[0].Transaction.ID)
	assert.Equal(t, "T8", results[1].Transaction.ID)
}

func TestMatchExcludesTaggedTransactionsUnlessConfigured(t *testing.T) {
	charge := records.Charge{OrderID: "O1", AmountCents: 2000, Date: date(2024, 3, 1)}
	txns := []records.Transaction{
		{ID: "T1", AmountCents: 2000, PostedDate: date(2024, 3, 2), TaggedByTool: true},
	}

	results := Match([]records.Charge{charge}, txns, Config{MaxDaysAfterCharge: 3})
	require.False(t, results[0].Matched())

	results = Match([]records.Charge{charge}, txns, Config{MaxDaysAfterCharge: 3, IncludeTagged: true})
	require.True(t, results[0].Matched())
}

func TestMatchPrefersPostingAfterChargeOnEqualDistance(t *testing.T) {
	charge := records.Charge{OrderID: "O1", AmountCents: 2000, Date: date(2024, 3, 10)}
	txns := []records.Transaction{
		{ID: "before", AmountCents: 2000, PostedDate: date(2024, 3, 9)},
		{ID: "after", AmountCents: 2000, PostedDate: date(2024, 3, 11)},
	}

	results := Match([]records.Charge{charge}, txns, Config{MaxDaysAfterCharge: 3, GraceDaysBefore: 1})
	require.True(t, results[0].Matched())
	assert.Equal(t, "after", results[0].Transaction.ID)
}
