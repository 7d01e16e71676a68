// Package charges derives expected settlement events from order records.
// Orders may ship in separate installments, so one order can yield several
// charges; each refund is its own charge.
package charges

import (
	"sort"
	"time"

	"github.com/angelmondragon/ledgertag/internal/records"
	"github.com/angelmondragon/ledgertag/pkg/money"
)

// PrecisionRisk describes an order whose charges do not sum to its recorded
// total within tolerance. Such charges still attempt matching.
type PrecisionRisk struct {
	OrderID       string
	ExpectedCents int64
	ActualCents   int64
	ItemCount     int
}

type groupKey struct {
	orderID string
	date    time.Time
}

// Build groups items by (order id, shipment date) into charges, appends one
// negative charge per refund, and validates each order's charge sum against
// its recorded total. Output is sorted ascending by date, then order id, then
// amount, so a given snapshot always produces the same sequence.
func Build(orders []records.Order, items []records.Item, refunds []records.Refund, tolerancePerItemCents int64) ([]records.Charge, []PrecisionRisk) {
	grouped := make(map[groupKey][]records.Item)
	keys := make([]groupKey, 0)
	for _, item := range items {
		date := item.OrderDate
		if item.ShipDate != nil {
			date = *item.ShipDate
		}
		key := groupKey{orderID: item.OrderID, date: date}
		if _, seen := grouped[key]; !seen {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], item)
	}

	charges := make([]records.Charge, 0, len(keys)+len(refunds))
	for _, key := range keys {
		group := grouped[key]
		var total int64
		for _, item := range group {
			total += item.TotalCents
		}
		charges = append(charges, records.Charge{
			OrderID:     key.orderID,
			AmountCents: total,
			Date:        key.date,
			Items:       group,
		})
	}

	for i := range refunds {
		refund := refunds[i]
		charges = append(charges, records.Charge{
			OrderID:     refund.OrderID,
			AmountCents: -refund.AmountCents,
			Date:        refund.Date,
			Refund:      &refund,
		})
	}

	risks := flagPrecisionRisks(orders, charges, tolerancePerItemCents)

	sort.SliceStable(charges, func(i, j int) bool {
		if !charges[i].Date.Equal(charges[j].Date) {
			return charges[i].Date.Before(charges[j].Date)
		}
		if charges[i].OrderID != charges[j].OrderID {
			return charges[i].OrderID < charges[j].OrderID
		}
		return charges[i].AmountCents < charges[j].AmountCents
	})

	return charges, risks
}

// flagPrecisionRisks compares each order's order-side charge sum against the
// recorded order total. Tolerance scales with item count: promotions and tax
// rounding accumulate per line. Refund charges are excluded from the sum.
func flagPrecisionRisks(orders []records.Order, charges []records.Charge, tolerancePerItemCents int64) []PrecisionRisk {
	type orderSum struct {
		cents int64
		items int
	}
	sums := make(map[string]orderSum, len(orders))
	for i := range charges {
		if charges[i].IsRefund() {
			continue
		}
		sum := sums[charges[i].OrderID]
		sum.cents += charges[i].AmountCents
		sum.items += len(charges[i].Items)
		sums[charges[i].OrderID] = sum
	}

	risky := make(map[string]bool)
	risks := make([]PrecisionRisk, 0)
	for _, order := range orders {
		sum, ok := sums[order.ID]
		if !ok {
			continue
		}
		tolerance := tolerancePerItemCents * int64(sum.items)
		if money.Abs(sum.cents-order.TotalCents) <= tolerance {
			continue
		}
		risky[order.ID] = true
		risks = append(risks, PrecisionRisk{
			OrderID:       order.ID,
			ExpectedCents: order.TotalCents,
			ActualCents:   sum.cents,
			ItemCount:     sum.items,
		})
	}
	sort.Slice(risks, func(i, j int) bool { return risks[i].OrderID < risks[j].OrderID })

	for i := range charges {
		if risky[charges[i].OrderID] && !charges[i].IsRefund() {
			charges[i].PrecisionRisk = true
		}
	}
	return risks
}
