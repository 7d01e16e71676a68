// Package records holds the normalized, immutable record model for one
// reconciliation pass. Amounts are int64 cents; nothing here touches floats.
package records

import (
	"time"

	"github.com/angelmondragon/ledgertag/pkg/enums"
)

// Item is one product line of an order.
type Item struct {
	OrderID        string     `json:"order_id" validate:"required"`
	Name           string     `json:"name" validate:"required"`
	UnitPriceCents int64      `json:"unit_price_cents" validate:"gte=0"`
	Quantity       int        `json:"quantity" validate:"gt=0"`
	TotalCents     int64      `json:"total_cents" validate:"gte=0"`
	// CategoryCode is the hierarchical commodity code from the source catalog.
	CategoryCode string     `json:"category_code"`
	OrderDate    time.Time  `json:"order_date" validate:"required"`
	ShipDate     *time.Time `json:"ship_date,omitempty"`
}

// Order is identified uniquely per source account. Items reference it by ID.
type Order struct {
	ID         string    `json:"id" validate:"required"`
	TotalCents int64     `json:"total_cents" validate:"gte=0"`
	Date       time.Time `json:"date" validate:"required"`
}

// Refund is a negative-amount record tied to an order and optionally one item.
// AmountCents carries the positive magnitude; the sign is applied when the
// refund becomes a charge.
type Refund struct {
	ID          string    `json:"id" validate:"required"`
	OrderID     string    `json:"order_id" validate:"required"`
	ItemName    string    `json:"item_name,omitempty"`
	AmountCents int64     `json:"amount_cents" validate:"gt=0"`
	Date        time.Time `json:"date" validate:"required"`
}

// Transaction is an external financial posting. The engine never mutates one;
// it only emits Updates referencing them.
type Transaction struct {
	ID          string    `json:"id" validate:"required"`
	AmountCents int64     `json:"amount_cents" validate:"gte=0"`
	PostedDate  time.Time `json:"posted_date" validate:"required"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	// Splits holds the transaction's current sub-lines, when a prior pass
	// itemized it.
	Splits []SplitLine `json:"splits,omitempty"`
	// TaggedByTool marks transactions this tool has written to before.
	TaggedByTool bool `json:"tagged_by_tool"`
	// LastFingerprint is the content fingerprint of the last applied update.
	LastFingerprint string `json:"last_fingerprint,omitempty"`
}

// Charge is one expected settlement event: either a shipment grouping of an
// order's items or a single refund. Computed, never stored.
type Charge struct {
	OrderID       string
	AmountCents   int64
	Date          time.Time
	Items         []Item
	Refund        *Refund
	PrecisionRisk bool
}

// IsRefund reports whether the charge was derived from a refund record.
func (c Charge) IsRefund() bool {
	return c.Refund != nil
}

// SplitLine is one sub-line of an itemized transaction.
type SplitLine struct {
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Update is the engine's sole output type.
type Update struct {
	TransactionID string           `json:"transaction_id"`
	Kind          enums.UpdateKind `json:"kind"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	Splits        []SplitLine      `json:"splits,omitempty"`
	// Fingerprint identifies the update's content for future idempotence checks.
	Fingerprint string `json:"fingerprint"`
	// OrderID and ChargeDate record which charge produced the update.
	OrderID    string    `json:"order_id"`
	ChargeDate time.Time `json:"charge_date"`
}
