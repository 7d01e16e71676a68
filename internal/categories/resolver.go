package categories

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ledgertag/internal/records"
	"github.com/angelmondragon/ledgertag/pkg/enums"
	"github.com/angelmondragon/ledgertag/pkg/logger"
)

// Resolver turns a matched charge into the target description/category or
// split plan for its transaction.
type Resolver struct {
	logg            *logger.Logger
	defaultCategory string
	returnCategory  string
}

// ResolverParams configure a Resolver.
type ResolverParams struct {
	Logger          *logger.Logger
	DefaultCategory string
	ReturnCategory  string
}

// NewResolver wires a resolver. The default category backstops table misses;
// the return category labels refund updates.
func NewResolver(params ResolverParams) (*Resolver, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DefaultCategory == "" {
		return nil, fmt.Errorf("default category required")
	}
	if params.ReturnCategory == "" {
		return nil, fmt.Errorf("return category required")
	}
	return &Resolver{
		logg:            params.Logger,
		defaultCategory: params.DefaultCategory,
		returnCategory:  params.ReturnCategory,
	}, nil
}

// Resolve computes the update for one matched charge/transaction pair.
// Overrides maps normalized item names to personalized categories and takes
// precedence over the static table.
func (r *Resolver) Resolve(ctx context.Context, charge records.Charge, txn records.Transaction, overrides map[string]string) records.Update {
	update := records.Update{
		TransactionID: txn.ID,
		OrderID:       charge.OrderID,
		ChargeDate:    charge.Date,
	}

	switch {
	case charge.IsRefund():
		update.Kind = enums.UpdateKindRetag
		update.Description = refundDescription(charge)
		update.Category = r.returnCategory

	case len(charge.Items) == 1:
		item := charge.Items[0]
		update.Kind = enums.UpdateKindRetag
		update.Description = itemDescription(item)
		update.Category = r.categoryFor(ctx, item, overrides)

	default:
		update.Kind = enums.UpdateKindSplit
		update.Splits = r.splitLines(ctx, charge, txn, overrides)
	}
	return update
}

// splitLines builds one sub-line per item. Sub-line amounts are the items'
// own totals; any residual against the transaction amount lands on the
// largest sub-line so the split always sums exactly.
func (r *Resolver) splitLines(ctx context.Context, charge records.Charge, txn records.Transaction, overrides map[string]string) []records.SplitLine {
	lines := make([]records.SplitLine, 0, len(charge.Items))
	var sum int64
	largest := 0
	for i, item := range charge.Items {
		line := records.SplitLine{
			AmountCents: item.TotalCents,
			Description: itemDescription(item),
			Category:    r.categoryFor(ctx, item, overrides),
		}
		sum += line.AmountCents
		if line.AmountCents > amountAt(lines, largest) {
			largest = i
		}
		lines = append(lines, line)
	}

	if residual := txn.AmountCents - sum; residual != 0 {
		lines[largest].AmountCents += residual
	}
	return lines
}

// itemDescription renders one item's ledger description: the normalized name
// with a quantity prefix for multiples. The normalizer strips the prefix
// again, so personalization lookups still key on the bare name.
func itemDescription(item records.Item) string {
	name := records.NormalizeItemName(item.Name)
	if item.Quantity > 1 {
		return fmt.Sprintf("%dx %s", item.Quantity, name)
	}
	return name
}

func amountAt(lines []records.SplitLine, idx int) int64 {
	if idx >= len(lines) {
		return -1
	}
	return lines[idx].AmountCents
}

func (r *Resolver) categoryFor(ctx context.Context, item records.Item, overrides map[string]string) string {
	name := records.NormalizeItemName(item.Name)
	if category, ok := overrides[name]; ok {
		return category
	}
	if category, ok := Lookup(item.CategoryCode); ok {
		return category
	}
	ctx = r.logg.WithFields(ctx, map[string]any{
		"category_code": item.CategoryCode,
		"item":          name,
	})
	r.logg.Debug(ctx, "no category mapping, using fallback")
	return r.defaultCategory
}

func refundDescription(charge records.Charge) string {
	if charge.Refund != nil && charge.Refund.ItemName != "" {
		return "Refund: " + records.NormalizeItemName(charge.Refund.ItemName)
	}
	return "Refund: order " + charge.OrderID
}
