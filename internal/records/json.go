package records

import (
	"encoding/json"

	"github.com/angelmondragon/ledgertag/pkg/money"
)

// Snapshot exports disagree on amount encoding: some emit integer cents,
// others dollar strings like "$12.00". Each record type routes its amount
// fields through money.Cents so both forms decode to the same int64 cents.

// UnmarshalJSON implements json.Unmarshaler.
func (i *Item) UnmarshalJSON(data []byte) error {
	type alias Item
	aux := struct {
		*alias
		UnitPriceCents money.Cents `json:"unit_price_cents"`
		TotalCents     money.Cents `json:"total_cents"`
	}{alias: (*alias)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.UnitPriceCents = aux.UnitPriceCents.Int64()
	i.TotalCents = aux.TotalCents.Int64()
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	aux := struct {
		*alias
		TotalCents money.Cents `json:"total_cents"`
	}{alias: (*alias)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.TotalCents = aux.TotalCents.Int64()
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Refund) UnmarshalJSON(data []byte) error {
	type alias Refund
	aux := struct {
		*alias
		AmountCents money.Cents `json:"amount_cents"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.AmountCents = aux.AmountCents.Int64()
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	aux := struct {
		*alias
		AmountCents money.Cents `json:"amount_cents"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.AmountCents = aux.AmountCents.Int64()
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SplitLine) UnmarshalJSON(data []byte) error {
	type alias SplitLine
	aux := struct {
		*alias
		AmountCents money.Cents `json:"amount_cents"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.AmountCents = aux.AmountCents.Int64()
	return nil
}
