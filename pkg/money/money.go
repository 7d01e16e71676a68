// Package money holds the fixed-point currency helpers. All engine math happens
// on int64 cents; decimals appear only at the parsing and formatting edges.
package money

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var centFactor = decimal.NewFromInt(100)

// Cents decodes a JSON amount that is either a raw integer cent count or a
// currency string such as "$12.00". Snapshot exports from different tools
// disagree on which form they emit, so the record model accepts both.
type Cents int64

// UnmarshalJSON implements json.Unmarshaler.
func (c *Cents) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		cents, err := ParseCents(raw)
		if err != nil {
			return err
		}
		*c = Cents(cents)
		return nil
	}
	var cents int64
	if err := json.Unmarshal(data, &cents); err != nil {
		return err
	}
	*c = Cents(cents)
	return nil
}

// Int64 returns the plain cent count.
func (c Cents) Int64() int64 {
	return int64(c)
}

// ParseCents converts a currency string such as "$12.00", "1,234.56" or
// "-8.40" into exact cents. Grouping commas and a single leading currency
// symbol are tolerated. An empty string parses as zero.
func ParseCents(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	negative := false
	if strings.HasPrefix(trimmed, "-") {
		negative = true
		trimmed = trimmed[1:]
	}
	trimmed = strings.TrimPrefix(trimmed, "$")

	dec, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", value, err)
	}
	cents := dec.Mul(centFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-cent precision", value)
	}
	if negative {
		return -cents.IntPart(), nil
	}
	return cents.IntPart(), nil
}

// FormatCents renders cents as a dollar string, e.g. 1250 -> "$12.50",
// -840 -> "-$8.40".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Abs returns the magnitude of a cents amount.
func Abs(cents int64) int64 {
	if cents < 0 {
		return -cents
	}
	return cents
}
