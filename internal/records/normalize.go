package records

import (
	"regexp"
	"strings"
)

// leadingQty matches the "3x " style quantity prefix stamped onto itemized
// descriptions.
var leadingQty = regexp.MustCompile(`^\d+x `)

// NormalizeItemName canonicalizes a product name for lookups: lowercase,
// collapsed whitespace, and any leading quantity prefix removed. Both the
// resolver and the personalization learner must agree on this form or learned
// overrides never fire.
func NormalizeItemName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.Join(strings.Fields(normalized), " ")
	return leadingQty.ReplaceAllString(normalized, "")
}
