package enums

// UpdateKind distinguishes single retags from itemized splits.
type UpdateKind string

const (
	// UpdateKindRetag rewrites a transaction's description and category in place.
	UpdateKindRetag UpdateKind = "retag"
	// UpdateKindSplit divides a transaction into per-item sub-lines.
	UpdateKindSplit UpdateKind = "split"
)

// String implements fmt.Stringer.
func (u UpdateKind) String() string {
	return string(u)
}
