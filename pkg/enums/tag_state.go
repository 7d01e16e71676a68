package enums

// TagState classifies who last touched a transaction's description/category.
type TagState string

const (
	// TagStateUntagged indicates the tool has never written to the transaction.
	TagStateUntagged TagState = "untagged"
	// TagStateTaggedByTool indicates the transaction still carries the tool's last update.
	TagStateTaggedByTool TagState = "tagged_by_tool"
	// TagStateTaggedExternally indicates the user edited the transaction after the tool tagged it.
	TagStateTaggedExternally TagState = "tagged_externally"
)

// String implements fmt.Stringer.
func (s TagState) String() string {
	return string(s)
}
