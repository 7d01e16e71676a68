package retag

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/angelmondragon/ledgertag/internal/records"
)

// FingerprintUpdate derives the content fingerprint of an update. Two updates
// with the same fingerprint would leave a transaction in the same state.
func FingerprintUpdate(update records.Update) string {
	return fingerprint(update.Description, update.Category, update.Splits)
}

// FingerprintCurrent derives the fingerprint of a transaction's current
// content, for drift detection against the last applied update.
func FingerprintCurrent(txn records.Transaction) string {
	return fingerprint(txn.Description, txn.Category, txn.Splits)
}

// fingerprint hashes the ordered split lines when present, else the single
// description/category pair. An itemized transaction keeps its institution
// description on the parent line, so the parent fields say nothing about
// what the tool wrote and are excluded once splits exist.
func fingerprint(description, category string, splits []records.SplitLine) string {
	var b strings.Builder
	if len(splits) > 0 {
		for _, line := range splits {
			fmt.Fprintf(&b, "%d|%s|%s\n", line.AmountCents, line.Description, line.Category)
		}
	} else {
		b.WriteString(description)
		b.WriteByte('\n')
		b.WriteString(category)
		b.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
