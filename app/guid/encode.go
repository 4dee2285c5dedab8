// Package guid resolves externally-sourced feed entry identifiers to
// stored documents. Document identifiers evolved over time (URL-safe
// encoded, raw, or only present as an indexed column), so lookups walk
// an ordered chain of strategies instead of assuming one scheme.
package guid

import (
	"encoding/base64"
	"strings"
)

// Encode derives the document identifier for a GUID: standard base64
// with '+' and '/' swapped for '-' and '_' and the padding stripped.
// Existing rows were written under exactly this form, so the mapping
// must stay byte-stable.
func Encode(guid string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.TrimSpace(guid)))
}
