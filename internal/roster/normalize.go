package roster

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and drops combining marks, so that
// "Sergio Llull" and "Sergio Llúll" normalize to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName reduces a player name to its matching key: diacritics
// stripped, lowercased, and whitespace trimmed and collapsed. The joiner's
// entire matching policy lives here so it can be tested in isolation.
func NormalizeName(name string) string {
	stripped, _, err := transform.String(stripMarks, name)
	if err != nil {
		// Transform only fails on invalid UTF-8; fall back to the raw name.
		stripped = name
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
