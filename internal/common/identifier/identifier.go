// Package identifier derives the application identifier shown to applicants.
package identifier

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Prefix starts every identifier.
const Prefix = "ESE"

// Generate returns Prefix, the phone string exactly as given, and the upper-cased
// first letter of fullName. A blank name yields Prefix and phone only.
func Generate(phone, fullName string) string {
	name := strings.TrimLeftFunc(fullName, unicode.IsSpace)
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return Prefix + phone
	}
	return Prefix + phone + string(unicode.ToUpper(r))
}
