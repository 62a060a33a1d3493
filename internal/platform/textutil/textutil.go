package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeEmail trims, NFC-normalizes and lowercases an email address so
// that the unique index in the store compares canonical forms.
func NormalizeEmail(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// NormalizeTerm canonicalizes a user-supplied search term before it is used
// in a LIKE pattern.
func NormalizeTerm(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
