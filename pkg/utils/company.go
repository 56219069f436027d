// Package utils provides small shared helpers: company-name sanitization
// and sentence-fragment extraction for article summaries.
package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes accented characters and drops the combining marks,
// so "Société Générale" becomes "Societe Generale".
var foldAccents = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeCompanyName normalizes a user-supplied company name: accents are
// folded to ASCII, punctuation is dropped, and runs of whitespace collapse
// to a single space. Returns "" for inputs with no usable characters.
func SanitizeCompanyName(name string) string {
	folded, _, err := transform.String(foldAccents, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Everything else (punctuation, symbols) is dropped.
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// CompanyCacheKey returns the lowercase form used to key run caches.
func CompanyCacheKey(name string) string {
	return strings.ToLower(SanitizeCompanyName(name))
}
