// Package normalize trims and canonicalises free-form input before it is
// validated and stored.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses internal runs of whitespace.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Kode trims and uppercases a record code ("spmi-01" becomes "SPMI-01").
func Kode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Digits keeps only ASCII digits (NIDN is often typed with spaces or dots).
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// QueryParam trims a query-string value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
