// Package normalize holds the canonical forms for user-entered identity
// fields so lookups and unique indexes behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are matched
// case-insensitively everywhere, so the lowercase form is what gets
// stored and indexed.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses internal runs of
// whitespace to single spaces. Case is preserved; the folded *CI shadow
// field handles case-insensitive search.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Phone trims whitespace. Digit formatting is left as entered; the UI
// owns presentation.
func Phone(s string) string {
	return strings.TrimSpace(s)
}
