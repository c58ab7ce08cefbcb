// Package htmlsanitize strips unsafe markup from free-text fields that
// arrive as HTML from the dashboard editor (case descriptions, notes).
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with scripts, event handlers, and other dangerous
// markup removed. Plain text passes through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// StripTags removes all markup, leaving only text content. Used where a
// field is defined as plain text (titles, names).
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return bluemonday.StrictPolicy().Sanitize(s)
}
