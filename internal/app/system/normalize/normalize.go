// internal/app/system/normalize/normalize.go

// Package normalize provides input normalization helpers applied before
// validation and storage. Normalizing in one place keeps the stores free
// of trim/lowercase noise and keeps uniqueness checks honest.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are stored and
// compared in this normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims surrounding whitespace. Case is preserved for display;
// case-insensitive uniqueness goes through the folded username_ci field.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Text trims surrounding whitespace and collapses internal runs of
// whitespace to single spaces. Used for poll titles and option text.
func Text(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
