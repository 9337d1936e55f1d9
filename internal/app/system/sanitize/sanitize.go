// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-supplied text. Poll titles and
// option text are plain text, so the strict policy (remove everything)
// applies rather than a UGC policy.
package sanitize

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and decodes any entities the sanitizer
// escaped, returning plain text. "Tom & Jerry" survives the round trip;
// "<script>…</script>" does not.
func Text(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}
