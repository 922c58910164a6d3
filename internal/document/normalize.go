package document

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,])`)
)

// Normalize collapses the whitespace and punctuation artifacts left behind
// by binary-format extraction: runs of whitespace become a single space,
// whitespace immediately before '.' or ',' is removed, and the result is
// trimmed.
func Normalize(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
