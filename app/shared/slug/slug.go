// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	disallowed = regexp.MustCompile(`[^\w\s-]`)
	separators = regexp.MustCompile(`[-\s]+`)
)

// Make converts a title into a lowercase, hyphenated ASCII slug.
// Accented letters are decomposed and reduced to their base letter; any other
// non-ASCII character is dropped.
func Make(title string) string {
	decomposed := norm.NFKD.String(title)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	s := strings.ToLower(b.String())
	s = disallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}
