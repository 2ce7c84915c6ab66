package mintpaper

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Slugify converts a title or tag to a URL-safe slug. Letters and digits of
// any script are kept, so "Go 语言" becomes "go-语言". Whitespace turns into
// hyphens and other punctuation is dropped.
func Slugify(s string) string {
	s = lower.String(norm.NFKC.String(strings.TrimSpace(s)))
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			b.WriteRune(r)
		case r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	return b.String()
}

// SlugifyAll slugifies every entry of tags, preserving order.
func SlugifyAll(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = Slugify(t)
	}
	return out
}
