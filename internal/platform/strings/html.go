package strings

import (
	"html"
	std "strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// StripHTML flattens an upstream HTML fragment into plain text suitable for
// storage: tags removed, entities decoded, unicode NFC-normalized, control
// runes dropped, and runs of whitespace collapsed to single spaces.
func StripHTML(s string) string {
	if s == "" {
		return s
	}

	// drop tags; <br> and block closers count as whitespace so words don't fuse
	var b std.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	out := html.UnescapeString(b.String())
	out = norm.NFC.String(out)
	return CollapseSpaces(out)
}

// CollapseSpaces trims s and folds every run of unicode whitespace or control
// runes into a single space
func CollapseSpaces(s string) string {
	var b std.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
