// Package slug produces the comparison keys used to match recipe ingredients against the base
// ingredient catalog.
//
// Make must behave exactly like the slugify() SQL function of the destination schema: matching is
// by equality of keys, so any divergence silently breaks it.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Make returns the normalized key for text: NFKD decomposed with every non-ASCII rune dropped,
// lowercased, each whitespace run replaced by a single dash, and everything outside [a-z0-9-]
// removed. It never fails; unsupported input simply shrinks, possibly to "".
func Make(text string) string {
	decomposed := norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(decomposed))
	inSpace := false
	for _, r := range decomposed {
		if r > unicode.MaxASCII {
			// dropped runes do not end a whitespace run
			continue
		}
		if isSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	// \s also covers the ASCII information separators
	return r >= 0x1c && r <= 0x1f
}
