package store

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Filename limits.
const (
	MaxFilenameRunes = 150
	DefaultFilename  = "Poetry Nook Collection"
)

// SanitizeFilename makes a display title safe as a file name. Entities are
// decoded and the text composed (NFC), then every rune other than letters, digits, '_', whitespace and
// - . , ( ) & becomes '_', whitespace runs become one space, and the result
// is trimmed and cut to MaxFilenameRunes runes. An empty result is replaced
// by DefaultFilename.
func SanitizeFilename(name string) string {
	name = norm.NFC.String(html.UnescapeString(name))

	var b strings.Builder
	b.Grow(len(name))
	space := false
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		case unicode.IsLetter(r), unicode.IsDigit(r), strings.ContainsRune("_-.,()&", r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		space = false
	}

	out := strings.TrimSpace(b.String())
	if runes := []rune(out); len(runes) > MaxFilenameRunes {
		out = strings.TrimSpace(string(runes[:MaxFilenameRunes]))
	}
	if out == "" || out == "." || out == ".." {
		return DefaultFilename
	}
	return out
}
