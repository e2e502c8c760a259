// Package dateutil formats the dates printed in books: the life dates stored
// with each poet and the "auto" suffix appended to member book names.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDateFormat indicates a layout that cannot be converted.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxLayoutLength limits layout strings read from manifests and config.
const MaxLayoutLength = 50

// layoutTokens pairs layout tokens with Go reference components, longest
// first so "MMMM" is matched before "MM".
var layoutTokens = []struct {
	token string
	ref   string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// ParseLayout converts a layout such as "D MMMM YYYY" to a Go time layout.
// Text in square brackets is copied literally; any other character that is
// not part of a token passes through.
func ParseLayout(layout string) (string, error) {
	switch {
	case layout == "":
		return "", fmt.Errorf("%w: empty layout", ErrInvalidDateFormat)
	case len(layout) > MaxLayoutLength:
		return "", fmt.Errorf("%w: layout exceeds %d characters", ErrInvalidDateFormat, MaxLayoutLength)
	}

	var b strings.Builder
	for rest := layout; rest != ""; {
		if rest[0] == '[' {
			literal, after, ok := strings.Cut(rest[1:], "]")
			if !ok {
				return "", fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidDateFormat, layout)
			}
			b.WriteString(literal)
			rest = after
			continue
		}

		n, ref := 1, rest[:1]
		for _, t := range layoutTokens {
			if strings.HasPrefix(rest, t.token) {
				n, ref = len(t.token), t.ref
				break
			}
		}
		b.WriteString(ref)
		rest = rest[n:]
	}
	return b.String(), nil
}

func mustLayout(layout string) string {
	goLayout, err := ParseLayout(layout)
	if err != nil {
		panic(err)
	}
	return goLayout
}
