package markup

import (
	"fmt"
	"strings"
)

// Directive is one of the seven markup directives.
type Directive int

// Directives, in the order they are documented.
const (
	AlignLeft Directive = iota + 1
	AlignCenter
	NewPage
	CodeFont
	MainFont
	LegacyBegin
	LegacyEnd
)

// directiveTokens maps each directive to its exact line token.
var directiveTokens = map[Directive]string{
	AlignLeft:   "#AL",
	AlignCenter: "#AC",
	NewPage:     "#NP",
	CodeFont:    "#C",
	MainFont:    "#c",
	LegacyBegin: "#X",
	LegacyEnd:   "#x",
}

var directiveNames = map[Directive]string{
	AlignLeft:   "align-left",
	AlignCenter: "align-center",
	NewPage:     "new-page",
	CodeFont:    "code-font",
	MainFont:    "main-font",
	LegacyBegin: "legacy-begin",
	LegacyEnd:   "legacy-end",
}

var tokenDirectives = func() map[string]Directive {
	m := make(map[string]Directive, len(directiveTokens))
	for d, tok := range directiveTokens {
		m[tok] = d
	}
	return m
}()

// Token returns the line token for d, or "" for an invalid directive.
func (d Directive) Token() string {
	return directiveTokens[d]
}

func (d Directive) String() string {
	if name, ok := directiveNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Directive(%d)", int(d))
}

// ParseDirective reports whether line is exactly a directive token.
// Tokens are case sensitive: "#C" and "#c" are different directives.
func ParseDirective(line string) (Directive, bool) {
	d, ok := tokenDirectives[line]
	return d, ok
}

// LineKind classifies a markup line.
type LineKind int

const (
	LineText LineKind = iota
	LineDirective
	LineHeading
)

// Line is a classified markup line.
type Line struct {
	Kind      LineKind
	Directive Directive // LineDirective only
	Level     int       // LineHeading only: 1 or 2
	Text      string    // heading title or plain text
}

// ParseLine classifies a single line. A trailing carriage return is ignored.
func ParseLine(raw string) Line {
	line := strings.TrimRight(raw, "\r")
	if d, ok := ParseDirective(line); ok {
		return Line{Kind: LineDirective, Directive: d}
	}
	if isHeading(line) {
		level := 2
		if line[0] == '1' {
			level = 1
		}
		return Line{Kind: LineHeading, Level: level, Text: line[2 : len(line)-1]}
	}
	return Line{Kind: LineText, Text: line}
}

// isHeading reports whether line has the shape <digit>'<'...'>'.
func isHeading(line string) bool {
	if len(line) < 3 {
		return false
	}
	return line[0] >= '0' && line[0] <= '9' && line[1] == '<' && line[len(line)-1] == '>'
}

// HeadingLine formats a heading line. Levels other than 1 are written as 2.
func HeadingLine(level int, title string) string {
	if level == 1 {
		return "1<" + title + ">"
	}
	return "2<" + title + ">"
}
