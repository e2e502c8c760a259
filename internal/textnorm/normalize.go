package textnorm

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// breakKind describes how a tag separates the text around it.
type breakKind int

const (
	breakNone breakKind = iota
	breakLine
	breakParagraph
)

// blockTags lists the elements whose boundaries become line breaks.
var blockTags = map[atom.Atom]breakKind{
	atom.P:          breakParagraph,
	atom.Blockquote: breakParagraph,
	atom.H1:         breakParagraph,
	atom.H2:         breakParagraph,
	atom.H3:         breakParagraph,
	atom.H4:         breakParagraph,
	atom.H5:         breakParagraph,
	atom.H6:         breakParagraph,
	atom.Pre:        breakParagraph,
	atom.Div:        breakLine,
	atom.Li:         breakLine,
	atom.Ul:         breakLine,
	atom.Ol:         breakLine,
	atom.Tr:         breakLine,
	atom.Section:    breakLine,
	atom.Article:    breakLine,
}

// Normalize converts rich text to normalized plain lines. It never fails;
// malformed markup is treated as text wherever the tokenizer does so. The
// result is a fixed point: normalizing it again changes nothing.
func Normalize(raw string) string {
	out := raw
	// A pass differs from its input only after the previous pass decoded an
	// entity level, and each level is shorter than its source, so len(raw)
	// passes plus two settling passes always reach the fixed point.
	for range len(raw) + 2 {
		next := normalizeOnce(out)
		if next == out {
			return next
		}
		out = next
	}
	return out
}

// normalizeOnce runs a single tokenize, strip, trim and collapse pass.
func normalizeOnce(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	skipDepth := 0
	absorb := false

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return collapseLines(norm.NFC.String(b.String()))

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := string(z.Text())
			if absorb {
				text = absorbNewline(text)
			}
			absorb = false
			b.WriteString(text)

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Br:
				b.WriteByte('\n')
				absorb = true
			case a == atom.Script || a == atom.Style:
				if tt == html.StartTagToken {
					skipDepth++
				}
			case blockTags[a] != breakNone:
				ensureNewline(&b)
				absorb = true
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Script || a == atom.Style:
				if skipDepth > 0 {
					skipDepth--
				}
			case blockTags[a] == breakParagraph:
				ensureNewline(&b)
				b.WriteByte('\n')
				absorb = true
			case blockTags[a] == breakLine:
				ensureNewline(&b)
				absorb = true
			}
		}
	}
}

// ensureNewline ends the current line unless the output is empty or already
// sits at the start of a line.
func ensureNewline(b *strings.Builder) {
	s := b.String()
	if s == "" || strings.HasSuffix(s, "\n") {
		return
	}
	b.WriteByte('\n')
}

// absorbNewline drops horizontal whitespace and at most one newline from the
// start of text emitted right after a break, so "a<br>\nb" is a single break.
func absorbNewline(text string) string {
	rest := strings.TrimLeft(text, " \t")
	if strings.HasPrefix(rest, "\n") {
		return rest[1:]
	}
	return text
}

// collapseLines trims every line, keeps at most one blank line in a row and
// drops blank lines at both ends.
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(out) == 0 || blank {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, line)
	}
	if n := len(out); n > 0 && out[n-1] == "" {
		out = out[:n-1]
	}
	return strings.Join(out, "\n")
}
