package markup

// allDirectives lists every directive in declaration order.
func allDirectives() []Directive {
	return []Directive{AlignLeft, AlignCenter, NewPage, CodeFont, MainFont, LegacyBegin, LegacyEnd}
}

// countLines returns how many lines of d have the given kind, and for
// headings, the given level (0 matches any level).
func countLines(d Document, kind LineKind, level int) int {
	n := 0
	for _, raw := range d.Lines() {
		l := ParseLine(raw)
		if l.Kind != kind {
			continue
		}
		if kind == LineHeading && level != 0 && l.Level != level {
			continue
		}
		n++
	}
	return n
}

// countDirective returns how many lines of d are dir.
func countDirective(d Document, dir Directive) int {
	n := 0
	for _, raw := range d.Lines() {
		if l := ParseLine(raw); l.Kind == LineDirective && l.Directive == dir {
			n++
		}
	}
	return n
}
