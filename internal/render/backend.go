package render

import (
	"io"

	"github.com/poetrynook/pdfmaker/internal/markup"
)

// Span is one block of text drawn at the current position. Text wraps at the
// right margin.
type Span struct {
	Text       string
	Size       float64
	Justify    markup.Justification
	Face       markup.Face
	Inset      float64 // extra left indent in points
	RightInset float64 // extra right indent in points
	Heading    int     // heading level, 0 for body text
	Anchor     int     // anchor of the heading, 0 for body text
}

// LeaderLine is a table of contents row: a title linked to an anchor, a
// dotted fill and the anchor's page number ending at RightEdge.
type LeaderLine struct {
	Title     string
	Size      float64
	Indent    float64
	RightEdge float64
	Anchor    int
}

// Backend is the page-drawing port.
type Backend interface {
	// NewPage starts a new page; drawing continues at its top margin.
	NewPage()
	// Text draws a span and advances below it.
	Text(s Span)
	// Space advances the current position by dy points.
	Space(dy float64)
	// Leader draws a table of contents row.
	Leader(l LeaderLine)
	// MarkAnchor places anchor id at the current position.
	MarkAnchor(id int)
	// PageRef returns a placeholder resolved to id's page number in Finish.
	PageRef(id int) string
	// StartPageNumbers numbers pages from the current page, which shows as 1.
	StartPageNumbers()
	// StopPageNumbers stops numbering after the current page.
	StopPageNumbers()
	// PageCount returns the number of pages started so far.
	PageCount() int
	// Finish resolves page references and writes the document.
	Finish(w io.Writer) error
}

// SpanFromOp converts a text operation to a span.
func SpanFromOp(op markup.Op) Span {
	return Span{
		Text:       op.Text,
		Size:       op.Size,
		Justify:    op.Justify,
		Face:       op.Face,
		Inset:      op.Inset,
		RightInset: op.RightInset,
		Heading:    op.Heading,
		Anchor:     op.Anchor,
	}
}

// Play draws ops in order. Page breaks are deferred until something is drawn
// after them, so a trailing break never leaves an empty last page.
// Consecutive breaks before content still produce blank pages.
func Play(b Backend, ops []markup.Op) {
	pending := false
	flush := func() {
		if pending {
			b.NewPage()
			pending = false
		}
	}

	for _, op := range ops {
		switch op.Kind {
		case markup.OpPageBreak:
			flush()
			pending = true
		case markup.OpAnchor:
			flush()
			b.MarkAnchor(op.Anchor)
		case markup.OpText:
			flush()
			b.Text(SpanFromOp(op))
		case markup.OpLegacyBegin, markup.OpLegacyEnd:
			// Legacy blocks carry no content.
		}
	}
}
