package render

import "github.com/poetrynook/pdfmaker/internal/markup"

// ContentsLayout sets the look of the contents page.
type ContentsLayout struct {
	Title        string
	TitleSize    float64
	Level1Size   float64
	Level2Size   float64
	Level2Indent float64
	RightEdge    float64
	TitleGap     float64
}

// DefaultContentsLayout is the layout used by the books.
func DefaultContentsLayout() ContentsLayout {
	return ContentsLayout{
		Title:        "Contents",
		TitleSize:    26,
		Level1Size:   16,
		Level2Size:   12,
		Level2Indent: 50,
		RightEdge:    520,
		TitleGap:     20,
	}
}

// Contents draws the table of contents at the current position: the title,
// then one leader line per heading in discovery order. Page numbers are
// placeholders until the backend finishes.
func Contents(b Backend, headings []markup.Heading, layout ContentsLayout) {
	if layout.Title != "" {
		b.Text(Span{
			Text:    layout.Title,
			Size:    layout.TitleSize,
			Justify: markup.JustifyCenter,
		})
		b.Space(layout.TitleGap)
	}

	for _, h := range headings {
		line := LeaderLine{
			Title:     h.Title,
			Size:      layout.Level1Size,
			RightEdge: layout.RightEdge,
			Anchor:    h.Anchor,
		}
		if h.Level != 1 {
			line.Size = layout.Level2Size
			line.Indent = layout.Level2Indent
		}
		b.Leader(line)
	}
}
