package textnorm

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdown indicates a Markdown source could not be rendered.
var ErrMarkdown = errors.New("markdown rendering failed")

// ErrUnknownFormat indicates a source format other than html or markdown.
var ErrUnknownFormat = errors.New("unknown text format")

// Source formats accepted by Apply.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// md renders poem sources. Hard wraps keep every source line a verse line.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Typographer, // curly quotes and dashes in verse
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
		gmhtml.WithXHTML(),
		// WithUnsafe is not set: raw HTML in Markdown is dropped.
	),
)

// FromMarkdown renders Markdown to HTML and normalizes the result.
func FromMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdown, err)
	}
	return Normalize(buf.String()), nil
}

// Apply normalizes raw according to its declared format. An empty format is
// treated as HTML, which also covers plain text.
func Apply(format, raw string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatHTML, "text":
		return Normalize(raw), nil
	case FormatMarkdown, "md":
		return FromMarkdown(raw)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
