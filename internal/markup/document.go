package markup

import "strings"

// Document is an immutable markup document.
type Document struct {
	text string
}

// NewDocument wraps markup text.
func NewDocument(text string) Document {
	return Document{text: text}
}

// String returns the markup text as written.
func (d Document) String() string {
	return d.text
}

// Lines splits the document on "\n". An empty document has no lines.
func (d Document) Lines() []string {
	if d.text == "" {
		return nil
	}
	return strings.Split(d.text, "\n")
}
