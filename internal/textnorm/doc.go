// Package textnorm turns rich text from the catalog into normalized plain lines.
//
// Sources arrive as HTML fragments (editor output) or Markdown. Both end up as
// a sequence of trimmed lines joined with "\n", where:
//   - <br> and block boundaries (p, div, li, headings, blockquote) are line breaks
//   - every other tag is stripped and entities are decoded
//   - runs of blank lines collapse to one blank line
//   - leading and trailing blank lines are dropped
//   - text is in Unicode NFC
//
// Normalize is idempotent: applying it to its own output changes nothing.
package textnorm
