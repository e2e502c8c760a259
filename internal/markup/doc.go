// Package markup defines the line-oriented book markup and the two stages
// around it: the builder that writes it and the interpreter that reads it.
//
// A markup document is a sequence of lines. Each line is one of:
//
//	#AL #AC #NP #C #c #X #x    directive (the whole line is the token)
//	1<Title>                   level-1 heading
//	2<Title>                   level-2 heading (any digit other than 1)
//	anything else              plain text, drawn as-is
//
// The interpreter makes one forward pass over the lines, keeping a small
// typesetting state (face, justification, size) and emitting render
// operations. Headings receive anchor ids 1..N in discovery order; the
// collected heading records feed the table of contents.
//
// Lines between #X and #x form a legacy block. Its content is discarded
// without being evaluated and a warning is recorded.
package markup
