// Package rendertest provides an in-memory render.Backend for tests.
package rendertest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/poetrynook/pdfmaker/internal/render"
)

// Call is one recorded backend call.
type Call struct {
	Method string
	Page   int
	Span   render.Span
	Leader render.LeaderLine
	Anchor int
	Space  float64
}

// Recorder records backend calls and lays out nothing. Pages only change on
// NewPage, so page numbers are fully predictable.
type Recorder struct {
	Calls []Call

	page      int
	anchors   map[int]int
	first     int
	last      int
	FinishErr error
}

var _ render.Backend = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{anchors: make(map[int]int)}
}

func (r *Recorder) record(c Call) {
	c.Page = r.page
	r.Calls = append(r.Calls, c)
}

func (r *Recorder) NewPage() {
	r.page++
	r.record(Call{Method: "NewPage"})
}

func (r *Recorder) Text(s render.Span) { r.record(Call{Method: "Text", Span: s}) }

func (r *Recorder) Space(dy float64) { r.record(Call{Method: "Space", Space: dy}) }

func (r *Recorder) Leader(l render.LeaderLine) { r.record(Call{Method: "Leader", Leader: l}) }

func (r *Recorder) MarkAnchor(id int) {
	r.anchors[id] = r.page
	r.record(Call{Method: "MarkAnchor", Anchor: id})
}

func (r *Recorder) PageRef(id int) string { return fmt.Sprintf("{pg:%d}", id) }

func (r *Recorder) StartPageNumbers() {
	r.first = r.page
	r.record(Call{Method: "StartPageNumbers"})
}

func (r *Recorder) StopPageNumbers() {
	r.last = r.page
	r.record(Call{Method: "StopPageNumbers"})
}

func (r *Recorder) PageCount() int { return r.page }

// Finish writes one line per page with the text drawn on it, followed by the
// resolved contents rows.
func (r *Recorder) Finish(w io.Writer) error {
	if r.FinishErr != nil {
		return r.FinishErr
	}
	var b strings.Builder
	for _, c := range r.Calls {
		switch c.Method {
		case "NewPage":
			fmt.Fprintf(&b, "--- page %d\n", c.Page)
		case "Text":
			b.WriteString(c.Span.Text + "\n")
		case "Leader":
			fmt.Fprintf(&b, "%s ... %s\n", c.Leader.Title, r.DisplayedPage(c.Leader.Anchor))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DisplayedPage returns the printed page number of an anchor, or "?".
func (r *Recorder) DisplayedPage(id int) string {
	page, ok := r.anchors[id]
	if !ok || r.first == 0 || page < r.first {
		return "?"
	}
	return strconv.Itoa(page - r.first + 1)
}

// Methods returns the recorded method names in order.
func (r *Recorder) Methods() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Method
	}
	return out
}

// Texts returns the text of every Text call.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Method == "Text" {
			out = append(out, c.Span.Text)
		}
	}
	return out
}
