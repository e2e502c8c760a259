package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/poetrynook/pdfmaker/internal/markup"
	"github.com/poetrynook/pdfmaker/internal/render"
	"github.com/poetrynook/pdfmaker/internal/render/rendertest"
)

func TestContents_Layout(t *testing.T) {
	t.Parallel()

	headings := []markup.Heading{
		{Anchor: 1, Level: 1, Title: "Jane Doe", Order: 0},
		{Anchor: 2, Level: 2, Title: "Dawn", Order: 1},
	}
	layout := render.DefaultContentsLayout()

	rec := rendertest.NewRecorder()
	render.Contents(rec, headings, layout)

	if got := strings.Join(rec.Methods(), ","); got != "Text,Space,Leader,Leader" {
		t.Fatalf("calls = %s", got)
	}

	title := rec.Calls[0].Span
	if title.Text != "Contents" || title.Size != 26 || title.Justify != markup.JustifyCenter {
		t.Errorf("title span = %+v", title)
	}

	l1 := rec.Calls[2].Leader
	if l1.Title != "Jane Doe" || l1.Size != 16 || l1.Indent != 0 || l1.RightEdge != 520 || l1.Anchor != 1 {
		t.Errorf("level-1 row = %+v", l1)
	}
	l2 := rec.Calls[3].Leader
	if l2.Title != "Dawn" || l2.Size != 12 || l2.Indent != 50 || l2.RightEdge != 520 || l2.Anchor != 2 {
		t.Errorf("level-2 row = %+v", l2)
	}
}

func TestContents_NoTitle(t *testing.T) {
	t.Parallel()

	layout := render.DefaultContentsLayout()
	layout.Title = ""

	rec := rendertest.NewRecorder()
	render.Contents(rec, []markup.Heading{{Anchor: 1, Level: 1, Title: "A"}}, layout)

	if got := strings.Join(rec.Methods(), ","); got != "Leader" {
		t.Errorf("calls = %s, want Leader", got)
	}
}

func TestContents_ResolvesAfterBody(t *testing.T) {
	t.Parallel()

	prog := program(t, "1<Jane Doe>", "bio", "#NP", "2<Dawn>", "a", "#NP", "2<Dusk>", "b", "#NP")

	rec := rendertest.NewRecorder()
	rec.NewPage() // cover
	rec.NewPage() // contents
	render.Contents(rec, prog.Headings, render.DefaultContentsLayout())
	rec.NewPage()
	rec.StartPageNumbers()
	render.Play(rec, prog.Ops)
	rec.StopPageNumbers()

	var out bytes.Buffer
	if err := rec.Finish(&out); err != nil {
		t.Fatalf("finish: %v", err)
	}

	for _, want := range []string{"Jane Doe ... 1", "Dawn ... 2", "Dusk ... 3"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if rec.PageCount() != 5 {
		t.Errorf("pages = %d, want 5", rec.PageCount())
	}
}
