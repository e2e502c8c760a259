package markup

import (
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// BuildBiography
// ---------------------------------------------------------------------------

func TestBuildBiography(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		poet  string
		bio   string
		birth string
		death string
		want  string
	}{
		{
			name: "no dates",
			poet: "Jane Doe",
			bio:  "Line one.<br>Line two.",
			want: "1<Jane Doe>\n\n#AL\nLine one.\nLine two.",
		},
		{
			name:  "birth only",
			poet:  "Jane Doe",
			bio:   "A poet.",
			birth: "04/12/1920",
			want:  "1<Jane Doe>\n#AC\n\nBorn 12 April 1920\n\n#AL\nA poet.",
		},
		{
			name:  "death only",
			poet:  "Jane Doe",
			death: "11/02/1990",
			want:  "1<Jane Doe>\n#AC\n\nDied 2 November 1990\n\n#AL",
		},
		{
			name:  "both dates",
			poet:  "Jane Doe",
			birth: "04/12/1920",
			death: "11/02/1990",
			want:  "1<Jane Doe>\n#AC\n\n12 April 1920 - 2 November 1990\n\n#AL",
		},
		{
			name:  "unparseable date passes through",
			poet:  "Anon",
			birth: "circa 1600",
			want:  "1<Anon>\n#AC\n\nBorn circa 1600\n\n#AL",
		},
		{
			name: "markup shaped bio lines stay text",
			poet: "Jane Doe",
			bio:  "1<3>\n#NP\nwrote",
			want: "1<Jane Doe>\n\n#AL\n\u00a01<3>\n\u00a0#NP\nwrote",
		},
		{
			name: "empty bio adds no text line",
			poet: "Jane Doe",
			bio:  "  <p></p> ",
			want: "1<Jane Doe>\n\n#AL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := BuildBiography(tt.poet, tt.bio, tt.birth, tt.death)
			if got != tt.want {
				t.Errorf("BuildBiography() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestBuildBiography_DateLineIsCentered(t *testing.T) {
	t.Parallel()

	doc := NewDocument(BuildBiography("Jane Doe", "", "04/12/1920", ""))
	prog, err := Interpret(nil, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, op := range prog.Ops {
		if op.Kind == OpText && op.Text == "Born 12 April 1920" {
			if op.Justify != JustifyCenter {
				t.Errorf("date line justification = %v, want center", op.Justify)
			}
			return
		}
	}
	t.Fatal("date line not found in ops")
}

// ---------------------------------------------------------------------------
// BuildPoem
// ---------------------------------------------------------------------------

func TestBuildPoem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		body  string
		year  string
		want  string
	}{
		{
			name:  "title body and year",
			title: "Dawn",
			body:  "A.<br>B.",
			year:  "1999",
			want:  "\n2<Dawn>\n\nA.\nB.\n\n(1999)\n#NP",
		},
		{
			name:  "no year",
			title: "Dusk",
			body:  "C.",
			want:  "\n2<Dusk>\n\nC.\n#NP",
		},
		{
			name:  "year range keeps the ending year",
			title: "Seasons",
			body:  "D.",
			year:  "1920-1935",
			want:  "\n2<Seasons>\n\nD.\n\n(1935)\n#NP",
		},
		{
			name:  "spaced year range",
			title: "Seasons",
			body:  "D.",
			year:  "1920 - 1935",
			want:  "\n2<Seasons>\n\nD.\n\n(1935)\n#NP",
		},
		{
			name:  "open year range is dropped",
			title: "Seasons",
			body:  "D.",
			year:  "1920-",
			want:  "\n2<Seasons>\n\nD.\n#NP",
		},
		{
			name: "untitled poem has no heading",
			body: "E.",
			want: "E.\n#NP",
		},
		{
			name: "untitled poem with year",
			body: "E.",
			year: "1901",
			want: "E.\n\n(1901)\n#NP",
		},
		{
			name:  "directive line in body stays text",
			title: "One",
			body:  "line<br>#X<br>more",
			want:  "\n2<One>\n\nline\n\u00a0#X\nmore\n#NP",
		},
		{
			name: "heading shaped line in body stays text",
			body: "2< aside>",
			want: "\u00a02< aside>\n#NP",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := BuildPoem(tt.title, tt.body, tt.year)
			if got != tt.want {
				t.Errorf("BuildPoem() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// BuildBook
// ---------------------------------------------------------------------------

func janeDoe() Document {
	bio := BuildBiography("Jane Doe", "Line one.<br>Line two.", "", "")
	poems := []string{
		BuildPoem("Dawn", "A.<br>B.", "1999"),
		BuildPoem("Dusk", "C.", ""),
	}
	return BuildBook(bio, poems, "")
}

func TestBuildBook_JaneDoe(t *testing.T) {
	t.Parallel()

	doc := janeDoe()

	if got := countLines(doc, LineHeading, 1); got != 1 {
		t.Errorf("level-1 headings = %d, want 1", got)
	}
	if got := countLines(doc, LineHeading, 2); got != 2 {
		t.Errorf("level-2 headings = %d, want 2", got)
	}
	if got := countDirective(doc, NewPage); got != 3 {
		t.Errorf("page breaks = %d, want 3", got)
	}

	want := strings.Join([]string{
		"1<Jane Doe>",
		"",
		"#AL",
		"Line one.",
		"Line two.",
		"#NP",
		"",
		"#AC",
		"",
		"Poems",
		"",
		"2<Dawn>",
		"",
		"A.",
		"B.",
		"",
		"(1999)",
		"#NP",
		"2<Dusk>",
		"",
		"C.",
		"#NP",
	}, "\n")
	if doc.String() != want {
		t.Errorf("document =\n%s\nwant\n%s", doc, want)
	}
}

func TestBuildBook_CustomSection(t *testing.T) {
	t.Parallel()

	doc := BuildBook(BuildBiography("A", "", "", ""), nil, "Selected Verse")
	if !strings.HasSuffix(doc.String(), "\nSelected Verse\n") {
		t.Errorf("document does not end with the section line: %q", doc)
	}
	if got := countLines(doc, LineHeading, 0); got != 1 {
		t.Errorf("headings = %d, want 1", got)
	}
}

func TestBuildBook_UntitledPoems(t *testing.T) {
	t.Parallel()

	doc := BuildBook(BuildBiography("Anon", "", "", ""), []string{
		BuildPoem("", "E.", ""),
		BuildPoem("", "F.", ""),
		BuildPoem("Titled", "G.", ""),
	}, "")

	want := "\nPoems\nE.\n#NP\nF.\n#NP\n2<Titled>\n\nG.\n#NP"
	if !strings.HasSuffix(doc.String(), want) {
		t.Errorf("document =\n%q\nwant suffix\n%q", doc, want)
	}
}

func TestBuildBook_CatalogTextCannotOpenLegacyBlock(t *testing.T) {
	t.Parallel()

	doc := BuildBook(BuildBiography("Jane Doe", "", "", ""), []string{
		BuildPoem("One", "line<br>#X<br>more", ""),
		BuildPoem("Two", "last", ""),
	}, "")

	prog, err := Interpret(nil, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Headings) != 3 {
		t.Errorf("headings = %+v, want Jane Doe, One and Two", prog.Headings)
	}
	if len(prog.Warnings) != 0 {
		t.Errorf("warnings = %q, want none", prog.Warnings)
	}

	var texts []string
	for _, op := range prog.Ops {
		if op.Kind == OpText {
			texts = append(texts, op.Text)
		}
	}
	if !slices.Contains(texts, "\u00a0#X") || !slices.Contains(texts, "last") {
		t.Errorf("text ops = %q, want the escaped line and the second poem", texts)
	}
}
