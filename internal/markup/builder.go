package markup

import (
	"strings"

	"github.com/poetrynook/pdfmaker/internal/dateutil"
	"github.com/poetrynook/pdfmaker/internal/textnorm"
)

// DefaultSection is the centered line that opens the poems section.
const DefaultSection = "Poems"

// BuildBiography writes the biography block: the poet's name as a level-1
// heading, an optional centered life-dates line, then the normalized
// biography text left aligned.
func BuildBiography(name, bio, birth, death string) string {
	var b strings.Builder
	b.WriteString(HeadingLine(1, name))
	b.WriteString("\n")

	birth = dateutil.FormatLifeDate(birth)
	death = dateutil.FormatLifeDate(death)
	if birth != "" || death != "" {
		b.WriteString(AlignCenter.Token())
		b.WriteString("\n\n")
		b.WriteString(lifeDates(birth, death))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(AlignLeft.Token())

	if text := escapeMarkup(textnorm.Normalize(bio)); text != "" {
		b.WriteString("\n")
		b.WriteString(text)
	}
	return b.String()
}

func lifeDates(birth, death string) string {
	switch {
	case death == "":
		return "Born " + birth
	case birth == "":
		return "Died " + death
	default:
		return birth + " - " + death
	}
}

// BuildPoem writes one poem block: a level-2 heading for a non-empty title,
// the normalized body, the year in parentheses when known, and a page break.
// A year range such as "1920-1935" is reduced to its ending year. Only a
// titled block starts with a line break; BuildBook separates the others.
func BuildPoem(title, body, year string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("\n")
		b.WriteString(HeadingLine(2, title))
		b.WriteString("\n\n")
	}

	b.WriteString(escapeMarkup(textnorm.Normalize(body)))

	if year != "" && strings.Contains(year, "-") {
		year = dateutil.ReduceYear(year)
	}
	year = strings.TrimSpace(year)
	if year != "" {
		b.WriteString("\n\n(")
		b.WriteString(year)
		b.WriteString(")")
	}

	b.WriteString("\n")
	b.WriteString(NewPage.Token())
	return b.String()
}

// BuildBook joins a biography block and poem blocks into a document. The
// biography page is followed by a page break, then the section line centered
// and the poems in the given order. An empty section uses DefaultSection.
func BuildBook(bio string, poems []string, section string) Document {
	if section == "" {
		section = DefaultSection
	}

	var b strings.Builder
	b.WriteString(bio)
	b.WriteString("\n" + NewPage.Token() + "\n")
	b.WriteString("\n" + AlignCenter.Token() + "\n")
	b.WriteString("\n" + section + "\n")
	for _, p := range poems {
		if !strings.HasPrefix(p, "\n") && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
		b.WriteString(p)
	}
	return NewDocument(b.String())
}

// textEscape starts a catalog line that would otherwise read as a directive
// or a heading. It renders as a space.
const textEscape = "\u00a0"

// escapeMarkup keeps catalog text from acting as markup: a poem line "#X"
// must not open a legacy block, and "1<Name>" must not add a heading.
func escapeMarkup(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if ParseLine(line).Kind != LineText {
			lines[i] = textEscape + line
		}
	}
	return strings.Join(lines, "\n")
}
