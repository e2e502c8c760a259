package pdfmaker

import (
	"fmt"
	"strings"

	"github.com/poetrynook/pdfmaker/internal/render"
	"github.com/poetrynook/pdfmaker/internal/textnorm"
)

// Page size constants.
const (
	PageSizeA4     = render.PageA4
	PageSizeA5     = render.PageA5
	PageSizeLetter = render.PageLetter
	PageSizeLegal  = render.PageLegal
)

// Orientation constants.
const (
	OrientationPortrait  = render.Portrait
	OrientationLandscape = render.Landscape
)

// Margin bounds in points.
const (
	MinMargin = 0
	MaxMargin = 200
)

// Book defaults.
const (
	DefaultPresenter    = "Poetry Nook presents"
	DefaultTitle        = "Poetry Nook Collection"
	DefaultPoetName     = "Unknown Poet"
	DefaultMemberSuffix = "auto"
	classicTitlePrefix  = "Poetry of "
)

// BookKind selects how a book is titled and where it is stored.
type BookKind string

const (
	// BookClassic collects the poems of one poet. Stored under "classic",
	// titled "Poetry of <poet>" unless a title is given.
	BookClassic BookKind = "classic"
	// BookMember is a reader's own selection. Stored under "member"; the
	// filename carries a date suffix.
	BookMember BookKind = "member"
)

// Poet is the subject of the biography page.
type Poet struct {
	Name  string
	Bio   string // HTML, Markdown or plain text, see Book.Format
	Birth string // MM/DD/YYYY dates are spelled out, anything else is kept
	Death string
}

// Poem is one poem of a book.
type Poem struct {
	Title string
	Body  string
	Year  string // "1920" or a range such as "1920-1935"
}

// Book is everything needed to compile one poetry book.
type Book struct {
	Kind        BookKind
	Title       string // Cover title (optional, see BookKind)
	Description string // Line above the title (default: Compiler presenter)
	Poet        Poet
	Poems       []Poem

	Folder         string // Storage folder (default: the kind)
	FolderInner    string // Storage subfolder, e.g. poet or member id
	FilenameSuffix string // Member books only; "auto", "auto:PRESET" or "auto:LAYOUT" resolve to today
	Format         string // Format of Bio and poem bodies: "html" (default), "markdown", "text"
}

// Validate checks the kind, the text format and that there is something
// to compile. Folder names are checked when the book is stored.
func (b *Book) Validate() error {
	if b == nil {
		return ErrEmptyBook
	}
	switch b.Kind {
	case BookClassic, BookMember:
	default:
		return fmt.Errorf("%w: %q (must be classic or member)", ErrInvalidBookKind, b.Kind)
	}
	switch strings.ToLower(b.Format) {
	case "", textnorm.FormatHTML, textnorm.FormatMarkdown, "md", "text":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, b.Format)
	}
	if len(b.Poems) == 0 && strings.TrimSpace(b.Poet.Bio) == "" {
		return ErrEmptyBook
	}
	return nil
}

// Request is one compilation: a markup document and where to store it.
type Request struct {
	Title       string // Cover title
	Description string // Line above the title
	Folder      string
	FolderInner string
	Filename    string // Sanitized before use
	Document    string // Intermediate markup
}

// Validate checks that the request has a document.
func (r *Request) Validate() error {
	if r == nil || strings.TrimSpace(r.Document) == "" {
		return ErrEmptyDocument
	}
	return nil
}

// Heading is one contents entry.
type Heading struct {
	Anchor int
	Level  int
	Title  string
}

// Rendered is a compiled document that has not been stored.
type Rendered struct {
	Data     []byte
	Headings []Heading
	Pages    int
	Warnings []string
}

// Result describes a stored book.
type Result struct {
	Path     string // Relative to the storage root, slash separated
	Size     int64
	Digest   string // BLAKE3-256, hex
	Headings []Heading
	Pages    int
	Warnings []string
}

// PageSettings configures paper and margins. Margins are in points.
type PageSettings struct {
	Size        string // "a4", "a5", "letter", "legal"
	Orientation string // "portrait", "landscape"
	Top         float64
	Bottom      float64
	Left        float64
	Right       float64
}

// DefaultPageSettings returns A4 portrait with the book margins.
func DefaultPageSettings() *PageSettings {
	p := render.DefaultPage()
	return &PageSettings{
		Size:        p.Size,
		Orientation: p.Orientation,
		Top:         p.Top,
		Bottom:      p.Bottom,
		Left:        p.Left,
		Right:       p.Right,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	for _, m := range []float64{p.Top, p.Bottom, p.Left, p.Right} {
		if m < MinMargin || m > MaxMargin {
			return fmt.Errorf("%w: %.1f (must be between %d and %d)", ErrInvalidMargin, m, MinMargin, MaxMargin)
		}
	}

	return nil
}

func (p *PageSettings) toPage() render.Page {
	if p == nil {
		return render.DefaultPage()
	}
	return render.Page{
		Size:        strings.ToLower(p.Size),
		Orientation: strings.ToLower(p.Orientation),
		Top:         p.Top,
		Bottom:      p.Bottom,
		Left:        p.Left,
		Right:       p.Right,
	}
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeA4, PageSizeA5, PageSizeLetter, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// FontSettings names the body and code faces. Dirs are searched in order
// for <name>.ttf or <name>.json; a missing face falls back to Times or Courier.
type FontSettings struct {
	Dirs []string
	Main string
	Code string
}

// Footer configures the lines at the bottom of every page but the cover.
type Footer struct {
	Lines       []string
	PageNumbers bool // Numbered from the first body page
}

// Contents configures the contents page and the poems section line.
type Contents struct {
	Title   string // Default: "Contents"
	Section string // Default: "Poems"
}

// Cover configures the cover page defaults.
type Cover struct {
	Presenter    string // Default description
	DefaultTitle string // Member books without a title
}
