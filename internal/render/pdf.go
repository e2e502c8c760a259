package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/poetrynook/pdfmaker/internal/markup"
)

// Layout constants in points.
const (
	lineSpacing   = 1.2 // line height as a multiple of the font size
	footerRuleY   = 40  // bottom rule, distance from the bottom edge
	headerRuleY   = 20  // top rule, distance from the top edge
	ruleInset     = 20  // rules run from this distance to the left and right edges
	footerTextY   = 34  // first footer line baseline, from the bottom edge
	footerStep    = 6   // baseline step between footer lines
	footerSize    = 6   // footer text size
	pageNumberX   = 500 // running page number, from the left edge
	pageNumberY   = 28  // running page number baseline, from the bottom edge
	pageNumSize   = 10  // running page number size
	pageRefWidth  = 30  // contents page number column
	numberFamily  = "Times"
	aliasTemplate = "{pg:%d}"
	unresolvedRef = "?"
)

// Footer configures the lines drawn at the bottom of every page.
type Footer struct {
	Lines       []string
	PageNumbers bool
	// FirstPage is the first page that gets a footer; earlier pages
	// (the cover) stay bare. Zero means every page.
	FirstPage int
}

// PDFOptions configures a PDF backend.
type PDFOptions struct {
	Page    Page
	Fonts   FontSet
	Footer  Footer
	Title   string
	Author  string
	Creator string
	Created time.Time
}

// PDF is the gofpdf backend. It is not safe for concurrent use; create one
// per document.
type PDF struct {
	pdf    *gofpdf.Fpdf
	fonts  FontSet
	footer Footer
	tr     func(string) string

	links   map[int]int // anchor -> gofpdf link id
	anchors map[int]int // anchor -> physical page
	refs    map[int]string

	firstNumbered int
	lastNumbered  int
}

var _ Backend = (*PDF)(nil)

// NewPDF creates an empty document. Fonts that are not built in are
// registered here so a broken font file fails before anything is drawn.
func NewPDF(opts PDFOptions) (*PDF, error) {
	if err := opts.Page.Validate(); err != nil {
		return nil, err
	}
	if opts.Fonts.Main.Family == "" {
		opts.Fonts.Main = Font{Family: "Times", Kind: FontBuiltin, Source: "builtin"}
	}
	if opts.Fonts.Code.Family == "" {
		opts.Fonts.Code = Font{Family: "Courier", Kind: FontBuiltin, Source: "builtin"}
	}

	f := gofpdf.New(opts.Page.gofpdfOrientation(), "pt", opts.Page.gofpdfSize(), "")
	f.SetMargins(opts.Page.Left, opts.Page.Top, opts.Page.Right)
	f.SetAutoPageBreak(true, opts.Page.Bottom)
	if !opts.Created.IsZero() {
		f.SetCreationDate(opts.Created)
	}
	if opts.Title != "" {
		f.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		f.SetAuthor(opts.Author, true)
	}
	if opts.Creator != "" {
		f.SetCreator(opts.Creator, true)
	}

	for _, font := range []Font{opts.Fonts.Main, opts.Fonts.Code} {
		switch font.Kind {
		case FontDefinition:
			f.AddFontFromBytes(font.Family, "", font.definition, font.program)
		case FontTrueType:
			f.AddUTF8FontFromBytes(font.Family, "", font.program)
		case FontBuiltin:
		}
	}
	if err := f.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}

	p := &PDF{
		pdf:     f,
		fonts:   opts.Fonts,
		footer:  opts.Footer,
		tr:      f.UnicodeTranslatorFromDescriptor(""),
		links:   make(map[int]int),
		anchors: make(map[int]int),
		refs:    make(map[int]string),
	}
	f.SetFooterFunc(p.drawFooter)
	return p, nil
}

// NewPage starts a page.
func (p *PDF) NewPage() {
	p.pdf.AddPage()
}

// Text draws a wrapped span. A heading that would not fit on the current
// page moves to the next one together with its anchor.
func (p *PDF) Text(s Span) {
	p.setFace(s.Face, s.Size)
	h := s.Size * lineSpacing

	if s.Anchor != 0 && !p.fits(h) {
		p.pdf.AddPage()
		p.MarkAnchor(s.Anchor)
	}
	if s.Heading > 0 {
		p.pdf.Bookmark(s.Text, s.Heading-1, -1)
	}

	left, _, right, _ := p.pdf.GetMargins()
	pageW, _ := p.pdf.GetPageSize()
	x := left + s.Inset
	p.pdf.SetX(x)
	if s.Text == "" {
		p.pdf.Ln(h)
		return
	}
	w := pageW - right - s.RightInset - x
	p.pdf.MultiCell(w, h, p.encode(s.Face, s.Text), "", alignOf(s.Justify), false)
}

// Space advances dy points down.
func (p *PDF) Space(dy float64) {
	p.pdf.Ln(dy)
}

// Leader draws a contents row: the linked title, a dotted fill, and the page
// number placeholder in a fixed column ending at l.RightEdge.
func (p *PDF) Leader(l LeaderLine) {
	p.setFace(markup.FaceMain, l.Size)
	h := l.Size * lineSpacing
	link := p.link(l.Anchor)

	left, _, _, _ := p.pdf.GetMargins()
	x := left + l.Indent
	numberX := l.RightEdge - pageRefWidth

	title := p.encode(markup.FaceMain, l.Title)
	titleW := p.pdf.GetStringWidth(title)
	if maxW := numberX - x; titleW > maxW {
		titleW = maxW
	}

	p.pdf.SetX(x)
	p.pdf.CellFormat(titleW, h, title, "", 0, "L", false, link, "")

	if fillW := numberX - p.pdf.GetX(); fillW > 0 {
		if n := int(fillW / p.pdf.GetStringWidth(".")); n > 1 {
			p.pdf.CellFormat(fillW, h, strings.Repeat(".", n-1), "", 0, "R", false, link, "")
		}
	}

	p.pdf.SetX(numberX)
	p.pdf.SetFont(numberFamily, "", l.Size)
	p.pdf.CellFormat(pageRefWidth, h, " "+p.PageRef(l.Anchor), "", 1, "L", false, link, "")
}

// MarkAnchor points anchor id at the current position.
func (p *PDF) MarkAnchor(id int) {
	p.pdf.SetLink(p.link(id), p.pdf.GetY(), -1)
	p.anchors[id] = p.pdf.PageNo()
}

// PageRef returns the placeholder for id's displayed page number.
func (p *PDF) PageRef(id int) string {
	if ref, ok := p.refs[id]; ok {
		return ref
	}
	ref := fmt.Sprintf(aliasTemplate, id)
	p.refs[id] = ref
	return ref
}

// StartPageNumbers numbers pages from the current one.
func (p *PDF) StartPageNumbers() {
	p.firstNumbered = p.pdf.PageNo()
	p.lastNumbered = 0
}

// StopPageNumbers ends numbering after the current page.
func (p *PDF) StopPageNumbers() {
	p.lastNumbered = p.pdf.PageNo()
}

// PageCount returns the number of pages so far.
func (p *PDF) PageCount() int {
	return p.pdf.PageNo()
}

// Finish substitutes page references and writes the document.
func (p *PDF) Finish(w io.Writer) error {
	for id, ref := range p.refs {
		p.pdf.RegisterAlias(ref, p.displayedPage(id))
	}
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// displayedPage is the printed number of id's page, or "?" when the anchor
// was never placed or sits before numbering started.
func (p *PDF) displayedPage(id int) string {
	page, ok := p.anchors[id]
	if !ok || p.firstNumbered == 0 || page < p.firstNumbered {
		return unresolvedRef
	}
	return strconv.Itoa(page - p.firstNumbered + 1)
}

func (p *PDF) numbered(page int) bool {
	if p.firstNumbered == 0 || page < p.firstNumbered {
		return false
	}
	return p.lastNumbered == 0 || page <= p.lastNumbered
}

// drawFooter runs when gofpdf closes each page.
func (p *PDF) drawFooter() {
	page := p.pdf.PageNo()
	if page < p.footer.FirstPage {
		return
	}

	w, h := p.pdf.GetPageSize()
	left, _, _, _ := p.pdf.GetMargins()

	p.pdf.SetLineWidth(0.5)
	p.pdf.Line(ruleInset, h-footerRuleY, w-ruleInset, h-footerRuleY)
	p.pdf.Line(ruleInset, headerRuleY, w-ruleInset, headerRuleY)

	p.setFace(markup.FaceMain, footerSize)
	for i, line := range p.footer.Lines {
		p.pdf.Text(left, h-footerTextY+float64(i*footerStep), p.encode(markup.FaceMain, line))
	}

	if p.footer.PageNumbers && p.numbered(page) {
		p.pdf.SetFont(numberFamily, "", pageNumSize)
		p.pdf.Text(pageNumberX, h-pageNumberY, strconv.Itoa(page-p.firstNumbered+1))
	}
}

func (p *PDF) fits(h float64) bool {
	_, pageH := p.pdf.GetPageSize()
	_, _, _, bottom := p.pdf.GetMargins()
	return p.pdf.GetY()+h <= pageH-bottom
}

func (p *PDF) link(id int) int {
	if l, ok := p.links[id]; ok {
		return l
	}
	l := p.pdf.AddLink()
	p.links[id] = l
	return l
}

func (p *PDF) font(face markup.Face) Font {
	if face == markup.FaceCode {
		return p.fonts.Code
	}
	return p.fonts.Main
}

func (p *PDF) setFace(face markup.Face, size float64) {
	p.pdf.SetFont(p.font(face).Family, "", size)
}

// encode converts UTF-8 to the font's encoding. TrueType fonts take UTF-8
// as is; core and definition fonts use cp1252.
func (p *PDF) encode(face markup.Face, s string) string {
	if p.font(face).Kind == FontTrueType {
		return s
	}
	return p.tr(s)
}

func alignOf(j markup.Justification) string {
	switch j {
	case markup.JustifyCenter:
		return "C"
	case markup.JustifyFull:
		return "J"
	default:
		return "L"
	}
}
