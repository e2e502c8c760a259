package pdfmaker

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/poetrynook/pdfmaker/internal/markup"
	"github.com/poetrynook/pdfmaker/internal/render"
	"github.com/poetrynook/pdfmaker/internal/store"
	"github.com/poetrynook/pdfmaker/internal/textnorm"
)

// Cover layout in points.
const (
	coverTop        = 200 // cover text starts here, from the top edge
	descriptionSize = 20
	coverTitleSize  = 30
	footerFirstPage = 2 // the cover has no footer
	defaultCreator  = "pdfmaker"
)

// Compile-time check that the default factory matches BackendFactory.
var _ BackendFactory = newPDFBackend

// Compiler turns books into stored PDF files. It holds only configuration;
// every compilation gets its own interpreter and backend, so one Compiler
// may be used from several goroutines.
type Compiler struct {
	log          *zap.Logger
	root         string
	page         *PageSettings
	fontSettings FontSettings
	footer       Footer
	contents     Contents
	cover        Cover
	newBackend   BackendFactory
	now          func() time.Time

	fonts render.FontSet
	store *store.Materializer
}

// NewCompiler creates a Compiler with default configuration.
// Use options to customize behavior (e.g., WithStorageRoot, WithFonts, WithFooter).
// Returns error if the page settings are invalid or a font cannot be loaded.
func NewCompiler(opts ...Option) (*Compiler, error) {
	c := &Compiler{
		log:        zap.NewNop(),
		page:       DefaultPageSettings(),
		footer:     Footer{PageNumbers: true},
		contents:   Contents{Title: render.DefaultContentsLayout().Title, Section: markup.DefaultSection},
		cover:      Cover{Presenter: DefaultPresenter, DefaultTitle: DefaultTitle},
		newBackend: newPDFBackend,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.page.Validate(); err != nil {
		return nil, err
	}

	mainFont, codeFont := render.DefaultMainFont, render.DefaultCodeFont
	if c.fontSettings.Main != "" {
		mainFont.Name = c.fontSettings.Main
	}
	if c.fontSettings.Code != "" {
		codeFont.Name = c.fontSettings.Code
	}
	fonts, err := render.ResolveFonts(c.fontSettings.Dirs, mainFont, codeFont)
	if err != nil {
		return nil, err
	}
	for _, f := range []render.Font{fonts.Main, fonts.Code} {
		if f.Fallback {
			c.log.Warn("font not found, using built-in fallback",
				zap.String("family", f.Family),
				zap.Strings("dirs", c.fontSettings.Dirs))
		}
	}
	c.fonts = fonts
	c.store = store.New(c.root)

	return c, nil
}

func newPDFBackend(opts render.PDFOptions) (render.Backend, error) {
	return render.NewPDF(opts)
}

// Markup builds the intermediate markup of a book without rendering it.
func (c *Compiler) Markup(book Book) (string, error) {
	if err := book.Validate(); err != nil {
		return "", err
	}

	name := book.Poet.Name
	if name == "" {
		name = DefaultPoetName
	}
	bio, err := textnorm.Apply(book.Format, book.Poet.Bio)
	if err != nil {
		return "", fmt.Errorf("poet %q biography: %w", name, err)
	}

	poems := make([]string, 0, len(book.Poems))
	for i, p := range book.Poems {
		body, err := textnorm.Apply(book.Format, p.Body)
		if err != nil {
			return "", fmt.Errorf("poem %d %q: %w", i+1, p.Title, err)
		}
		poems = append(poems, markup.BuildPoem(p.Title, body, p.Year))
	}

	bioBlock := markup.BuildBiography(name, bio, book.Poet.Birth, book.Poet.Death)
	return markup.BuildBook(bioBlock, poems, c.contents.Section).String(), nil
}

// Request builds the compilation request of a book: its markup, cover
// texts and storage target.
func (c *Compiler) Request(book Book) (Request, error) {
	doc, err := c.Markup(book)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Title:       book.Title,
		Description: book.Description,
		Folder:      book.Folder,
		FolderInner: book.FolderInner,
		Document:    doc,
	}
	if req.Description == "" {
		req.Description = c.cover.Presenter
	}
	if req.Folder == "" {
		req.Folder = string(book.Kind)
	}

	switch book.Kind {
	case BookClassic:
		if req.Title == "" {
			name := book.Poet.Name
			if name == "" {
				name = DefaultPoetName
			}
			req.Title = classicTitlePrefix + name
		}
		req.Filename = req.Title
	case BookMember:
		if req.Title == "" {
			req.Title = c.cover.DefaultTitle
		}
		req.Filename, err = memberFilename(req.Title, book.FilenameSuffix, c.now())
		if err != nil {
			return Request{}, err
		}
	}
	return req, nil
}

// Compile builds, renders and stores a book.
func (c *Compiler) Compile(ctx context.Context, book Book) (*Result, error) {
	req, err := c.Request(book)
	if err != nil {
		return nil, err
	}
	return c.CompileRequest(ctx, req)
}

// CompileRequest interprets, renders and stores one request. The context is
// checked before interpretation and before the write; nothing is stored
// when an error is returned.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Compiler) CompileRequest(ctx context.Context, req Request) (result *Result, err error) {
	log := c.log.With(zap.String("compilation", uuid.NewString()))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
			log.Error("compilation panicked", zap.Any("panic", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rendered, err := c.render(log, req)
	if err != nil {
		log.Error("rendering failed", zap.Error(err))
		return nil, err
	}

	stored, err := c.store.Materialize(ctx, rendered.Data, store.Target{
		Filename:    req.Filename,
		Folder:      req.Folder,
		FolderInner: req.FolderInner,
	})
	if err != nil {
		log.Error("storing failed", zap.Error(err))
		return nil, err
	}

	log.Info("book compiled",
		zap.String("path", stored.Path),
		zap.Int64("size", stored.Size),
		zap.Int("pages", rendered.Pages),
		zap.Int("headings", len(rendered.Headings)),
		zap.Int("warnings", len(rendered.Warnings)),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{
		Path:     stored.Path,
		Size:     stored.Size,
		Digest:   stored.Digest,
		Headings: rendered.Headings,
		Pages:    rendered.Pages,
		Warnings: rendered.Warnings,
	}, nil
}

// Render compiles a request to PDF bytes without storing it.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Compiler) Render(req Request) (rendered *Rendered, err error) {
	log := c.log.With(zap.String("compilation", uuid.NewString()))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
			log.Error("compilation panicked", zap.Any("panic", r))
		}
	}()

	return c.render(log, req)
}

// render lays out the cover, the contents page and the body on a fresh
// backend. Page numbers in the contents are placeholders the backend fills
// in when the document is finished.
func (c *Compiler) render(log *zap.Logger, req Request) (*Rendered, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prog, err := markup.Interpret(log, markup.NewDocument(req.Document))
	if err != nil {
		return nil, err
	}
	log.Debug("markup interpreted",
		zap.Int("ops", len(prog.Ops)),
		zap.Int("headings", len(prog.Headings)))

	page := c.page.toPage()
	b, err := c.newBackend(render.PDFOptions{
		Page:  page,
		Fonts: c.fonts,
		Footer: render.Footer{
			Lines:       c.footer.Lines,
			PageNumbers: c.footer.PageNumbers,
			FirstPage:   footerFirstPage,
		},
		Title:   req.Title,
		Author:  req.Description,
		Creator: defaultCreator,
		Created: c.now(),
	})
	if err != nil {
		return nil, err
	}

	// Cover
	b.NewPage()
	if gap := coverTop - page.Top; gap > 0 {
		b.Space(gap)
	}
	b.Text(render.Span{Text: req.Description, Size: descriptionSize, Justify: markup.JustifyCenter})
	b.Text(render.Span{Text: req.Title, Size: coverTitleSize, Justify: markup.JustifyCenter})

	// Contents
	b.NewPage()
	layout := render.DefaultContentsLayout()
	layout.Title = c.contents.Title
	render.Contents(b, prog.Headings, layout)

	// Body
	b.NewPage()
	b.StartPageNumbers()
	render.Play(b, prog.Ops)
	b.StopPageNumbers()

	var buf bytes.Buffer
	if err := b.Finish(&buf); err != nil {
		return nil, err
	}

	headings := make([]Heading, len(prog.Headings))
	for i, h := range prog.Headings {
		headings[i] = Heading{Anchor: h.Anchor, Level: h.Level, Title: h.Title}
	}
	return &Rendered{
		Data:     buf.Bytes(),
		Headings: headings,
		Pages:    b.PageCount(),
		Warnings: prog.Warnings,
	}, nil
}
