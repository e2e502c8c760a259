package pdfmaker

import (
	"time"

	"go.uber.org/zap"

	"github.com/poetrynook/pdfmaker/internal/render"
)

// BackendFactory creates the page-drawing backend for one compilation.
// It is called once per document; backends are never shared.
type BackendFactory func(opts render.PDFOptions) (render.Backend, error)

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger. Compilations log with a "compilation" field.
func WithLogger(log *zap.Logger) Option {
	return func(c *Compiler) {
		if log != nil {
			c.log = log
		}
	}
}

// WithStorageRoot sets the private storage root books are written under.
func WithStorageRoot(root string) Option {
	return func(c *Compiler) {
		c.root = root
	}
}

// WithPage sets paper and margins. Validated by NewCompiler.
func WithPage(p PageSettings) Option {
	return func(c *Compiler) {
		c.page = &p
	}
}

// WithFonts sets the body and code faces.
func WithFonts(f FontSettings) Option {
	return func(c *Compiler) {
		c.fontSettings = f
	}
}

// WithFooter sets the footer lines and page numbering.
func WithFooter(f Footer) Option {
	return func(c *Compiler) {
		c.footer = f
	}
}

// WithContents sets the contents title and the poems section line.
// Empty fields keep their defaults.
func WithContents(ct Contents) Option {
	return func(c *Compiler) {
		if ct.Title != "" {
			c.contents.Title = ct.Title
		}
		if ct.Section != "" {
			c.contents.Section = ct.Section
		}
	}
}

// WithCover sets the default presenter line and member book title.
// Empty fields keep their defaults.
func WithCover(cv Cover) Option {
	return func(c *Compiler) {
		if cv.Presenter != "" {
			c.cover.Presenter = cv.Presenter
		}
		if cv.DefaultTitle != "" {
			c.cover.DefaultTitle = cv.DefaultTitle
		}
	}
}

// WithBackend replaces the gofpdf backend, e.g. with a recorder in tests.
func WithBackend(f BackendFactory) Option {
	return func(c *Compiler) {
		if f != nil {
			c.newBackend = f
		}
	}
}

// WithClock sets the time source for creation dates and filename suffixes.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) {
		if now != nil {
			c.now = now
		}
	}
}
