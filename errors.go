package pdfmaker

import (
	"errors"

	"github.com/poetrynook/pdfmaker/internal/dateutil"
	"github.com/poetrynook/pdfmaker/internal/markup"
	"github.com/poetrynook/pdfmaker/internal/render"
	"github.com/poetrynook/pdfmaker/internal/store"
	"github.com/poetrynook/pdfmaker/internal/textnorm"
)

// Sentinel errors for library operations.
var (
	ErrEmptyDocument = errors.New("markup document cannot be empty")
	ErrInternal      = errors.New("internal error")

	// Book validation errors.
	ErrInvalidBookKind = errors.New("invalid book kind")
	ErrEmptyBook       = errors.New("book has no poems and no biography")
	ErrUnknownFormat   = textnorm.ErrUnknownFormat
	ErrMarkdown        = textnorm.ErrMarkdown
	ErrInvalidSuffix   = dateutil.ErrInvalidDateFormat

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Rendering errors.
	ErrFontUnavailable = render.ErrFontUnavailable
	ErrRender          = render.ErrRender
	ErrInterpreterUsed = markup.ErrInterpreterUsed

	// Storage errors.
	ErrMaterialize   = store.ErrMaterialize
	ErrInvalidFolder = store.ErrInvalidFolder
	ErrNoStorageRoot = store.ErrNoRoot
)
