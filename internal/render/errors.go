package render

import "errors"

// Sentinel errors for rendering.
var (
	ErrFontUnavailable = errors.New("font unavailable")
	ErrInvalidPage     = errors.New("invalid page settings")
	ErrRender          = errors.New("rendering failed")
)
