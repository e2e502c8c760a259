package render

import (
	"fmt"
	"strings"
)

// Page sizes accepted by Page.Size.
const (
	PageA4     = "a4"
	PageA5     = "a5"
	PageLetter = "letter"
	PageLegal  = "legal"
)

// Orientations accepted by Page.Orientation.
const (
	Portrait  = "portrait"
	Landscape = "landscape"
)

// Page describes the paper and margins, all lengths in points.
type Page struct {
	Size        string
	Orientation string
	Top         float64
	Bottom      float64
	Left        float64
	Right       float64
}

// DefaultPage is A4 portrait with the book margins.
func DefaultPage() Page {
	return Page{
		Size:        PageA4,
		Orientation: Portrait,
		Top:         50,
		Bottom:      70,
		Left:        50,
		Right:       50,
	}
}

var gofpdfSizes = map[string]string{
	PageA4:     "A4",
	PageA5:     "A5",
	PageLetter: "Letter",
	PageLegal:  "Legal",
}

// Validate checks size, orientation and margins.
func (p Page) Validate() error {
	if _, ok := gofpdfSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: size %q (must be a4, a5, letter, or legal)", ErrInvalidPage, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case Portrait, Landscape:
	default:
		return fmt.Errorf("%w: orientation %q (must be portrait or landscape)", ErrInvalidPage, p.Orientation)
	}
	for name, v := range map[string]float64{"top": p.Top, "bottom": p.Bottom, "left": p.Left, "right": p.Right} {
		if v < 0 || v > 200 {
			return fmt.Errorf("%w: %s margin %.1f (must be between 0 and 200)", ErrInvalidPage, name, v)
		}
	}
	return nil
}

func (p Page) gofpdfSize() string {
	return gofpdfSizes[strings.ToLower(p.Size)]
}

func (p Page) gofpdfOrientation() string {
	if strings.ToLower(p.Orientation) == Landscape {
		return "L"
	}
	return "P"
}
