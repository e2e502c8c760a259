package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FontKind says how a resolved font is loaded into the document.
type FontKind int

const (
	// FontBuiltin is one of the PDF core fonts; nothing is embedded.
	FontBuiltin FontKind = iota
	// FontDefinition is a gofpdf JSON metrics file with its compressed
	// font program (generated by makefont).
	FontDefinition
	// FontTrueType is a UTF-8 TrueType font embedded as a subset.
	FontTrueType
)

// coreFonts are the fonts every PDF reader provides.
var coreFonts = map[string]string{
	"courier":      "Courier",
	"helvetica":    "Helvetica",
	"arial":        "Arial",
	"times":        "Times",
	"symbol":       "Symbol",
	"zapfdingbats": "ZapfDingbats",
}

// FontSpec names a font and the core font to use when it cannot be found.
type FontSpec struct {
	Name     string
	Fallback string
}

// DefaultMainFont and DefaultCodeFont are the faces used without configuration.
var (
	DefaultMainFont = FontSpec{Name: "Times", Fallback: "Times"}
	DefaultCodeFont = FontSpec{Name: "Courier", Fallback: "Courier"}
)

// Font is a resolved font ready to be registered with a document.
type Font struct {
	Family string
	Kind   FontKind
	Source string // file path, or "builtin"
	// Fallback is set when the requested font was not found and the
	// fallback core font took its place.
	Fallback bool

	definition []byte
	program    []byte
}

// Builtin reports whether f is a core font.
func (f Font) Builtin() bool { return f.Kind == FontBuiltin }

// FontSet holds the two faces of a book.
type FontSet struct {
	Main Font
	Code Font
}

// ResolveFonts resolves the main and code faces. See ResolveFont.
func ResolveFonts(dirs []string, main, code FontSpec) (FontSet, error) {
	m, err := ResolveFont(dirs, main)
	if err != nil {
		return FontSet{}, err
	}
	c, err := ResolveFont(dirs, code)
	if err != nil {
		return FontSet{}, err
	}
	return FontSet{Main: m, Code: c}, nil
}

// ResolveFont finds spec.Name. Core font names resolve immediately. Otherwise
// each directory is searched in order for <name>.ttf, then <name>.json. When
// no file is found the fallback core font is used; ErrFontUnavailable is
// returned only when the fallback is not a core font either.
func ResolveFont(dirs []string, spec FontSpec) (Font, error) {
	if family, ok := coreFonts[strings.ToLower(spec.Name)]; ok {
		return Font{Family: family, Kind: FontBuiltin, Source: "builtin"}, nil
	}

	if spec.Name != "" {
		for _, dir := range dirs {
			if f, ok, err := loadFontFile(dir, spec.Name); err != nil {
				return Font{}, err
			} else if ok {
				return f, nil
			}
		}
	}

	if family, ok := coreFonts[strings.ToLower(spec.Fallback)]; ok {
		return Font{Family: family, Kind: FontBuiltin, Source: "builtin", Fallback: true}, nil
	}
	return Font{}, fmt.Errorf("%w: %q not found in %s and no built-in fallback",
		ErrFontUnavailable, spec.Name, strings.Join(dirs, ", "))
}

// loadFontFile looks for name in dir. A missing file is not an error; an
// unreadable or malformed one is.
func loadFontFile(dir, name string) (Font, bool, error) {
	family := strings.ToLower(filepath.Base(name))

	ttf := filepath.Join(dir, name+".ttf")
	if data, err := os.ReadFile(ttf); err == nil { // #nosec G304 -- font directories are configured by the operator
		return Font{Family: family, Kind: FontTrueType, Source: ttf, program: data}, true, nil
	} else if !os.IsNotExist(err) {
		return Font{}, false, fmt.Errorf("%w: reading %s: %v", ErrFontUnavailable, ttf, err)
	}

	def := filepath.Join(dir, name+".json")
	data, err := os.ReadFile(def) // #nosec G304 -- font directories are configured by the operator
	if os.IsNotExist(err) {
		return Font{}, false, nil
	}
	if err != nil {
		return Font{}, false, fmt.Errorf("%w: reading %s: %v", ErrFontUnavailable, def, err)
	}

	var meta struct {
		File string `json:"File"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return Font{}, false, fmt.Errorf("%w: parsing %s: %v", ErrFontUnavailable, def, err)
	}

	f := Font{Family: family, Kind: FontDefinition, Source: def, definition: data}
	if meta.File != "" {
		prog := filepath.Join(dir, filepath.Base(meta.File))
		f.program, err = os.ReadFile(prog) // #nosec G304 -- sibling of the definition file
		if err != nil {
			return Font{}, false, fmt.Errorf("%w: reading %s: %v", ErrFontUnavailable, prog, err)
		}
	}
	return f, true, nil
}
