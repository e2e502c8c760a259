package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/poetrynook/pdfmaker"
	"github.com/poetrynook/pdfmaker/internal/textnorm"
	"github.com/poetrynook/pdfmaker/internal/yamlutil"
)

// Manifest errors.
var (
	ErrManifest  = errors.New("invalid book manifest")
	ErrNoCatalog = errors.New("manifest references catalog entries but no catalog is configured")
)

// Source is the read side of a catalog, as needed to resolve manifests.
type Source interface {
	Poet(ctx context.Context, id int64) (*Poet, error)
	PoemsByIDs(ctx context.Context, ids []int64) ([]Poem, error)
	PoemsByPoet(ctx context.Context, poetID int64) ([]Poem, error)
}

var _ Source = (*Catalog)(nil)

// Manifest describes one book in YAML. Poet and poems either carry their
// text inline or reference catalog entries by id; inline fields override
// catalog fields.
//
//	kind: classic
//	poet: {id: 7}
//	poems:
//	  - id: 12
//	  - title: Dawn
//	    body: "Light<br>rises"
type Manifest struct {
	Kind           string         `yaml:"kind"` // classic (default) or member
	Title          string         `yaml:"title"`
	Description    string         `yaml:"description"`
	Folder         string         `yaml:"folder"`
	FolderInner    string         `yaml:"folderInner"`
	FilenameSuffix string         `yaml:"filenameSuffix"`
	Format         string         `yaml:"format"` // of inline text: html (default), markdown, text
	Poet           ManifestPoet   `yaml:"poet"`
	Poems          []ManifestPoem `yaml:"poems"`

	// Path is the file the manifest was read from.
	Path string `yaml:"-"`
}

// ManifestPoet is the poet of a manifest.
type ManifestPoet struct {
	ID    int64  `yaml:"id"`
	Name  string `yaml:"name"`
	Bio   string `yaml:"bio"`
	Birth string `yaml:"birth"`
	Death string `yaml:"death"`
}

// ManifestPoem is one poem of a manifest.
type ManifestPoem struct {
	ID    int64  `yaml:"id"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Year  string `yaml:"year"`
}

// Resolved is a manifest turned into a book.
type Resolved struct {
	Book pdfmaker.Book
	// Skipped lists poem ids the catalog does not know.
	Skipped []int64
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if err := yamlutil.ReadStrict(path, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifest, path, err)
	}
	m.Path = path
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the kind, the format and the poem entries.
func (m *Manifest) Validate() error {
	switch pdfmaker.BookKind(strings.ToLower(m.Kind)) {
	case "", pdfmaker.BookClassic, pdfmaker.BookMember:
	default:
		return fmt.Errorf("%w: kind %q (must be classic or member)", ErrManifest, m.Kind)
	}
	if _, err := textnorm.Apply(m.Format, ""); err != nil {
		return fmt.Errorf("%w: %w", ErrManifest, err)
	}
	if m.Poet.ID < 0 {
		return fmt.Errorf("%w: negative poet id %d", ErrManifest, m.Poet.ID)
	}
	for i, p := range m.Poems {
		if p.ID < 0 {
			return fmt.Errorf("%w: poem %d has negative id %d", ErrManifest, i+1, p.ID)
		}
		if p.ID == 0 && strings.TrimSpace(p.Body) == "" && p.Title == "" {
			return fmt.Errorf("%w: poem %d has neither an id nor text", ErrManifest, i+1)
		}
	}
	return nil
}

// usesCatalog reports whether any entry references the catalog.
func (m *Manifest) usesCatalog() bool {
	if m.Poet.ID > 0 {
		return true
	}
	for _, p := range m.Poems {
		if p.ID > 0 {
			return true
		}
	}
	return false
}

// Resolve fills catalog references from src and returns the book. Inline
// text is normalized according to the manifest format, so the book's text
// is uniformly HTML like catalog text. A classic book of a catalog poet
// without poems collects all of the poet's poems, and is stored under the
// poet's id unless a folder is given.
func (m *Manifest) Resolve(ctx context.Context, src Source) (*Resolved, error) {
	if m.usesCatalog() && src == nil {
		return nil, ErrNoCatalog
	}

	kind := pdfmaker.BookKind(strings.ToLower(m.Kind))
	if kind == "" {
		kind = pdfmaker.BookClassic
	}
	book := pdfmaker.Book{
		Kind:           kind,
		Title:          m.Title,
		Description:    m.Description,
		Folder:         m.Folder,
		FolderInner:    m.FolderInner,
		FilenameSuffix: m.FilenameSuffix,
		Format:         textnorm.FormatHTML,
	}

	poet, err := m.resolvePoet(ctx, src)
	if err != nil {
		return nil, err
	}
	book.Poet = poet

	res := &Resolved{}
	switch {
	case len(m.Poems) == 0 && m.Poet.ID > 0 && kind == pdfmaker.BookClassic:
		poems, err := src.PoemsByPoet(ctx, m.Poet.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range poems {
			book.Poems = append(book.Poems, pdfmaker.Poem{Title: p.Title, Body: p.Body, Year: p.Year})
		}
	default:
		book.Poems, res.Skipped, err = m.resolvePoems(ctx, src)
		if err != nil {
			return nil, err
		}
	}

	if kind == pdfmaker.BookClassic && book.FolderInner == "" && m.Poet.ID > 0 {
		book.FolderInner = strconv.FormatInt(m.Poet.ID, 10)
	}

	res.Book = book
	return res, nil
}

func (m *Manifest) resolvePoet(ctx context.Context, src Source) (pdfmaker.Poet, error) {
	var poet pdfmaker.Poet
	if m.Poet.ID > 0 {
		p, err := src.Poet(ctx, m.Poet.ID)
		if err != nil {
			return poet, err
		}
		poet = pdfmaker.Poet{Name: p.Name, Bio: p.Bio, Birth: p.Birth, Death: p.Death}
	}

	if m.Poet.Name != "" {
		poet.Name = m.Poet.Name
	}
	if m.Poet.Bio != "" {
		bio, err := textnorm.Apply(m.Format, m.Poet.Bio)
		if err != nil {
			return poet, fmt.Errorf("%w: poet biography: %w", ErrManifest, err)
		}
		poet.Bio = bio
	}
	if m.Poet.Birth != "" {
		poet.Birth = m.Poet.Birth
	}
	if m.Poet.Death != "" {
		poet.Death = m.Poet.Death
	}
	return poet, nil
}

func (m *Manifest) resolvePoems(ctx context.Context, src Source) ([]pdfmaker.Poem, []int64, error) {
	var ids []int64
	for _, p := range m.Poems {
		if p.ID > 0 {
			ids = append(ids, p.ID)
		}
	}

	byID := make(map[int64]Poem, len(ids))
	if len(ids) > 0 {
		found, err := src.PoemsByIDs(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range found {
			byID[p.ID] = p
		}
	}

	var (
		poems   []pdfmaker.Poem
		skipped []int64
	)
	for i, mp := range m.Poems {
		var poem pdfmaker.Poem
		if mp.ID > 0 {
			stored, ok := byID[mp.ID]
			if !ok {
				skipped = append(skipped, mp.ID)
				continue
			}
			poem = pdfmaker.Poem{Title: stored.Title, Body: stored.Body, Year: stored.Year}
		}

		if mp.Title != "" {
			poem.Title = mp.Title
		}
		if mp.Body != "" {
			body, err := textnorm.Apply(m.Format, mp.Body)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: poem %d: %w", ErrManifest, i+1, err)
			}
			poem.Body = body
		}
		if mp.Year != "" {
			poem.Year = mp.Year
		}
		poems = append(poems, poem)
	}
	return poems, skipped, nil
}
