package catalog

import (
	"context"
	"fmt"

	"github.com/poetrynook/pdfmaker/internal/yamlutil"
)

// Dump is the YAML exchange format of the catalog.
type Dump struct {
	Poets []DumpPoet `yaml:"poets"`
}

// DumpPoet is a poet with its poems.
type DumpPoet struct {
	Poet  `yaml:",inline"`
	Poems []Poem `yaml:"poems,omitempty"`
}

// Counts reports how many entries an import wrote.
type Counts struct {
	Poets int
	Poems int
}

// LoadDump reads a catalog dump file.
func LoadDump(path string) (*Dump, error) {
	var d Dump
	if err := yamlutil.ReadStrict(path, &d); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidEntry, path, err)
	}
	return &d, nil
}

// Import writes every poet and poem of d in one transaction. Entries with
// an ID replace the stored entry; the others are appended. Poems take the
// ID of the poet they are listed under.
func (c *Catalog) Import(ctx context.Context, d *Dump) (Counts, error) {
	var n Counts
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, dp := range d.Poets {
		poetID, err := addPoet(ctx, tx, dp.Poet)
		if err != nil {
			return Counts{}, err
		}
		n.Poets++
		for _, p := range dp.Poems {
			p.PoetID = poetID
			if _, err := addPoem(ctx, tx, p); err != nil {
				return Counts{}, err
			}
			n.Poems++
		}
	}

	if err := tx.Commit(); err != nil {
		return Counts{}, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return n, nil
}

// Export reads the whole catalog back as a dump, poets by name and poems
// by title.
func (c *Catalog) Export(ctx context.Context) (*Dump, error) {
	poets, err := c.queryPoets(ctx,
		`SELECT id, name, bio, birth, death FROM poets ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, err
	}

	d := &Dump{Poets: make([]DumpPoet, 0, len(poets))}
	for _, p := range poets {
		poems, err := c.PoemsByPoet(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		d.Poets = append(d.Poets, DumpPoet{Poet: p, Poems: poems})
	}
	return d, nil
}
