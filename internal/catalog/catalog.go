// Package catalog stores poets and poems in SQLite and turns YAML book
// manifests into books ready to compile.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, registers "sqlite"
)

// Sentinel errors for catalog operations.
var (
	ErrOpen         = errors.New("cannot open catalog")
	ErrQuery        = errors.New("catalog query failed")
	ErrPoetNotFound = errors.New("poet not found")
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

// PoetsLimit caps the number of poets returned by Poets.
const PoetsLimit = 50

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

var schema = []string{
	`CREATE TABLE IF NOT EXISTS poets (
		id    INTEGER PRIMARY KEY,
		name  TEXT NOT NULL,
		bio   TEXT NOT NULL DEFAULT '',
		birth TEXT NOT NULL DEFAULT '',
		death TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS poems (
		id      INTEGER PRIMARY KEY,
		poet_id INTEGER NOT NULL REFERENCES poets(id) ON DELETE CASCADE,
		title   TEXT NOT NULL DEFAULT '',
		body    TEXT NOT NULL DEFAULT '',
		year    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_poems_poet ON poems(poet_id)`,
	fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion),
}

// Poet is a catalog poet. Bio is HTML.
type Poet struct {
	ID    int64  `yaml:"id"`
	Name  string `yaml:"name"`
	Bio   string `yaml:"bio,omitempty"`
	Birth string `yaml:"birth,omitempty"`
	Death string `yaml:"death,omitempty"`
}

// Poem is a catalog poem. Body is HTML.
type Poem struct {
	ID     int64  `yaml:"id"`
	PoetID int64  `yaml:"poetId"`
	Title  string `yaml:"title,omitempty"`
	Body   string `yaml:"body,omitempty"`
	Year   string `yaml:"year,omitempty"`
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Catalog is a SQLite poem catalog. It is safe for concurrent use.
type Catalog struct {
	db *sql.DB
}

// Open opens the catalog at path, creating the file if needed. Call
// Migrate before first use of a new file.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrOpen)
	}
	db, err := sql.Open(driverName, path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Migrate creates the schema. It is idempotent.
func (c *Catalog) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: migrating: %v", ErrQuery, err)
		}
	}
	return nil
}

// AddPoet inserts or replaces a poet. A zero ID assigns a new one.
// Returns the poet's ID.
func (c *Catalog) AddPoet(ctx context.Context, p Poet) (int64, error) {
	return addPoet(ctx, c.db, p)
}

// AddPoem inserts or replaces a poem of an existing poet. A zero ID
// assigns a new one. Returns the poem's ID.
func (c *Catalog) AddPoem(ctx context.Context, p Poem) (int64, error) {
	return addPoem(ctx, c.db, p)
}

func addPoet(ctx context.Context, db execer, p Poet) (int64, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, fmt.Errorf("%w: poet %d has no name", ErrInvalidEntry, p.ID)
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO poets (id, name, bio, birth, death) VALUES (NULLIF(?, 0), ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, bio = excluded.bio,
			birth = excluded.birth, death = excluded.death`,
		p.ID, p.Name, p.Bio, p.Birth, p.Death)
	if err != nil {
		return 0, fmt.Errorf("%w: adding poet %q: %v", ErrQuery, p.Name, err)
	}
	return insertedID(res, p.ID)
}

func addPoem(ctx context.Context, db execer, p Poem) (int64, error) {
	if p.PoetID <= 0 {
		return 0, fmt.Errorf("%w: poem %q has no poet", ErrInvalidEntry, p.Title)
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO poems (id, poet_id, title, body, year) VALUES (NULLIF(?, 0), ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			poet_id = excluded.poet_id, title = excluded.title,
			body = excluded.body, year = excluded.year`,
		p.ID, p.PoetID, p.Title, p.Body, p.Year)
	if err != nil {
		return 0, fmt.Errorf("%w: adding poem %q: %v", ErrQuery, p.Title, err)
	}
	return insertedID(res, p.ID)
}

func insertedID(res sql.Result, id int64) (int64, error) {
	if id > 0 {
		return id, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return id, nil
}

// Poet returns one poet. ErrPoetNotFound when id is unknown.
func (c *Catalog) Poet(ctx context.Context, id int64) (*Poet, error) {
	var p Poet
	err := c.db.QueryRowContext(ctx,
		`SELECT id, name, bio, birth, death FROM poets WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Bio, &p.Birth, &p.Death)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrPoetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: poet %d: %v", ErrQuery, id, err)
	}
	return &p, nil
}

// PoemsByIDs returns the poems with the given ids in the caller's order.
// Unknown ids are skipped.
func (c *Catalog) PoemsByIDs(ctx context.Context, ids []int64) ([]Poem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	found, err := c.queryPoems(ctx,
		`SELECT id, poet_id, title, body, year FROM poems WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]Poem, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	poems := make([]Poem, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			poems = append(poems, p)
		}
	}
	return poems, nil
}

// PoemsByPoet returns a poet's poems ordered by title.
func (c *Catalog) PoemsByPoet(ctx context.Context, poetID int64) ([]Poem, error) {
	return c.queryPoems(ctx, `
		SELECT id, poet_id, title, body, year FROM poems
		WHERE poet_id = ?
		ORDER BY title COLLATE NOCASE, id`, poetID)
}

func (c *Catalog) queryPoems(ctx context.Context, query string, args ...any) ([]Poem, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	var poems []Poem
	for rows.Next() {
		var p Poem
		if err := rows.Scan(&p.ID, &p.PoetID, &p.Title, &p.Body, &p.Year); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		poems = append(poems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return poems, nil
}

// Poets lists poets whose name contains filter, case-insensitively. Only
// poets with at least one poem are listed, in case-insensitive name order,
// at most PoetsLimit of them. "%" in filter is ignored.
func (c *Catalog) Poets(ctx context.Context, filter string) ([]Poet, error) {
	return c.queryPoets(ctx, `
		SELECT p.id, p.name, p.bio, p.birth, p.death FROM poets p
		WHERE p.name LIKE ? ESCAPE '\'
		  AND EXISTS (SELECT 1 FROM poems WHERE poems.poet_id = p.id)
		ORDER BY p.name COLLATE NOCASE, p.id
		LIMIT ?`, likePattern(filter), PoetsLimit)
}

func (c *Catalog) queryPoets(ctx context.Context, query string, args ...any) ([]Poet, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close()

	var poets []Poet
	for rows.Next() {
		var p Poet
		if err := rows.Scan(&p.ID, &p.Name, &p.Bio, &p.Birth, &p.Death); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		poets = append(poets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return poets, nil
}

// likePattern builds a contains pattern. Wildcards typed by the user are
// dropped ("%") or matched literally ("_").
func likePattern(filter string) string {
	filter = strings.TrimSpace(strings.ReplaceAll(filter, "%", ""))
	filter = strings.ReplaceAll(filter, `\`, `\\`)
	filter = strings.ReplaceAll(filter, "_", `\_`)
	return "%" + filter + "%"
}
