// Package store keeps named designs in a single SQLite file.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/will-rowe/origami/src/codec"
	"github.com/will-rowe/origami/src/part"
	"github.com/will-rowe/origami/src/version"
)

// ErrNotFound is returned when no design has the requested name
var ErrNotFound = errors.New("design not found")

// Entry describes an archived design without loading it
type Entry struct {
	Name    string
	Version string
	Helices int
	Saved   time.Time
}

// Store is a design archive backed by SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the archive at path
func Open(path string) (*Store, error) {
	if path == "" {
		path = "origami.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS designs (
		name TEXT PRIMARY KEY,
		version TEXT NOT NULL,
		helices INTEGER NOT NULL,
		saved INTEGER NOT NULL,
		document BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create designs table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the archive location
func (s *Store) Path() string { return s.path }

// Close releases the database
func (s *Store) Close() error { return s.db.Close() }

// Put saves p under name, replacing any design already stored there
func (s *Store) Put(name string, p *part.Part) error {
	if name == "" {
		return fmt.Errorf("designs need a name")
	}
	doc, err := codec.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.upsert(name, p.Len(), doc)
}

// PutDocument stores an already encoded document once it has loaded into a valid Part
func (s *Store) PutDocument(name string, doc []byte, opts ...codec.Option) error {
	if name == "" {
		return fmt.Errorf("designs need a name")
	}
	p, err := codec.Load(doc, opts...)
	if err != nil {
		return fmt.Errorf("refusing to store %s: %w", name, err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("refusing to store %s: %w", name, err)
	}
	return s.upsert(name, p.Len(), doc)
}

func (s *Store) upsert(name string, helices int, doc []byte) error {
	_, err := s.db.Exec(`INSERT INTO designs(name,version,helices,saved,document) VALUES(?,?,?,?,?)
		ON CONFLICT(name) DO UPDATE SET version=excluded.version, helices=excluded.helices, saved=excluded.saved, document=excluded.document`,
		name, version.GetBaseVersion(), helices, time.Now().Unix(), doc)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	return nil
}

// Document returns the raw document stored under name
func (s *Store) Document(name string) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRow(`SELECT document FROM designs WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", name, err)
	}
	return doc, nil
}

// Get loads the design stored under name
func (s *Store) Get(name string, opts ...codec.Option) (*part.Part, error) {
	doc, err := s.Document(name)
	if err != nil {
		return nil, err
	}
	return codec.Load(doc, opts...)
}

// List returns every archived design, ordered by name
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT name, version, helices, saved FROM designs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select designs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var saved int64
		if err := rows.Scan(&e.Name, &e.Version, &e.Helices, &saved); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.Saved = time.Unix(saved, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the design stored under name
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM designs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return nil
}
