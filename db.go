package pnmview

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is the catalog record for one scanned file. Error holds the decode
// failure message, in which case Format is empty and the dimensions zero.
type Entry struct {
	Path   string
	SHA1   string
	Format string
	Width  int
	Height int
	Error  string
}

// Catalog is a SQLite database of scanned Netpbm files.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer and every scan worker writes
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, format TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, error TEXT)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS image_sha1 ON image (sha1)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record adds e, replacing any existing entry for the same path.
func (c *Catalog) Record(e Entry) error {
	var msg sql.NullString
	if e.Error != "" {
		msg.String = e.Error
		msg.Valid = true
	}

	if _, err := c.db.Exec("INSERT OR REPLACE INTO image (path, sha1, format, width, height, error) VALUES (?, ?, ?, ?, ?, ?)", e.Path, e.SHA1, e.Format, e.Width, e.Height, msg); err != nil {
		return err
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner) (*Entry, error) {
	var (
		e   Entry
		msg sql.NullString
	)
	if err := s.Scan(&e.Path, &e.SHA1, &e.Format, &e.Width, &e.Height, &msg); err != nil {
		return nil, err
	}
	e.Error = msg.String
	return &e, nil
}

// Find returns the entry for path, or nil if there is none.
func (c *Catalog) Find(path string) (*Entry, error) {
	e, err := scanEntry(c.db.QueryRow("SELECT path, sha1, format, width, height, error FROM image WHERE path = ?", path))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return e, nil
	default:
		return nil, err
	}
}

func (c *Catalog) query(query string, args ...interface{}) ([]Entry, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// FindBySHA1 returns every entry whose contents hash to sha, ordered by path.
func (c *Catalog) FindBySHA1(sha string) ([]Entry, error) {
	return c.query("SELECT path, sha1, format, width, height, error FROM image WHERE sha1 = ? ORDER BY path", sha)
}

// List returns every entry ordered by path.
func (c *Catalog) List() ([]Entry, error) {
	return c.query("SELECT path, sha1, format, width, height, error FROM image ORDER BY path")
}
