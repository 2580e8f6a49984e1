package packages

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Index is a small sqlite database over the package cache, so tooling
// can answer "what is installed" without walking the cache tree.
type Index struct {
	db *sql.DB
}

// IndexEntry is one recorded fetch.
type IndexEntry struct {
	Name      string
	Source    string
	Ref       string
	Path      string
	FetchedAt time.Time
}

const indexSchema = `
CREATE TABLE IF NOT EXISTS packages (
	name       TEXT NOT NULL,
	source     TEXT NOT NULL,
	ref        TEXT NOT NULL,
	path       TEXT NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (name, ref)
);
`

// OpenIndex opens (or creates) the index database at path.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache index: %w", err)
	}
	if _, err := db.Exec(indexSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache index: %w", err)
	}
	return &Index{db: db}, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}

// RecordFetch upserts a fetched package.
func (ix *Index) RecordFetch(name, source, ref, path string) error {
	_, err := ix.db.Exec(
		`INSERT INTO packages (name, source, ref, path, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (name, ref) DO UPDATE SET
		   source = excluded.source,
		   path = excluded.path,
		   fetched_at = excluded.fetched_at`,
		name, source, ref, path, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record fetch of %s: %w", name, err)
	}
	return nil
}

// Lookup finds a recorded package by name and ref.
func (ix *Index) Lookup(name, ref string) (IndexEntry, bool, error) {
	row := ix.db.QueryRow(
		`SELECT name, source, ref, path, fetched_at FROM packages WHERE name = ? AND ref = ?`,
		name, ref,
	)

	var entry IndexEntry
	var fetchedAt int64
	err := row.Scan(&entry.Name, &entry.Source, &entry.Ref, &entry.Path, &fetchedAt)
	if err == sql.ErrNoRows {
		return IndexEntry{}, false, nil
	}
	if err != nil {
		return IndexEntry{}, false, fmt.Errorf("lookup %s: %w", name, err)
	}
	entry.FetchedAt = time.Unix(fetchedAt, 0)
	return entry, true, nil
}

// All lists every recorded package, newest first.
func (ix *Index) All() ([]IndexEntry, error) {
	rows, err := ix.db.Query(
		`SELECT name, source, ref, path, fetched_at FROM packages ORDER BY fetched_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var entries []IndexEntry
	for rows.Next() {
		var entry IndexEntry
		var fetchedAt int64
		if err := rows.Scan(&entry.Name, &entry.Source, &entry.Ref, &entry.Path, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		entry.FetchedAt = time.Unix(fetchedAt, 0)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
