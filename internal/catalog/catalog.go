// Package catalog keeps a small SQLite log of ingested files per store. It
// is a convenience surface for list/status output; the collection's own
// metadata remains the source of truth for duplicate detection.
package catalog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the catalog database file inside a store directory.
const FileName = "catalog.db"

// Entry describes one ingested file.
type Entry struct {
	SourcePath string
	FileHash   string
	ChunkCount int
	IndexedAt  time.Time
}

// Catalog wraps the per-store SQLite database.
type Catalog struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS files (
    source_path TEXT NOT NULL,
    file_hash   TEXT NOT NULL,
    chunk_count INTEGER NOT NULL,
    indexed_at  DATETIME NOT NULL,
    PRIMARY KEY (source_path, file_hash)
);

CREATE INDEX IF NOT EXISTS idx_files_indexed_at ON files(indexed_at);
`

// Open creates or opens the catalog database at the given path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging catalog %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating catalog %s: %w", path, err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record upserts the ingestion entry for a file. Re-indexing the same
// content refreshes the timestamp and chunk count.
func (c *Catalog) Record(e Entry) error {
	_, err := c.db.Exec(`
		INSERT INTO files (source_path, file_hash, chunk_count, indexed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(source_path, file_hash) DO UPDATE SET
			chunk_count = excluded.chunk_count,
			indexed_at  = excluded.indexed_at`,
		e.SourcePath, e.FileHash, e.ChunkCount, e.IndexedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.SourcePath, err)
	}
	return nil
}

// List returns all entries, most recently indexed first.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(`
		SELECT source_path, file_hash, chunk_count, indexed_at
		FROM files
		ORDER BY indexed_at DESC, source_path`)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ts string
		)
		if err := rows.Scan(&e.SourcePath, &e.FileHash, &e.ChunkCount, &ts); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, ts); parseErr == nil {
			e.IndexedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountFiles returns the number of distinct ingested files.
func (c *Catalog) CountFiles() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(DISTINCT source_path) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting catalog files: %w", err)
	}
	return n, nil
}
