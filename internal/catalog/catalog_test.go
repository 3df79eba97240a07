package catalog

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRecordAndList(t *testing.T) {
	c := openTestCatalog(t)

	entries := []Entry{
		{SourcePath: "/a.md", FileHash: "hash-a", ChunkCount: 3, IndexedAt: time.Now().Add(-time.Hour)},
		{SourcePath: "/b.md", FileHash: "hash-b", ChunkCount: 7, IndexedAt: time.Now()},
	}
	for _, e := range entries {
		if err := c.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := c.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List: got %d entries, want 2", len(got))
	}
	// Most recently indexed first.
	if got[0].SourcePath != "/b.md" {
		t.Errorf("order: got %q first, want /b.md", got[0].SourcePath)
	}
	if got[0].ChunkCount != 7 {
		t.Errorf("chunk_count: got %d, want 7", got[0].ChunkCount)
	}
	if got[0].FileHash != "hash-b" {
		t.Errorf("file_hash: got %q", got[0].FileHash)
	}
}

func TestRecordUpsertsSameFileAndHash(t *testing.T) {
	c := openTestCatalog(t)

	e := Entry{SourcePath: "/a.md", FileHash: "hash-a", ChunkCount: 3, IndexedAt: time.Now().Add(-time.Hour)}
	if err := c.Record(e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	e.ChunkCount = 5
	e.IndexedAt = time.Now()
	if err := c.Record(e); err != nil {
		t.Fatalf("second Record: %v", err)
	}

	got, err := c.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List: got %d entries, want 1 after upsert", len(got))
	}
	if got[0].ChunkCount != 5 {
		t.Errorf("chunk_count after upsert: got %d, want 5", got[0].ChunkCount)
	}
}

func TestCountFilesDistinctPaths(t *testing.T) {
	c := openTestCatalog(t)

	// Same path re-indexed with new content counts once.
	for _, e := range []Entry{
		{SourcePath: "/a.md", FileHash: "hash-1", ChunkCount: 1, IndexedAt: time.Now()},
		{SourcePath: "/a.md", FileHash: "hash-2", ChunkCount: 2, IndexedAt: time.Now()},
		{SourcePath: "/b.md", FileHash: "hash-3", ChunkCount: 3, IndexedAt: time.Now()},
	} {
		if err := c.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	n, err := c.CountFiles()
	if err != nil {
		t.Fatalf("CountFiles: %v", err)
	}
	if n != 2 {
		t.Errorf("CountFiles: got %d, want 2", n)
	}
}
