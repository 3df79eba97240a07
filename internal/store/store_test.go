package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/raggedmemory/ram/internal/scope"
)

const testDims = 4

// unitVec returns a deterministic unit vector for test records.
func unitVec(i int) []float32 {
	v := make([]float32, testDims)
	v[i%testDims] = 1
	return v
}

func testRecords(n int, sourcePath, fileHash string) []ChunkRecord {
	now := time.Now().UTC()
	records := make([]ChunkRecord, n)
	for i := range records {
		text := fmt.Sprintf("chunk %d of %s", i, sourcePath)
		records[i] = ChunkRecord{
			Text:       text,
			Vector:     unitVec(i),
			SourcePath: sourcePath,
			ChunkIndex: i,
			ChunkSize:  len(text),
			CreatedAt:  now,
			FileHash:   fileHash,
		}
	}
	return records
}

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return New(scope.Local, filepath.Join(t.TempDir(), ".ragged_memory"), testDims)
}

func TestInitializeIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	if s.Exists() {
		t.Error("Exists before Initialize: got true")
	}
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !s.Exists() {
		t.Error("Exists after Initialize: got false")
	}
	if err := s.Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
}

func TestAppendAndScanRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	records := testRecords(3, "/src/notes.md", "hash-a")
	if err := s.Append(ctx, records); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.ScanAll(ctx)
	if err != nil {
		t.Fatalf("ScanAll: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("ScanAll: got %d records, want %d", len(got), len(records))
	}

	// Scan order is not guaranteed; compare as a set keyed by chunk index.
	byIndex := make(map[int]ChunkRecord)
	for _, r := range got {
		byIndex[r.ChunkIndex] = r
	}
	for _, want := range records {
		r, ok := byIndex[want.ChunkIndex]
		if !ok {
			t.Fatalf("chunk %d missing from scan", want.ChunkIndex)
		}
		if r.Text != want.Text {
			t.Errorf("chunk %d text: got %q, want %q", want.ChunkIndex, r.Text, want.Text)
		}
		if r.FileHash != want.FileHash {
			t.Errorf("chunk %d file_hash: got %q, want %q", want.ChunkIndex, r.FileHash, want.FileHash)
		}
		if r.SourcePath != want.SourcePath {
			t.Errorf("chunk %d source_path: got %q, want %q", want.ChunkIndex, r.SourcePath, want.SourcePath)
		}
		if r.ChunkSize != want.ChunkSize {
			t.Errorf("chunk %d chunk_size: got %d, want %d", want.ChunkIndex, r.ChunkSize, want.ChunkSize)
		}
	}
}

func TestAppendGrowsExistingCollection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	// First batch creates the collection, second appends to it.
	if err := s.Append(ctx, testRecords(2, "/a.txt", "hash-a")); err != nil {
		t.Fatalf("first Append: %v", err)
	}
	if err := s.Append(ctx, testRecords(3, "/b.txt", "hash-b")); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	count, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 5 {
		t.Errorf("Count: got %d, want 5", count)
	}
}

func TestAppendEmptyBatchIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := s.Append(ctx, nil); err != nil {
		t.Fatalf("Append(nil): %v", err)
	}
	count, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("Count after empty append: got %d, want 0", count)
	}
}

func TestHasFileHash(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	// Freshly initialized store: no hash is present and that is not an
	// error, even though the collection does not exist yet.
	found, err := s.HasFileHash(ctx, "hash-a")
	if err != nil {
		t.Fatalf("HasFileHash on empty store: %v", err)
	}
	if found {
		t.Error("HasFileHash on empty store: got true")
	}

	if err := s.Append(ctx, testRecords(2, "/a.txt", "hash-a")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	found, err = s.HasFileHash(ctx, "hash-a")
	if err != nil {
		t.Fatalf("HasFileHash: %v", err)
	}
	if !found {
		t.Error("HasFileHash for appended hash: got false, want true")
	}

	found, err = s.HasFileHash(ctx, "hash-other")
	if err != nil {
		t.Fatalf("HasFileHash: %v", err)
	}
	if found {
		t.Error("HasFileHash for unknown hash: got true, want false")
	}
}

func TestHasFileHashOnUninitializedStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	found, err := s.HasFileHash(ctx, "anything")
	if err != nil {
		t.Fatalf("HasFileHash: %v", err)
	}
	if found {
		t.Error("HasFileHash on uninitialized store: got true")
	}
	// The read predicate must not create the store as a side effect.
	if s.Exists() {
		t.Error("HasFileHash created the store directory")
	}
}

func TestRecordsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), ".ragged_memory")

	s := New(scope.Local, root, testDims)
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := s.Append(ctx, testRecords(2, "/a.txt", "hash-a")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// A fresh handle on the same path sees the persisted records.
	reopened := New(scope.Local, root, testDims)
	count, err := reopened.Count()
	if err != nil {
		t.Fatalf("Count after reopen: %v", err)
	}
	if count != 2 {
		t.Errorf("Count after reopen: got %d, want 2", count)
	}
	found, err := reopened.HasFileHash(ctx, "hash-a")
	if err != nil {
		t.Fatalf("HasFileHash after reopen: %v", err)
	}
	if !found {
		t.Error("HasFileHash after reopen: got false, want true")
	}
}

func TestSearchRanksByVector(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := s.Append(ctx, testRecords(3, "/a.txt", "hash-a")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	results, err := s.Search(ctx, unitVec(1), 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search: got %d results, want 2", len(results))
	}
	if results[0].Record.ChunkIndex != 1 {
		t.Errorf("top result: got chunk %d, want 1", results[0].Record.ChunkIndex)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Error("results not sorted by similarity")
	}
}

func TestSearchEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	results, err := s.Search(ctx, unitVec(0), 5)
	if err != nil {
		t.Fatalf("Search on empty store: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search on empty store: got %d results", len(results))
	}
}
