// Package store owns the physical memory stores: one chromem-go database per
// scope location, holding a single append-only collection of chunk records.
//
// Cross-process concurrency is not coordinated here. If two invocations
// append to the same store at once, the engine's own guarantees govern the
// outcome; this is a known limitation of a single-shot local tool.
package store

import (
	"context"
	"fmt"
	"os"

	chromem "github.com/philippgille/chromem-go"

	"github.com/raggedmemory/ram/internal/scope"
)

// CollectionName is the fixed logical name of the single record collection
// each store manages.
const CollectionName = "memories"

// MemoryStore is a persistent collection of chunk records bound to one scope
// and one filesystem location. It is constructed per invocation, not shared.
type MemoryStore struct {
	Scope scope.Scope

	root string
	dims int
	db   *chromem.DB
}

// New creates a MemoryStore handle without touching the filesystem. dims is
// the configured vector width, used for scan probes.
func New(sc scope.Scope, root string, dims int) *MemoryStore {
	return &MemoryStore{Scope: sc, root: root, dims: dims}
}

// Path returns the store's root directory.
func (s *MemoryStore) Path() string {
	return s.root
}

// Exists reports whether the store directory exists on disk.
func (s *MemoryStore) Exists() bool {
	_, err := os.Stat(s.root)
	return err == nil
}

// Initialize creates the store directory (including parents) and opens the
// engine connection. It is idempotent; the collection itself materializes
// lazily on first append.
func (s *MemoryStore) Initialize() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating store directory %s: %w", s.root, err)
	}
	return s.connect()
}

// connect lazily opens the persistent engine database at the store root.
func (s *MemoryStore) connect() error {
	if s.db != nil {
		return nil
	}
	db, err := chromem.NewPersistentDB(s.root, false)
	if err != nil {
		return fmt.Errorf("opening vector database at %s: %w", s.root, err)
	}
	s.db = db
	return nil
}

// collection returns the record collection, or nil if it has not been
// created yet. The embedding function is never used: records always carry
// precomputed vectors and queries are made by embedding.
func (s *MemoryStore) collection() (*chromem.Collection, error) {
	if err := s.connect(); err != nil {
		return nil, err
	}
	return s.db.GetCollection(CollectionName, nil), nil
}

// Append durably writes records to the collection, creating it seeded with
// this batch if it does not exist yet. The existence check happens
// immediately before the write; no existing record is modified.
func (s *MemoryStore) Append(ctx context.Context, records []ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}

	col, err := s.collection()
	if err != nil {
		return err
	}
	if col == nil {
		col, err = s.db.CreateCollection(CollectionName, nil, nil)
		if err != nil {
			return fmt.Errorf("creating collection %s: %w", CollectionName, err)
		}
	}

	docs := make([]chromem.Document, len(records))
	for i, r := range records {
		docs[i] = r.toDocument()
	}

	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("appending %d records to %s: %w", len(records), s.root, err)
	}
	return nil
}

// HasFileHash reports whether any record carries the given file hash. This
// is a full metadata scan of the collection, acceptable while stores stay
// small; callers must not assume sub-linear cost. A store or collection that
// does not exist yet yields false, not an error.
func (s *MemoryStore) HasFileHash(ctx context.Context, hash string) (bool, error) {
	if !s.Exists() {
		return false, nil
	}
	col, err := s.collection()
	if err != nil {
		return false, err
	}
	if col == nil || col.Count() == 0 {
		return false, nil
	}

	results, err := col.QueryEmbedding(ctx, s.probeVector(), col.Count(), map[string]string{metaFileHash: hash}, nil)
	if err != nil {
		return false, fmt.Errorf("scanning %s for file hash: %w", CollectionName, err)
	}
	return len(results) > 0, nil
}

// Count returns the number of records in the collection, zero when the store
// or collection does not exist.
func (s *MemoryStore) Count() (int, error) {
	if !s.Exists() {
		return 0, nil
	}
	col, err := s.collection()
	if err != nil {
		return 0, err
	}
	if col == nil {
		return 0, nil
	}
	return col.Count(), nil
}

// ScanAll returns every record in the collection. Order is not guaranteed.
func (s *MemoryStore) ScanAll(ctx context.Context) ([]ChunkRecord, error) {
	if !s.Exists() {
		return nil, nil
	}
	col, err := s.collection()
	if err != nil {
		return nil, err
	}
	if col == nil || col.Count() == 0 {
		return nil, nil
	}

	results, err := col.QueryEmbedding(ctx, s.probeVector(), col.Count(), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", CollectionName, err)
	}

	records := make([]ChunkRecord, len(results))
	for i, r := range results {
		records[i] = recordFromMetadata(r.Content, r.Embedding, r.Metadata)
	}
	return records, nil
}

// SearchResult pairs a record with its similarity to a query vector.
type SearchResult struct {
	Record     ChunkRecord
	Similarity float32
}

// Search runs a nearest-neighbor query against the collection using a
// caller-supplied query embedding. The ranking itself is the engine's work;
// this store only translates results.
func (s *MemoryStore) Search(ctx context.Context, queryVector []float32, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	col, err := s.collection()
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, nil
	}
	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := col.QueryEmbedding(ctx, queryVector, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", CollectionName, err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Record:     recordFromMetadata(r.Content, r.Embedding, r.Metadata),
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// probeVector is a fixed unit vector used for metadata-only scans, where the
// similarity ranking is irrelevant and only the filter matters.
func (s *MemoryStore) probeVector() []float32 {
	v := make([]float32, s.dims)
	v[0] = 1
	return v
}
