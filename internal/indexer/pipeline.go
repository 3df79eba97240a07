package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/raggedmemory/ram/internal/embeddings"
	"github.com/raggedmemory/ram/internal/store"
)

// ErrEmbeddingMismatch signals that the embedder violated its contract by
// returning a different number of vectors than texts, or a vector of the
// wrong width. It is never silently truncated or padded over.
var ErrEmbeddingMismatch = errors.New("embedder output does not match input")

// HashContent returns the hex-encoded SHA-256 of the content bytes. The same
// digest is used for duplicate detection before the pipeline runs.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Pipeline orchestrates chunk -> embed -> record assembly for one file.
type Pipeline struct {
	chunker    Chunker
	embedder   embeddings.Embedder
	dimensions int
}

// NewPipeline creates a Pipeline. dimensions is the configured vector width
// every embedding must match.
func NewPipeline(chunker Chunker, embedder embeddings.Embedder, dimensions int) *Pipeline {
	return &Pipeline{chunker: chunker, embedder: embedder, dimensions: dimensions}
}

// Process turns file content into chunk records ready for appending. The
// embedder is invoked once for the whole batch of segments. Empty or
// whitespace-only content yields zero records and no error. The append
// timestamp is captured once per file so all records of one ingestion agree.
func (p *Pipeline) Process(ctx context.Context, content, sourcePath string) ([]store.ChunkRecord, error) {
	fileHash := HashContent(content)

	chunks := p.chunker.Chunk(content)
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d chunks from %s: %w", len(chunks), sourcePath, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks from %s",
			ErrEmbeddingMismatch, len(vectors), len(chunks), sourcePath)
	}

	createdAt := time.Now().UTC()

	records := make([]store.ChunkRecord, len(chunks))
	for i, c := range chunks {
		if len(vectors[i]) != p.dimensions {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, expected %d",
				ErrEmbeddingMismatch, i, len(vectors[i]), p.dimensions)
		}
		records[i] = store.ChunkRecord{
			Text:       c.Text,
			Vector:     vectors[i],
			SourcePath: sourcePath,
			ChunkIndex: i,
			ChunkSize:  c.Size(),
			CreatedAt:  createdAt,
			FileHash:   fileHash,
		}
	}

	return records, nil
}
