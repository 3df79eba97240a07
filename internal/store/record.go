package store

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"
)

// ChunkRecord is the unit persisted into a MemoryStore: one text chunk with
// its embedding and provenance. Records are immutable once appended;
// re-indexing a file appends new records rather than rewriting old ones.
type ChunkRecord struct {
	// Text is the UTF-8 content of the chunk.
	Text string
	// Vector is the embedding, of length Config.Storage.VectorDimensions.
	Vector []float32
	// SourcePath is the absolute path of the originating file.
	SourcePath string
	// ChunkIndex is the zero-based ordinal within the source file.
	ChunkIndex int
	// ChunkSize is the character length of Text.
	ChunkSize int
	// CreatedAt is the UTC append timestamp, shared by all records from one
	// ingestion run.
	CreatedAt time.Time
	// FileHash is the hex SHA-256 of the entire source file at ingestion.
	FileHash string
}

// Metadata field names used in the underlying collection.
const (
	metaSourcePath = "source_path"
	metaChunkIndex = "chunk_index"
	metaChunkSize  = "chunk_size"
	metaCreatedAt  = "created_at"
	metaFileHash   = "file_hash"
)

// toDocument converts a record into an engine document. IDs are random so a
// confirmed re-index appends instead of replacing.
func (r ChunkRecord) toDocument() chromem.Document {
	return chromem.Document{
		ID:        uuid.NewString(),
		Content:   r.Text,
		Embedding: r.Vector,
		Metadata: map[string]string{
			metaSourcePath: r.SourcePath,
			metaChunkIndex: strconv.Itoa(r.ChunkIndex),
			metaChunkSize:  strconv.Itoa(r.ChunkSize),
			metaCreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
			metaFileHash:   r.FileHash,
		},
	}
}

// recordFromMetadata rebuilds a ChunkRecord from an engine document's
// content, embedding and metadata map.
func recordFromMetadata(content string, embedding []float32, meta map[string]string) ChunkRecord {
	chunkIndex, _ := strconv.Atoi(meta[metaChunkIndex])
	chunkSize, _ := strconv.Atoi(meta[metaChunkSize])
	createdAt, _ := time.Parse(time.RFC3339, meta[metaCreatedAt])

	return ChunkRecord{
		Text:       content,
		Vector:     embedding,
		SourcePath: meta[metaSourcePath],
		ChunkIndex: chunkIndex,
		ChunkSize:  chunkSize,
		CreatedAt:  createdAt,
		FileHash:   meta[metaFileHash],
	}
}
