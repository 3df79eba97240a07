// Package indexer turns a source file into chunk records ready for storage:
// hash, chunk, batch-embed, assemble.
package indexer

import "strings"

// Chunk is one retrievable segment of a source file.
type Chunk struct {
	// Text is the segment content.
	Text string
	// StartIndex is the character position in the original text where the
	// segment begins.
	StartIndex int
	// EndIndex is StartIndex + len(Text) in characters.
	EndIndex int
	// ChunkIndex is the zero-based ordinal of the segment.
	ChunkIndex int
}

// Size returns the number of characters in the chunk.
func (c Chunk) Size() int {
	return len([]rune(c.Text))
}

// Chunker splits raw text into an ordered sequence of segments with
// positional metadata.
type Chunker interface {
	Chunk(text string) []Chunk
}

const (
	// DefaultChunkSize is the target segment size in characters.
	DefaultChunkSize = 1200
	// DefaultChunkOverlap is the number of trailing characters repeated at
	// the start of the next segment for context continuity.
	DefaultChunkOverlap = 150
)

// TextChunker splits text on paragraph boundaries, packing paragraphs into
// segments up to a target size. Paragraphs longer than the target are split
// on sentence boundaries, and as a last resort on whitespace.
type TextChunker struct {
	chunkSize int
	overlap   int
}

// NewTextChunker creates a TextChunker. Non-positive arguments fall back to
// the defaults.
func NewTextChunker(chunkSize, overlap int) *TextChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultChunkOverlap
	}
	return &TextChunker{chunkSize: chunkSize, overlap: overlap}
}

// Chunk splits text into segments. Empty or whitespace-only input yields no
// segments.
func (t *TextChunker) Chunk(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	var chunks []Chunk
	start := 0

	for start < len(runes) {
		end := start + t.chunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = t.splitPoint(runes, start, end)
		}

		segment := string(runes[start:end])
		if strings.TrimSpace(segment) != "" {
			chunks = append(chunks, Chunk{
				Text:       segment,
				StartIndex: start,
				EndIndex:   end,
				ChunkIndex: len(chunks),
			})
		}

		if end == len(runes) {
			break
		}
		next := end - t.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// splitPoint finds the best boundary at or before limit: first a blank line,
// then a sentence end, then any whitespace. Falls back to a hard cut.
func (t *TextChunker) splitPoint(runes []rune, start, limit int) int {
	// Don't search below the midpoint of the window; a tiny chunk followed
	// by a huge one is worse than an imperfect boundary.
	floor := start + t.chunkSize/2

	if p := lastBoundary(runes, floor, limit, isParagraphBreak); p > 0 {
		return p
	}
	if p := lastBoundary(runes, floor, limit, isSentenceEnd); p > 0 {
		return p
	}
	if p := lastBoundary(runes, floor, limit, func(rs []rune, i int) int {
		if rs[i] == ' ' || rs[i] == '\n' || rs[i] == '\t' {
			return i + 1
		}
		return -1
	}); p > 0 {
		return p
	}
	return limit
}

// lastBoundary scans backward from limit to floor looking for a boundary,
// returning the index just after it, or -1.
func lastBoundary(runes []rune, floor, limit int, boundary func([]rune, int) int) int {
	for i := limit - 1; i >= floor; i-- {
		if p := boundary(runes, i); p > 0 && p <= limit {
			return p
		}
	}
	return -1
}

// isParagraphBreak reports a "\n\n" ending at position i, returning the
// index after the break.
func isParagraphBreak(runes []rune, i int) int {
	if runes[i] == '\n' && i > 0 && runes[i-1] == '\n' {
		return i + 1
	}
	return -1
}

// isSentenceEnd reports a sentence terminator followed by whitespace.
func isSentenceEnd(runes []rune, i int) int {
	if i+1 >= len(runes) {
		return -1
	}
	switch runes[i] {
	case '.', '!', '?':
		next := runes[i+1]
		if next == ' ' || next == '\n' || next == '\t' {
			return i + 2
		}
	}
	return -1
}
