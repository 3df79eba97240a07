package indexer

import (
	"strings"
	"testing"
)

func TestChunkEmptyInput(t *testing.T) {
	c := NewTextChunker(100, 10)
	for _, input := range []string{"", "   ", "\n\n\t\n"} {
		if got := c.Chunk(input); len(got) != 0 {
			t.Errorf("Chunk(%q): got %d chunks, want 0", input, len(got))
		}
	}
}

func TestChunkShortInputSingleChunk(t *testing.T) {
	c := NewTextChunker(100, 10)
	text := "A single short paragraph."

	chunks := c.Chunk(text)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("text: got %q, want %q", chunks[0].Text, text)
	}
	if chunks[0].StartIndex != 0 || chunks[0].EndIndex != len([]rune(text)) {
		t.Errorf("offsets: got [%d, %d)", chunks[0].StartIndex, chunks[0].EndIndex)
	}
	if chunks[0].ChunkIndex != 0 {
		t.Errorf("chunk_index: got %d, want 0", chunks[0].ChunkIndex)
	}
}

func TestChunkLongInput(t *testing.T) {
	c := NewTextChunker(200, 20)

	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("This is sentence one of a paragraph. This is sentence two, a bit longer than the first.\n\n")
	}
	text := sb.String()

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}

	runes := []rune(text)
	for i, ch := range chunks {
		if ch.ChunkIndex != i {
			t.Errorf("chunk %d: chunk_index %d not contiguous", i, ch.ChunkIndex)
		}
		if len([]rune(ch.Text)) > 200 {
			t.Errorf("chunk %d: %d chars exceeds target size", i, len([]rune(ch.Text)))
		}
		if ch.StartIndex < 0 || ch.EndIndex > len(runes) || ch.StartIndex >= ch.EndIndex {
			t.Errorf("chunk %d: bad offsets [%d, %d)", i, ch.StartIndex, ch.EndIndex)
		}
		// Offsets must reproduce the chunk text from the original.
		if got := string(runes[ch.StartIndex:ch.EndIndex]); got != ch.Text {
			t.Errorf("chunk %d: offsets do not match text", i)
		}
	}

	// Consecutive chunks overlap or touch; they never leave gaps.
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartIndex > chunks[i-1].EndIndex {
			t.Errorf("gap between chunk %d and %d", i-1, i)
		}
	}
}

func TestChunkDefaultsApplied(t *testing.T) {
	c := NewTextChunker(0, -1)
	if c.chunkSize != DefaultChunkSize {
		t.Errorf("chunkSize: got %d, want default %d", c.chunkSize, DefaultChunkSize)
	}
	if c.overlap != DefaultChunkOverlap {
		t.Errorf("overlap: got %d, want default %d", c.overlap, DefaultChunkOverlap)
	}
}
