// Package chunker splits long text into overlapping word-bounded segments
// sized for the embedding model's input limit.
package chunker

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

// Default window geometry: 500 words per chunk with 50 words of overlap
// keeps each chunk under the embedding model's input limit while
// preserving context across chunk boundaries.
const (
	DefaultChunkSize = 500
	DefaultOverlap   = 50
)

// Chunker produces overlapping word windows over a text.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a Chunker. It returns an error when the advance step
// (chunkSize - overlap) is non-positive, which would otherwise loop forever.
func New(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must be non-negative, got %d", overlap)
	}
	if chunkSize-overlap <= 0 {
		return nil, fmt.Errorf("chunk size %d must exceed overlap %d", chunkSize, overlap)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Default returns a Chunker with the standard 500/50 geometry.
func Default() *Chunker {
	c, err := New(DefaultChunkSize, DefaultOverlap)
	if err != nil {
		panic(err) // unreachable with the package constants
	}
	return c
}

// Chunk splits text on whitespace and slides a window of chunkSize words,
// advancing by chunkSize-overlap words per step. Windows that trim to
// nothing are dropped. A single pass; the result is finite and ordered.
func (c *Chunker) Chunk(text string) []types.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.chunkSize - c.overlap
	var chunks []types.Chunk
	for i := 0; i < len(words); i += step {
		end := i + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		segment := strings.TrimSpace(strings.Join(words[i:end], " "))
		if segment == "" {
			continue
		}
		chunks = append(chunks, types.Chunk{Text: segment, Index: len(chunks)})
		if end == len(words) {
			break
		}
	}
	return chunks
}

// Texts returns just the chunk contents, in order.
func Texts(chunks []types.Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}
