package corpus

import (
	"fmt"
	"strings"
)

// Chunker splits article text into overlapping fixed-size word windows.
type Chunker struct {
	chunkSize int // words per window
	overlap   int // words shared between consecutive windows
	minWords  int // windows at or below this word count are discarded
}

// NewChunker creates a Chunker. overlap must be strictly smaller than
// chunkSize or window starts would not advance.
func NewChunker(chunkSize, overlap, minWords int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, chunk size), got %d (chunk size %d)", overlap, chunkSize)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap, minWords: minWords}, nil
}

// Split cuts text into word windows of chunkSize words, each window starting
// chunkSize−overlap words after the previous one. Windows with minWords or
// fewer words are dropped; if nothing survives, the whole text is returned
// as a single window so non-empty input never yields an empty result.
func (c *Chunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.chunkSize - c.overlap

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		if end-start > c.minWords {
			chunks = append(chunks, strings.Join(words[start:end], " "))
		}
	}

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}
