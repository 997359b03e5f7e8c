// Package retrieve answers "which chunks are closest to this question" by
// embedding the query and ranking it against the vector index.
package retrieve

import (
	"context"
	"fmt"

	"github.com/skonate/griot/internal/model"
	"github.com/skonate/griot/internal/store"
)

// Embedder embeds query text. *embed.Client satisfies it.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Index is the slice of the vector store the retriever needs.
type Index interface {
	Query(vec []float32, k int) ([]store.Hit, error)
	Count() int
}

// Retriever embeds questions and ranks indexed chunks against them.
type Retriever struct {
	embedder Embedder
	index    Index
	topK     int
}

// New creates a Retriever. defaultTopK is used when a request passes 0.
func New(embedder Embedder, index Index, defaultTopK int) *Retriever {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &Retriever{embedder: embedder, index: index, topK: defaultTopK}
}

// Retrieve returns the topK chunks closest to the question, best first.
// topK 0 means the configured default; negative topK is an error.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int) ([]model.RetrievalResult, error) {
	if topK < 0 {
		return nil, store.ErrInvalidTopK
	}
	if topK == 0 {
		topK = r.topK
	}

	vectors, err := r.embedder.EmbedBatch(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embed question: got %d vectors", len(vectors))
	}

	hits, err := r.index.Query(vectors[0], topK)
	if err != nil {
		return nil, err
	}

	results := make([]model.RetrievalResult, len(hits))
	for i, h := range hits {
		results[i] = model.RetrievalResult{
			ChunkID:         h.Vector.ChunkID,
			Title:           h.Vector.Title,
			URL:             h.Vector.URL,
			Date:            h.Vector.Date,
			Content:         h.Vector.Content,
			Distance:        h.Distance,
			SimilarityScore: 1 - h.Distance,
		}
	}
	return results, nil
}
