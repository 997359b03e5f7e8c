package worker

import (
	"context"
	"fmt"
)

// Embedder is the slice of the embedding client the batch processor needs.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbedJob embeds one batch of texts. Index records where the batch sits in
// the original sequence so results can be reassembled in order.
type EmbedJob struct {
	Index    int
	Texts    []string
	Embedder Embedder
}

// Execute runs the embedding call.
func (j *EmbedJob) Execute(ctx context.Context) Result {
	vectors, err := j.Embedder.EmbedBatch(ctx, j.Texts)
	return &EmbedResult{Index: j.Index, Vectors: vectors, Error: err}
}

// EmbedResult is the outcome of one embedding batch.
type EmbedResult struct {
	Index   int
	Vectors [][]float32
	Error   error
}

// GetError returns the batch error, if any.
func (r *EmbedResult) GetError() error {
	return r.Error
}

// BatchEmbedder embeds long text sequences by splitting them into fixed
// batches and running the batches on a worker pool.
type BatchEmbedder struct {
	embedder    Embedder
	batchSize   int
	concurrency int
}

// NewBatchEmbedder creates a batch embedder.
func NewBatchEmbedder(embedder Embedder, batchSize, concurrency int) *BatchEmbedder {
	if batchSize <= 0 {
		batchSize = 32
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchEmbedder{
		embedder:    embedder,
		batchSize:   batchSize,
		concurrency: concurrency,
	}
}

// EmbedAll embeds texts in order. Any batch failure aborts the whole run;
// a partial index is worse than no index.
func (b *BatchEmbedder) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var batches [][]string
	for start := 0; start < len(texts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, texts[start:end])
	}

	pool := NewPool(b.concurrency)
	pool.Start(ctx)
	defer pool.Shutdown()

	go func() {
		for i, batch := range batches {
			pool.Submit(&EmbedJob{Index: i, Texts: batch, Embedder: b.embedder})
		}
		pool.Close()
	}()

	byBatch := make([][][]float32, len(batches))
	for result := range pool.Results() {
		r := result.(*EmbedResult)
		if r.Error != nil {
			return nil, fmt.Errorf("embed batch %d: %w", r.Index, r.Error)
		}
		if len(r.Vectors) != len(batches[r.Index]) {
			return nil, fmt.Errorf("embed batch %d: got %d vectors for %d texts",
				r.Index, len(r.Vectors), len(batches[r.Index]))
		}
		byBatch[r.Index] = r.Vectors
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([][]float32, 0, len(texts))
	for _, vectors := range byBatch {
		out = append(out, vectors...)
	}
	return out, nil
}
