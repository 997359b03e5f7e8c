package worker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// countingEmbedder records batches and embeds each text as a one-element
// vector encoding its length.
type countingEmbedder struct {
	mu      sync.Mutex
	batches [][]string
	failOn  string
}

func (e *countingEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.batches = append(e.batches, append([]string(nil), texts...))
	e.mu.Unlock()

	out := make([][]float32, len(texts))
	for i, text := range texts {
		if text == e.failOn {
			return nil, errors.New("embed failed")
		}
		out[i] = []float32{float32(len(text))}
	}
	return out, nil
}

func TestEmbedAll_OrderPreserved(t *testing.T) {
	embedder := &countingEmbedder{}
	b := NewBatchEmbedder(embedder, 3, 4)

	texts := make([]string, 20)
	for i := range texts {
		// Lengths 1..20 so each vector identifies its input.
		texts[i] = strings.Repeat("x", i+1)
	}

	vectors, err := b.EmbedAll(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != len(texts) {
		t.Fatalf("got %d vectors, want %d", len(vectors), len(texts))
	}
	for i := range texts {
		if vectors[i][0] != float32(i+1) {
			t.Errorf("vector %d = %v, not aligned with its text", i, vectors[i])
		}
	}

	// 20 texts at batch size 3: seven batches.
	if len(embedder.batches) != 7 {
		t.Errorf("got %d batches, want 7", len(embedder.batches))
	}
}

func TestEmbedAll_BatchSizes(t *testing.T) {
	embedder := &countingEmbedder{}
	b := NewBatchEmbedder(embedder, 4, 1)

	texts := make([]string, 10)
	for i := range texts {
		texts[i] = "x"
	}
	if _, err := b.EmbedAll(context.Background(), texts); err != nil {
		t.Fatal(err)
	}

	total := 0
	for i, batch := range embedder.batches {
		if len(batch) > 4 {
			t.Errorf("batch %d has %d texts, max 4", i, len(batch))
		}
		total += len(batch)
	}
	if total != 10 {
		t.Errorf("batches cover %d texts, want 10", total)
	}
}

func TestEmbedAll_FailureAborts(t *testing.T) {
	embedder := &countingEmbedder{failOn: "bad"}
	b := NewBatchEmbedder(embedder, 2, 2)

	_, err := b.EmbedAll(context.Background(), []string{"a", "b", "bad", "d"})
	if err == nil {
		t.Fatal("expected error when a batch fails")
	}
}

func TestEmbedAll_Empty(t *testing.T) {
	b := NewBatchEmbedder(&countingEmbedder{}, 32, 4)
	vectors, err := b.EmbedAll(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if vectors != nil {
		t.Errorf("expected nil for empty input, got %v", vectors)
	}
}

// stuckEmbedder blocks until its context is cancelled, like an embedding
// call hanging on the network.
type stuckEmbedder struct {
	started chan struct{}
	once    sync.Once
}

func (e *stuckEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.once.Do(func() { close(e.started) })
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestEmbedAll_CancelInterruptsInFlightBatch(t *testing.T) {
	embedder := &stuckEmbedder{started: make(chan struct{})}
	b := NewBatchEmbedder(embedder, 2, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := b.EmbedAll(ctx, []string{"a", "b", "c", "d"})
		done <- err
	}()

	<-embedder.started
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error after cancellation")
		}
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("EmbedAll did not return after cancellation")
	}
}
