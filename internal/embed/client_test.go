package embed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/skonate/griot/internal/cache"
	"github.com/skonate/griot/internal/model"
)

// fakeEmbedder returns deterministic vectors and can be made to fail a
// number of times before succeeding. Safe for concurrent calls.
type fakeEmbedder struct {
	mu        sync.Mutex
	dimension int
	failures  int
	calls     int
	seen      [][]string
}

func (f *fakeEmbedder) Name() string { return "fake" }

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.seen = append(f.seen, append([]string(nil), texts...))
	if f.failures > 0 {
		f.failures--
		return nil, ErrUnavailable
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, f.dimension)
		vec[0] = float32(len(text))
		out[i] = vec
	}
	return out, nil
}

func testEmbedConfig() model.EmbeddingConfig {
	return model.EmbeddingConfig{
		Model:             "fake-model",
		BatchSize:         32,
		MaxRetries:        3,
		RetryBackoff:      time.Millisecond,
		RequestsPerSecond: 1000,
	}
}

func TestEmbedBatch_Order(t *testing.T) {
	fake := &fakeEmbedder{dimension: 4}
	c := NewClient(fake, nil, testEmbedConfig())

	texts := []string{"a", "bb", "ccc"}
	vectors, err := c.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vectors))
	}
	for i, text := range texts {
		if vectors[i][0] != float32(len(text)) {
			t.Errorf("vector %d does not correspond to input %q", i, text)
		}
	}
	if c.Dimension() != 4 {
		t.Errorf("dimension = %d, want 4 after first call", c.Dimension())
	}
}

func TestEmbedBatch_RetriesThenSucceeds(t *testing.T) {
	fake := &fakeEmbedder{dimension: 2, failures: 2}
	c := NewClient(fake, nil, testEmbedConfig())

	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	if _, err := c.EmbedBatch(context.Background(), []string{"x"}); err != nil {
		t.Fatal(err)
	}
	if fake.calls != 3 {
		t.Errorf("calls = %d, want 3", fake.calls)
	}
	// Backoff grows with the attempt number.
	if len(slept) != 2 || slept[0] >= slept[1] {
		t.Errorf("backoff sequence = %v, want two increasing waits", slept)
	}
}

func TestEmbedBatch_RetriesExhausted(t *testing.T) {
	fake := &fakeEmbedder{dimension: 2, failures: 10}
	c := NewClient(fake, nil, testEmbedConfig())
	c.sleep = func(time.Duration) {}

	_, err := c.EmbedBatch(context.Background(), []string{"x"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if fake.calls != 3 {
		t.Errorf("calls = %d, want 3", fake.calls)
	}
}

func TestEmbedBatch_CacheHitSkipsBackend(t *testing.T) {
	fake := &fakeEmbedder{dimension: 2}
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	c := NewClient(fake, store, testEmbedConfig())

	ctx := context.Background()
	if _, err := c.EmbedBatch(ctx, []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if fake.calls != 1 {
		t.Fatalf("calls = %d, want 1", fake.calls)
	}

	// "a" and "b" are cached; only "c" reaches the backend.
	vectors, err := c.EmbedBatch(ctx, []string{"a", "c", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vectors))
	}
	if fake.calls != 2 {
		t.Errorf("calls = %d, want 2", fake.calls)
	}
	last := fake.seen[len(fake.seen)-1]
	if len(last) != 1 || last[0] != "c" {
		t.Errorf("backend saw %v, want only the cache miss", last)
	}
}

func TestEmbedBatch_DimensionPinned(t *testing.T) {
	fake := &fakeEmbedder{dimension: 2}
	c := NewClient(fake, nil, testEmbedConfig())

	if _, err := c.EmbedBatch(context.Background(), []string{"a"}); err != nil {
		t.Fatal(err)
	}

	fake.dimension = 3
	if _, err := c.EmbedBatch(context.Background(), []string{"b"}); err == nil {
		t.Error("expected error when the backend changes dimension")
	}
}

// Indexing shares one Client across the embedding workers, so the first-call
// dimension pin must hold up when several batches land at once.
func TestEmbedBatch_ConcurrentCalls(t *testing.T) {
	fake := &fakeEmbedder{dimension: 3}
	c := NewClient(fake, nil, testEmbedConfig())

	const callers = 8
	start := make(chan struct{})
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := c.EmbedBatch(context.Background(), []string{fmt.Sprintf("texte-%d", i)})
			errs <- err
		}(i)
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent EmbedBatch: %v", err)
		}
	}
	if c.Dimension() != 3 {
		t.Errorf("dimension = %d, want 3", c.Dimension())
	}
}
