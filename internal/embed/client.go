package embed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/skonate/griot/internal/cache"
	"github.com/skonate/griot/internal/model"
)

// Client fronts an Embedder with a cache, a rate limiter, and retries with
// backoff. It also pins the embedding dimension: the first successful vector
// fixes it, and every later vector must match. One Client is shared by all
// indexing workers, so the pin is mutex-guarded.
type Client struct {
	embedder   Embedder
	cache      cache.Cache
	limiter    *rate.Limiter
	model      string
	maxRetries int
	backoff    time.Duration
	cacheTTL   time.Duration

	mu        sync.Mutex
	dimension int

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewClient wraps an embedder. cache may be nil to disable caching.
func NewClient(embedder Embedder, c cache.Cache, cfg model.EmbeddingConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Client{
		embedder:   embedder,
		cache:      c,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		model:      cfg.Model,
		dimension:  cfg.Dimension,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		cacheTTL:   0, // cache default
		sleep:      time.Sleep,
	}
}

// Name returns the backing provider's name.
func (c *Client) Name() string {
	return c.embedder.Name()
}

// Dimension returns the pinned embedding dimension, or 0 before the first
// successful call.
func (c *Client) Dimension() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dimension
}

// EmbedBatch embeds texts in order, serving cached vectors where possible
// and calling the backend only for misses.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if vec, ok := c.cached(text); ok {
			out[i] = vec
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) > 0 {
		vectors, err := c.embedWithRetry(ctx, missing)
		if err != nil {
			return nil, err
		}
		for j, vec := range vectors {
			out[missingIdx[j]] = vec
			c.store(missing[j], vec)
		}
	}

	for _, vec := range out {
		if err := c.checkDimension(vec); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Client) embedWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	attempts := c.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		vectors, err := c.embedder.EmbedBatch(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err

		if errors.Is(ctx.Err(), context.Canceled) {
			break
		}
		if attempt < attempts {
			c.sleep(c.backoff * time.Duration(attempt))
		}
	}
	return nil, fmt.Errorf("embed: %d attempts failed: %w", attempts, lastErr)
}

func (c *Client) checkDimension(vec []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dimension == 0 {
		c.dimension = len(vec)
		return nil
	}
	if len(vec) != c.dimension {
		return fmt.Errorf("embed: got dimension %d, expected %d", len(vec), c.dimension)
	}
	return nil
}

func (c *Client) cached(text string) ([]float32, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, found := c.cache.Get(cache.EmbeddingKey(c.model, text))
	if !found {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil || len(vec) == 0 {
		return nil, false
	}
	return vec, true
}

func (c *Client) store(text string, vec []float32) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	_ = c.cache.Set(cache.EmbeddingKey(c.model, text), data, c.cacheTTL)
}
