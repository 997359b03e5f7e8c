// Package embed wraps the external embedding model behind a single client
// that adds caching, rate limiting, and retries.
package embed

import (
	"context"
	"errors"
)

var (
	// ErrTimeout is returned when the embedding backend did not answer in time.
	ErrTimeout = errors.New("embed: request timed out")
	// ErrUnavailable is returned when the backend rejected or refused the call.
	ErrUnavailable = errors.New("embed: backend unavailable")
)

// Embedder turns texts into vectors. One call embeds one batch; batch
// composition and ordering are the caller's concern.
type Embedder interface {
	// Name identifies the backing provider.
	Name() string

	// EmbedBatch embeds texts in order. On success the result has exactly
	// one vector per input text, all of the same dimension.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// mapErr folds provider errors into the package sentinels so callers can
// branch on errors.Is without knowing the backend.
func mapErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}
	return errors.Join(ErrUnavailable, err)
}
