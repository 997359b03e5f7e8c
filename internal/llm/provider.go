// Package llm generates grounded French answers from retrieved documents
// via an external language model.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrTimeout is returned when the model did not answer in time.
	ErrTimeout = errors.New("llm: request timed out")
	// ErrUnavailable is returned when the backend rejected or refused the call.
	ErrUnavailable = errors.New("llm: backend unavailable")
	// ErrEmptyResponse is returned when the model produced no text. The
	// answer pipeline surfaces this instead of serving an empty answer.
	ErrEmptyResponse = errors.New("llm: model returned an empty response")
)

// Provider is a text generation backend.
type Provider interface {
	// Name identifies the provider.
	Name() string

	// Generate produces a completion for the request.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest is one generation call.
type GenerateRequest struct {
	// System sets the model's role. Empty means the provider default.
	System string

	// Prompt is the full user prompt, context documents included.
	Prompt string

	// Model overrides the configured model when non-empty.
	Model string

	// MaxTokens limits the response length. 0 means the configured value.
	MaxTokens int

	// Temperature overrides the configured sampling temperature when > 0.
	Temperature float32
}

// GenerateResponse is the model's output.
type GenerateResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// mapErr folds backend errors into the package sentinels.
func mapErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}
	return errors.Join(ErrUnavailable, err)
}
