package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skonate/griot/internal/model"
)

// Answerer turns a question and its retrieved documents into a generated
// answer, retrying transient backend failures with backoff.
type Answerer struct {
	provider   Provider
	maxRetries int
	backoff    time.Duration

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewAnswerer wraps a provider with the configured retry policy.
func NewAnswerer(provider Provider, cfg model.LLMConfig) *Answerer {
	return &Answerer{
		provider:   provider,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		sleep:      time.Sleep,
	}
}

// Provider returns the wrapped generation backend.
func (a *Answerer) Provider() Provider {
	return a.provider
}

// Answer generates a grounded answer. A failure or empty model output is an
// error; the caller never receives a silently blank answer.
func (a *Answerer) Answer(ctx context.Context, question string, docs []model.RetrievalResult) (*GenerateResponse, error) {
	prompt := BuildPrompt(question, docs)

	attempts := a.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := a.provider.Generate(ctx, GenerateRequest{Prompt: prompt})
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if errors.Is(ctx.Err(), context.Canceled) {
			break
		}
		if attempt < attempts {
			a.sleep(a.backoff * time.Duration(attempt))
		}
	}
	return nil, fmt.Errorf("llm: %d attempts failed: %w", attempts, lastErr)
}
