package embed

import (
	"fmt"
	"strings"

	"github.com/skonate/griot/internal/cache"
	"github.com/skonate/griot/internal/model"
)

// New builds the configured embedding client. cache may be nil.
func New(cfg model.EmbeddingConfig, c cache.Cache) (*Client, error) {
	var embedder Embedder
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		embedder, err = NewOpenAIEmbedder(cfg)
	case "ollama":
		embedder, err = NewOllamaEmbedder(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama)", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewClient(embedder, c, cfg), nil
}
